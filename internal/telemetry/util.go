package telemetry

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"go.opentelemetry.io/otel/attribute"
)

var (
	metricNameCleanPattern     = regexp.MustCompile(`[^a-z0-9_./-]`)
	multipleUnderscoresPattern = regexp.MustCompile(`_+`)
)

// mapToAttributes turns span and metric attributes into otel key/values, sorted by key. Unit id
// lists and side numbers keep their slice type, anything else unknown is formatted with %v.
func mapToAttributes(data map[string]any) []attribute.KeyValue {
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	attrs := make([]attribute.KeyValue, 0, len(data))

	for _, key := range keys {
		switch val := data[key].(type) {
		case string:
			attrs = append(attrs, attribute.String(key, val))
		case []string:
			attrs = append(attrs, attribute.StringSlice(key, val))
		case int:
			attrs = append(attrs, attribute.Int(key, val))
		case []int:
			attrs = append(attrs, attribute.IntSlice(key, val))
		case int64:
			attrs = append(attrs, attribute.Int64(key, val))
		case float64:
			attrs = append(attrs, attribute.Float64(key, val))
		case bool:
			attrs = append(attrs, attribute.Bool(key, val))
		default:
			attrs = append(attrs, attribute.String(key, fmt.Sprintf("%v", val)))
		}
	}

	return attrs
}

// CleanMetricName lowercases name and collapses every run of characters otel rejects into one
// underscore.
func CleanMetricName(name string) string {
	cleaned := metricNameCleanPattern.ReplaceAllString(strings.ToLower(name), "_")
	cleaned = multipleUnderscoresPattern.ReplaceAllString(cleaned, "_")

	return strings.Trim(cleaned, "_")
}
