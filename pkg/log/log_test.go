package log_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/gruntwork-io/unitfilter/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextFormatterWritesSortedFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := log.New(log.WithOutput(&buf), log.WithLevel(log.DebugLevel))
	l.WithFields(log.Fields{log.FieldKeyTag: "filter_foo", log.FieldKeyFilter: "basic"}).Debugf("ignored child")

	out := buf.String()
	assert.Contains(t, out, "DEBUG ignored child filter=basic tag=filter_foo")
}

func TestLevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := log.New(log.WithOutput(&buf))
	l.Debug("hidden")
	assert.Empty(t, buf.String())

	require.NoError(t, l.SetLevel("trace"))
	assert.Equal(t, log.TraceLevel, l.Level())

	l.Trace("shown")
	assert.Contains(t, buf.String(), "shown")

	require.Error(t, l.SetLevel("loud"))
}

func TestWithFieldDoesNotLeakIntoParent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	parent := log.New(log.WithOutput(&buf))
	parent.WithField(log.FieldKeyUnit, "Delfador").Info("child")
	parent.Info("parent")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Contains(t, string(lines[0]), "unit=Delfador")
	assert.NotContains(t, string(lines[1]), "unit=")
}

func TestJSONFormatter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	formatter, err := log.NewFormatter("json", false)
	require.NoError(t, err)

	l := log.New(log.WithOutput(&buf), log.WithFormatter(formatter))
	l.WithField(log.FieldKeySide, 2).Warn("fogged")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "fogged", entry["msg"])
	assert.InDelta(t, 2, entry["side"], 0)

	_, err = log.NewFormatter("xml", false)
	assert.Error(t, err)
}

func TestWithDefaultFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	parent := log.New(log.WithOutput(&buf))
	job := parent.WithOptions(log.WithDefaultFields(log.Fields{log.FieldKeyFilter: "heroes.yaml"}))

	job.Info("first")
	job.WithField(log.FieldKeyFilter, "override.yaml").Info("second")
	parent.Info("third")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Contains(t, string(lines[0]), "filter=heroes.yaml")
	assert.Contains(t, string(lines[1]), "filter=override.yaml")
	assert.NotContains(t, string(lines[1]), "heroes.yaml")
	assert.NotContains(t, string(lines[2]), "filter=")
}
