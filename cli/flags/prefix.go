package flags

import (
	"strings"
)

// EnvPrefix prefixes every environment variable read by the CLI.
const EnvPrefix = "UNITFILTER"

// Prefix is a list of name parts joined in front of a flag name.
type Prefix []string

// Prepend returns a prefix starting with val.
func (prefix Prefix) Prepend(val string) Prefix {
	return append([]string{val}, prefix...)
}

// EnvVar returns the environment variable of the flag name, `log-level` becomes `UNITFILTER_LOG_LEVEL`.
func (prefix Prefix) EnvVar(name string) string {
	name = strings.Join(append(prefix, name), "_")

	return strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

// EnvVars returns EnvVar for every name.
func (prefix Prefix) EnvVars(names ...string) []string {
	envVars := make([]string, len(names))

	for i := range names {
		envVars[i] = prefix.EnvVar(names[i])
	}

	return envVars
}
