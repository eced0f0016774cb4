package util

import (
	"os"
	"strings"
)

func GetEnvironmentVariables() map[string]string {
	environmentVariables := map[string]string{}

	for _, variable := range os.Environ() {
		pair := strings.SplitN(variable, "=", 2)

		environmentVariables[pair[0]] = pair[1]
	}

	return environmentVariables
}

// LookupEnv performs a case-insensitive lookup over the given environment
// map. Exact-case matches win over folded ones.
func LookupEnv(env map[string]string, name string) string {
	if value, ok := env[name]; ok {
		return value
	}

	for key, value := range env {
		if strings.EqualFold(key, name) {
			return value
		}
	}

	return ""
}
