package utils

import "os"

// GetEnvVarWithDefault returns defaultValue when envVar is unset or empty.
func GetEnvVarWithDefault(envVar, defaultValue string) string {
	value, found := os.LookupEnv(envVar)
	if !found || value == "" {
		return defaultValue
	}
	return value
}
