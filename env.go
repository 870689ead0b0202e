package qliic

import (
	"os"
)

// GetEnv returns the value of the environment variable name, or defaultValue
// if the variable is not set
func GetEnv(name string, defaultValue string) string {
	value, ok := os.LookupEnv(name)
	if !ok {
		return defaultValue
	}
	return value
}
