package errors

import (
	"fmt"
	"sort"
	"strings"
)

// MissingEnvErr reports required configuration values that were not provided.
// EnvMap maps each required environment variable to the value it resolved to.
type MissingEnvErr struct {
	EnvMap map[string]string
}

func (e MissingEnvErr) Error() string {
	if missingKeys := e.MissingKeys(); len(missingKeys) > 0 {
		allKeys := strings.Join(missingKeys, ", ")
		return fmt.Sprintf("insufficient env variables: [%s]", allKeys)
	}
	return "insufficient env variables"
}

// MissingKeys returns the sorted names of every variable with an empty value.
func (e MissingEnvErr) MissingKeys() []string {
	missingKeys := make([]string, 0, len(e.EnvMap))
	for key, val := range e.EnvMap {
		if val == "" {
			missingKeys = append(missingKeys, key)
		}
	}
	sort.Strings(missingKeys)
	return missingKeys
}
