// Package config provides configuration handling for docgen.
package config

// DefaultTypeMappings returns the default display names for types.
func DefaultTypeMappings() map[string]string {
	return map[string]string{
		"interface{}":     "any",
		"json.RawMessage": "[]byte",
		"uuid.UUID":       "UUID",
		"time.Duration":   "Duration",
		"time.Time":       "Time",
	}
}

// DefaultOptions returns default generation options.
func DefaultOptions() Options {
	return Options{
		PerClass:     false,
		ExportedOnly: true,
		Deprecations: DeprecationsWarn,
	}
}
