package domain

// AppConfig is a single key/value configuration row. The "configured" key
// doubles as the first-run setup flag and is looked up per request by the
// setup guard.
type AppConfig struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ConfigKeyConfigured flags setup completion; its value is "true" once the
// setup wizard has run.
const ConfigKeyConfigured = "configured"
