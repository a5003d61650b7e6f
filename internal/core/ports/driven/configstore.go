package driven

// ConfigStore provides persistent key-value configuration for the CLI
// (default library root, preferred extraction format, thresholds).
type ConfigStore interface {
	Get(key string) (any, bool)
	GetString(key string) string
	GetInt(key string) int
	Set(key string, value any) error
	Delete(key string) error
	Keys() []string
}
