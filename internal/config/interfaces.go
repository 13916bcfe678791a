package config

// ManagerInterface is the configuration surface consumers program against;
// Path reports where Load and Save operate so callers can echo it.
type ManagerInterface interface {
	Load() (*Config, error)
	Save(*Config) error
	Path() string
}

// Ensure Manager implements ManagerInterface
var _ ManagerInterface = (*Manager)(nil)
