package hooks

// Config is the top-level configuration for hooks loaded from .toolstatus.hooks.yml.
type Config struct {
	Version int         `yaml:"version"`
	Hooks   HooksConfig `yaml:"hooks"`
}

// HooksConfig contains all hook configurations.
type HooksConfig struct {
	OnToolCall     []*HookConfig `yaml:"on_tool_call"`     // first record seen for a call ID
	OnToolComplete []*HookConfig `yaml:"on_tool_complete"` // call ID becomes completed
}

// HookConfig defines a single hook's configuration.
type HookConfig struct {
	Command string `yaml:"command"`
	Timeout int    `yaml:"timeout"` // seconds, default 30
}

// DefaultTimeout is the default timeout for hook execution in seconds.
const DefaultTimeout = 30
