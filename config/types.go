package config

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0"`
}

// RoutingConfig contains directions provider configuration
type RoutingConfig struct {
	BaseURL   string `yaml:"baseURL" validate:"omitempty,url"`
	APIKey    string `yaml:"apiKey"`
	Profile   string `yaml:"profile"`
	TimeoutMS int    `yaml:"timeoutMS" validate:"gte=0"`
}

// VenuesConfig contains the dataset file locations
type VenuesConfig struct {
	VenuesPath  string `yaml:"venuesPath"`
	ClassesPath string `yaml:"classesPath"`
	Watch       bool   `yaml:"watch"`
}

// SpeechConfig selects the synthesizer used for spoken announcements.
// Command is an external TTS program invoked once per utterance; when empty,
// announcements are silently discarded.
type SpeechConfig struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
}

// ExplainConfig contains LLM route-explanation configuration
type ExplainConfig struct {
	BaseURL   string `yaml:"baseURL" validate:"omitempty,url"`
	APIKey    string `yaml:"apiKey"`
	Model     string `yaml:"model"`
	TimeoutMS int    `yaml:"timeoutMS" validate:"gte=0"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server  ServerConfig  `yaml:"server" validate:"required"`
	Routing RoutingConfig `yaml:"routing"`
	Venues  VenuesConfig  `yaml:"venues"`
	Speech  SpeechConfig  `yaml:"speech"`
	Explain ExplainConfig `yaml:"explain"`
}
