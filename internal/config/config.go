package config

// Config holds all application configuration.
type Config struct {
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	Analysis AnalysisConfig `mapstructure:"analysis" yaml:"analysis"`
	State    StateConfig    `mapstructure:"state" yaml:"state"`
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
}

// LogConfig configures logging behavior.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// AnalysisConfig configures the scoring engine and the consensus analyzer.
type AnalysisConfig struct {
	// Epsilon regularizes the LMC ratio C/(H+epsilon). Must be positive.
	Epsilon float64 `mapstructure:"epsilon" yaml:"epsilon"`
	// SimilarityThreshold is the Jaccard cutoff for clustering claims.
	SimilarityThreshold float64 `mapstructure:"similarity_threshold" yaml:"similarity_threshold"`
	// MinLength is the admission length (in runes) below which a response
	// is rejected before scoring.
	MinLength int `mapstructure:"min_length" yaml:"min_length"`
}

// StateConfig configures analysis history persistence.
type StateConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}
