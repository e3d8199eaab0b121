package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all Sawmill configuration.
type Config struct {
	DBPath   string
	LogLevel string
	Source   SourceConfig
	Oracle   OracleConfig
	Process  ProcessConfig
	Output   OutputConfig
}

// SourceConfig holds log acquisition settings.
type SourceConfig struct {
	Provider     string // "beehive" or "localdir"
	Endpoint     string // index URL or data directory
	Architecture string
	FetchLimit   int
	Window       int // errwindow context lines
}

// OracleConfig holds regex-suggestion service settings.
type OracleConfig struct {
	URL     string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// ProcessConfig holds log processing settings.
type ProcessConfig struct {
	SampleSize int // random-unprocessed sample bound
}

// OutputConfig holds embedding output destination settings.
type OutputConfig struct {
	Format     string // "stdout", "file", "webhook"
	Path       string // file output path
	WebhookURL string
	Legend     bool // include utility-name legend on records
	Pretty     bool // indent stdout JSON
}

// Load reads configuration from viper (env vars with the SAWMILL prefix,
// plus any config file the caller pointed viper at) with sensible defaults.
func Load() Config {
	v := viper.GetViper()
	setDefaults(v)

	return Config{
		DBPath:   v.GetString("db_path"),
		LogLevel: v.GetString("log_level"),
		Source: SourceConfig{
			Provider:     v.GetString("source.provider"),
			Endpoint:     v.GetString("source.endpoint"),
			Architecture: v.GetString("source.architecture"),
			FetchLimit:   v.GetInt("source.fetch_limit"),
			Window:       v.GetInt("source.window"),
		},
		Oracle: OracleConfig{
			URL:     v.GetString("oracle.url"),
			APIKey:  v.GetString("oracle.api_key"),
			Model:   v.GetString("oracle.model"),
			Timeout: v.GetDuration("oracle.timeout"),
		},
		Process: ProcessConfig{
			SampleSize: v.GetInt("process.sample_size"),
		},
		Output: OutputConfig{
			Format:     v.GetString("output.format"),
			Path:       v.GetString("output.path"),
			WebhookURL: v.GetString("output.webhook_url"),
			Legend:     v.GetBool("output.legend"),
			Pretty:     v.GetBool("output.pretty"),
		},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db_path", "data/sawmill.db")
	v.SetDefault("log_level", "info")
	v.SetDefault("source.provider", "beehive")
	v.SetDefault("source.architecture", "x86_64")
	v.SetDefault("source.window", 2)
	v.SetDefault("oracle.url", "https://api.intelligence.io.solutions/api/v1/chat/completions")
	v.SetDefault("oracle.model", "deepseek-ai/DeepSeek-R1")
	v.SetDefault("oracle.timeout", time.Minute)
	v.SetDefault("process.sample_size", 30)
	v.SetDefault("output.format", "stdout")
	v.SetDefault("output.path", "embeddings.ndjson")
	v.SetDefault("output.legend", true)
}
