package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	AWS      AWSConfig
	DynamoDB DynamoDBConfig
	NATS     NATSConfig
	Redis    RedisConfig
	Engine   EngineConfig
	Roster   []PlayerConfig
}

type ServerConfig struct {
	HTTPPort    int
	Environment string
	LogLevel    string
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
}

type DynamoDBConfig struct {
	TableName        string
	MaxRetries       int
	UseLocalEndpoint bool
}

type NATSConfig struct {
	URL                  string
	MaxReconnect         int
	ReconnectWaitSeconds int
	TimeoutSeconds       int
}

type RedisConfig struct {
	Address  string
	Password string
	Enabled  bool
}

type EngineConfig struct {
	// AllowHostSubmission decides whether the host of a challenge may submit
	// a score to their own challenge. Off by default.
	AllowHostSubmission  bool
	SweepIntervalSeconds int
}

// PlayerConfig is the fixed roster reference data seeded into storage at startup.
type PlayerConfig struct {
	ID    string
	Name  string
	Color string
}

func Load(configPath string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath(configPath)

	viper.AutomaticEnv()
	viper.SetEnvPrefix("WARRENS")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// No config file is fine in containerized deployments, the env
		// loader fills in the rest.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		return fromEnv(), nil
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if len(cfg.Roster) == 0 {
		cfg.Roster = DefaultRoster()
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.httpport", 8080)
	viper.SetDefault("server.environment", "development")
	viper.SetDefault("server.loglevel", "info")
	viper.SetDefault("dynamodb.tablename", "Challengeboard")
	viper.SetDefault("dynamodb.maxretries", 3)
	viper.SetDefault("nats.maxreconnect", 5)
	viper.SetDefault("nats.reconnectwaitseconds", 2)
	viper.SetDefault("nats.timeoutseconds", 5)
	viper.SetDefault("engine.sweepintervalseconds", 60)
	viper.SetDefault("engine.allowhostsubmission", false)
}

// DefaultRoster is the fixed five-player roster of the competition.
func DefaultRoster() []PlayerConfig {
	return []PlayerConfig{
		{ID: "triggz", Name: "Triggz", Color: "#b91c1c"},
		{ID: "tyrillis", Name: "Tyrillis", Color: "#3b82f6"},
		{ID: "ivory", Name: "Ivory", Color: "#f0f0f0"},
		{ID: "scumby", Name: "Scumby", Color: "#22c55e"},
		{ID: "adz", Name: "Adz", Color: "#fbbf24"},
	}
}
