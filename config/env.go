package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type EnvLoader struct {
	prefix string
}

func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{prefix: prefix}
}

// GetString retrieves a string value from environment variable
// Returns defaultValue if not found
func (e *EnvLoader) GetString(key, defaultValue string) string {
	if value := os.Getenv(e.buildKey(key)); value != "" {
		return value
	}
	return defaultValue
}

// GetInt retrieves an integer value from environment variable
// Returns defaultValue if not found or invalid
func (e *EnvLoader) GetInt(key string, defaultValue int) int {
	value := os.Getenv(e.buildKey(key))
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

// GetBool retrieves a boolean value from environment variable
// Accepts: "true", "1", "yes", "on" for true
// Accepts: "false", "0", "no", "off" for false
func (e *EnvLoader) GetBool(key string, defaultValue bool) bool {
	value := strings.ToLower(os.Getenv(e.buildKey(key)))
	if value == "" {
		return defaultValue
	}

	switch value {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}

// buildKey constructs the full environment variable key with prefix
// Example: prefix="WARRENS", key="NATS_URL" -> "WARRENS_NATS_URL"
func (e *EnvLoader) buildKey(key string) string {
	if e.prefix == "" {
		return key
	}
	return fmt.Sprintf("%s_%s", e.prefix, key)
}

// fromEnv assembles a full config from environment variables when no config
// file is present.
func fromEnv() *Config {
	env := NewEnvLoader("WARRENS")

	return &Config{
		Server: ServerConfig{
			HTTPPort:    env.GetInt("HTTP_PORT", 8080),
			Environment: env.GetString("ENVIRONMENT", "development"),
			LogLevel:    env.GetString("LOG_LEVEL", "info"),
		},
		AWS: AWSConfig{
			Region:   env.GetString("AWS_REGION", "eu-west-1"),
			Endpoint: env.GetString("AWS_ENDPOINT", ""),
		},
		DynamoDB: DynamoDBConfig{
			TableName:        env.GetString("DYNAMODB_TABLE", "Challengeboard"),
			MaxRetries:       env.GetInt("DYNAMODB_MAX_RETRIES", 3),
			UseLocalEndpoint: env.GetBool("DYNAMODB_LOCAL", false),
		},
		NATS: NATSConfig{
			URL:                  env.GetString("NATS_URL", "nats://localhost:4222"),
			MaxReconnect:         env.GetInt("NATS_MAX_RECONNECT", 5),
			ReconnectWaitSeconds: env.GetInt("NATS_RECONNECT_WAIT_SECONDS", 2),
			TimeoutSeconds:       env.GetInt("NATS_TIMEOUT_SECONDS", 5),
		},
		Redis: RedisConfig{
			Address:  env.GetString("REDIS_ADDRESS", "localhost:6379"),
			Password: env.GetString("REDIS_PASSWORD", ""),
			Enabled:  env.GetBool("REDIS_ENABLED", false),
		},
		Engine: EngineConfig{
			AllowHostSubmission:  env.GetBool("ALLOW_HOST_SUBMISSION", false),
			SweepIntervalSeconds: env.GetInt("SWEEP_INTERVAL_SECONDS", 60),
		},
		Roster: DefaultRoster(),
	}
}
