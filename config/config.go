package config

import (
	"os"
	"strconv"
)

type Config struct {
	ServerPort  string
	MongoURI    string
	MongoDBName string
	JWTSecret   string
	// TokenExpiryHours controls how long issued auth tokens stay valid.
	TokenExpiryHours int
	LogFile          string
}

func Load() *Config {
	return &Config{
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		MongoURI:         getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:      getEnv("MONGO_DB_NAME", "project-manager"),
		JWTSecret:        getEnv("JWT_SECRET", "supersecret"),
		TokenExpiryHours: getEnvInt("TOKEN_EXPIRY_HOURS", 24),
		LogFile:          getEnv("LOG_FILE", "logs/backend.log"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
