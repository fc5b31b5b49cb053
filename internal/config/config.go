package config

import "os"

// Config holds server-level settings, read from the environment with
// development defaults.
type Config struct {
	MongoURI  string
	MongoDB   string
	RedisAddr string
	Port      string
	UploadDir string
}

// Load reads the server configuration from the environment.
func Load() *Config {
	return &Config{
		MongoURI:  getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:   getEnvOrDefault("MONGO_DB", "samvad"),
		RedisAddr: getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		Port:      getEnvOrDefault("PORT", "8080"),
		UploadDir: getEnvOrDefault("UPLOAD_DIR", "uploads"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
