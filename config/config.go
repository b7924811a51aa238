package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port        int
	DatabaseURL string
	BaseURL     string
	AssetDir    string
	CacheSize   int
	LogLevel    string
}

func LoadConfig() Config {
	port, _ := strconv.Atoi(getEnv("PORT", "8080"))
	cacheSize, _ := strconv.Atoi(getEnv("CACHE_SIZE", "1000"))

	return Config{
		Port:        port,
		DatabaseURL: getEnv("DATABASE_URL", "shares.db"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
		AssetDir:    getEnv("ASSET_DIR", "assets"),
		CacheSize:   cacheSize,
		LogLevel:    getEnv("LOG_LEVEL", "INFO"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
