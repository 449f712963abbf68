package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	Environment string

	FirebaseProject            string
	FirebaseApiKey             string
	FirebaseDatabaseURL        string
	FirebaseServiceAccountJSON string
	FirebaseServiceAccountPath string
	StorageBucket              string

	ClassifierURL            string
	ClassifierTimeoutSeconds int64

	RedisURL                 string
	ImageProxyCacheTTLSecond int64
	ImageProxyMaxBytes       int64
	ImageProxyTimeoutSeconds int64
	ImageProxyAllowedHosts   []string

	ModerationPolicyFile string
	AllowedOrigins       []string
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		FirebaseProject:            getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseApiKey:             getEnv("FIREBASE_API_KEY", ""),
		FirebaseDatabaseURL:        getEnv("FIREBASE_DATABASE_URL", ""),
		FirebaseServiceAccountJSON: getEnv("FIREBASE_SERVICE_ACCOUNT_JSON", ""),
		FirebaseServiceAccountPath: getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", ""),
		StorageBucket:              getEnv("STORAGE_BUCKET", ""),

		ClassifierURL:            getEnv("CLASSIFIER_URL", "http://localhost:8501/classify"),
		ClassifierTimeoutSeconds: getEnvAsInt64("CLASSIFIER_TIMEOUT_SECONDS", 30),

		RedisURL:                 getEnv("REDIS_URL", ""),
		ImageProxyCacheTTLSecond: getEnvAsInt64("IMAGE_PROXY_CACHE_TTL_SECONDS", 60*60),
		ImageProxyMaxBytes:       getEnvAsInt64("IMAGE_PROXY_MAX_BYTES", 10*1024*1024), // 10MB
		ImageProxyTimeoutSeconds: getEnvAsInt64("IMAGE_PROXY_TIMEOUT_SECONDS", 15),
		ImageProxyAllowedHosts:   getEnvAsList("IMAGE_PROXY_ALLOWED_HOSTS", nil),

		ModerationPolicyFile: getEnv("MODERATION_POLICY_FILE", ""),
		AllowedOrigins:       getEnvAsList("ALLOWED_ORIGINS", []string{"*"}),
	}

	return config, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
