package config

import "os"

type Config struct {
	HTTPAddr      string
	MongoURI      string
	MongoDB       string
	JWTSecret     string
	TokenTTLHours int
	AssetsDir     string
	TemplateDir   string
	GelfAddr      string
}

func Load() *Config {
	return &Config{
		HTTPAddr:      getEnv("FORMS_ADDR", ":8080"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
		MongoDB:       getEnv("MONGO_DB", "formdesk"),
		JWTSecret:     getEnv("FORMS_JWT_SECRET", "formdesk-dev-secret-change-me"),
		TokenTTLHours: getEnvInt("FORMS_TOKEN_TTL_HOURS", 24),
		AssetsDir:     getEnv("FORMS_ASSET_DIR", "assets/forms"),
		TemplateDir:   getEnv("FORMS_TEMPLATE_DIR", "assets/templates"),
		GelfAddr:      getEnv("GELF_ADDR", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n := 0
	for _, c := range v {
		if c < '0' || c > '9' {
			return fallback
		}
		n = n*10 + int(c-'0')
	}
	return n
}
