package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	Env       string
	Providers ProviderConfig
	Catalog   CatalogConfig
	DeviceDSN string
}

type ProviderConfig struct {
	Default         string
	Timeout         time.Duration
	GeminiKey       string
	GeminiModel     string
	GroqKey         string
	GroqModel       string
	MistralKey      string
	MistralModel    string
	OpenRouterKey   string
	OpenRouterModel string
}

type CatalogConfig struct {
	PostgresDSN   string
	MinioEndpoint string
	FilePath      string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port := flag.String("port", ":8081", "server port")
	flag.Parse()

	if envPort := os.Getenv("PORT"); envPort != "" {
		if strings.HasPrefix(envPort, ":") {
			*port = envPort
		} else {
			*port = ":" + envPort
		}
	}

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}

	timeout := 45 * time.Second
	if raw := strings.TrimSpace(os.Getenv("PROVIDER_TIMEOUT")); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			timeout = d
		}
	}

	return &Config{
		Port: *port,
		Env:  env,
		Providers: ProviderConfig{
			Default:         firstNonEmpty(strings.TrimSpace(os.Getenv("PROVIDER_DEFAULT")), "gemini"),
			Timeout:         timeout,
			GeminiKey:       strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
			GeminiModel:     strings.TrimSpace(os.Getenv("GEMINI_MODEL")),
			GroqKey:         strings.TrimSpace(os.Getenv("GROQ_API_KEY")),
			GroqModel:       strings.TrimSpace(os.Getenv("GROQ_MODEL")),
			MistralKey:      strings.TrimSpace(os.Getenv("MISTRAL_API_KEY")),
			MistralModel:    strings.TrimSpace(os.Getenv("MISTRAL_MODEL")),
			OpenRouterKey:   strings.TrimSpace(os.Getenv("OPENROUTER_API_KEY")),
			OpenRouterModel: strings.TrimSpace(os.Getenv("OPENROUTER_MODEL")),
		},
		Catalog: CatalogConfig{
			PostgresDSN:   strings.TrimSpace(os.Getenv("CATALOG_PG_DSN")),
			MinioEndpoint: strings.TrimSpace(os.Getenv("CATALOG_MINIO_ENDPOINT")),
			FilePath:      firstNonEmpty(strings.TrimSpace(os.Getenv("CATALOG_FILE_PATH")), "catalog.json"),
		},
		DeviceDSN: strings.TrimSpace(os.Getenv("DEVICE_PG_DSN")),
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
