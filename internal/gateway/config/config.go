package config

import (
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Env         string
	DatabaseURL string
	Uploads     UploadsConfig
	LLM         LLMConfig
	Files       FilesConfig
}

// UploadsConfig points at the S3-compatible store for deliverable files.
type UploadsConfig struct {
	Enabled   bool
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// LLMConfig controls the assistant reply generator. When disabled, replies
// come from the built-in templates.
type LLMConfig struct {
	Enabled bool
	APIKey  string
	Model   string
}

// FilesConfig names the JSON fallback files used when no database is
// configured.
type FilesConfig struct {
	DraftsPath      string
	CollectionsPath string
	SettingsPath    string
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

	cfg := Config{
		Port:        *port,
		Env:         env,
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		Uploads:     loadUploadsConfig(env),
		LLM:         loadLLMConfig(),
		Files:       loadFilesConfig(),
	}
	if strings.EqualFold(env, "local") {
		applyLocalDefaults(&cfg)
	}
	return &cfg, nil
}

func loadUploadsConfig(env string) UploadsConfig {
	endpoint := resolveUploadsEndpoint(env)
	return UploadsConfig{
		Enabled:   strings.EqualFold(strings.TrimSpace(env), "local") || endpoint != "",
		Endpoint:  endpoint,
		Region:    firstNonEmpty(strings.TrimSpace(os.Getenv("UPLOADS_S3_REGION")), "us-east-1"),
		AccessKey: firstNonEmpty(strings.TrimSpace(os.Getenv("UPLOADS_S3_ACCESS_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_USER"))),
		SecretKey: firstNonEmpty(strings.TrimSpace(os.Getenv("UPLOADS_S3_SECRET_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_PASSWORD"))),
		Bucket:    firstNonEmpty(strings.TrimSpace(os.Getenv("UPLOADS_S3_BUCKET")), "atelier-deliverables"),
		UseSSL:    resolveUploadsUseSSL(env),
	}
}

func resolveUploadsEndpoint(env string) string {
	if strings.EqualFold(strings.TrimSpace(env), "local") {
		return firstNonEmpty(strings.TrimSpace(os.Getenv("UPLOADS_MINIO_ENDPOINT")), "minio:9000")
	}
	return strings.TrimSpace(os.Getenv("UPLOADS_S3_ENDPOINT"))
}

func resolveUploadsUseSSL(env string) bool {
	if strings.EqualFold(strings.TrimSpace(env), "local") {
		return false
	}
	raw := strings.TrimSpace(os.Getenv("UPLOADS_S3_USE_SSL"))
	if raw == "" {
		return true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return true
	}
	return v
}

func loadLLMConfig() LLMConfig {
	key := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	enabled := key != ""
	if raw := strings.TrimSpace(os.Getenv("LLM_ENABLED")); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			enabled = enabled && v
		}
	}
	return LLMConfig{
		Enabled: enabled,
		APIKey:  key,
		Model:   firstNonEmpty(strings.TrimSpace(os.Getenv("LLM_MODEL")), "gemini-2.0-flash"),
	}
}

func loadFilesConfig() FilesConfig {
	return FilesConfig{
		DraftsPath:      firstNonEmpty(strings.TrimSpace(os.Getenv("DRAFTS_FILE")), "data/drafts.json"),
		CollectionsPath: firstNonEmpty(strings.TrimSpace(os.Getenv("COLLECTIONS_FILE")), "data/collections.json"),
		SettingsPath:    firstNonEmpty(strings.TrimSpace(os.Getenv("SETTINGS_FILE")), "data/settings.json"),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
