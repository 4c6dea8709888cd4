package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort           = "8080"
	defaultLogLevel       = "info"
	defaultMaxUploadMB    = 20
	defaultTimeoutSeconds = 180
)

// STORAGE_BACKEND で指定できるストレージです。空なら gs:// や s3:// を受け付けません。
const (
	StorageNone = ""
	StorageGCS  = "gcs"
	StorageS3   = "s3"
)

// ErrMissingAPIKey は API キーが設定されていないことを表します。
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY (or API_KEY) is not set")

// Config はサーバーの起動設定です。
type Config struct {
	APIKey      string
	TextModel   string
	ImageModel  string
	Port        string
	LogLevel    slog.Level
	MaxUploadMB int64
	HTTPTimeout time.Duration
	// StorageBackend は <field>_url のオブジェクトストレージ参照に使うバックエンドです。
	StorageBackend string
}

// Load は .env (存在すれば) と環境変数から設定を読み込みます。
// 既に設定されている環境変数は .env で上書きされません。
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	apiKey := getEnv("GEMINI_API_KEY", "")
	if apiKey == "" {
		apiKey = getEnv("API_KEY", "")
	}
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	level, err := parseLevel(getEnv("LOG_LEVEL", defaultLogLevel))
	if err != nil {
		return nil, err
	}
	maxUpload, err := getPositiveInt("MAX_UPLOAD_MB", defaultMaxUploadMB)
	if err != nil {
		return nil, err
	}
	timeout, err := getPositiveInt("HTTP_TIMEOUT_SECONDS", defaultTimeoutSeconds)
	if err != nil {
		return nil, err
	}

	backend, err := parseStorageBackend(getEnv("STORAGE_BACKEND", StorageNone))
	if err != nil {
		return nil, err
	}

	return &Config{
		APIKey:         apiKey,
		TextModel:      getEnv("GEMINI_TEXT_MODEL", ""),
		ImageModel:     getEnv("GEMINI_IMAGE_MODEL", ""),
		Port:           getEnv("PORT", defaultPort),
		LogLevel:       level,
		MaxUploadMB:    int64(maxUpload),
		HTTPTimeout:    time.Duration(timeout) * time.Second,
		StorageBackend: backend,
	}, nil
}

// MaxUploadBytes はアップロード全体の上限をバイトで返します。
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

// Addr は待ち受けアドレスを返します。
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getPositiveInt(key string, fallback int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer: %q", key, raw)
	}
	return v, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", s, err)
	}
	return level, nil
}

func parseStorageBackend(s string) (string, error) {
	switch v := strings.ToLower(s); v {
	case StorageNone, StorageGCS, StorageS3:
		return v, nil
	default:
		return "", fmt.Errorf("invalid STORAGE_BACKEND %q: must be gcs or s3", s)
	}
}
