package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const LOCAL_DB_PATH string = "./database/bookings.json"
const USER_DB_PATH string = "./database/userdata.json"

const (
	DefaultPort             = "80"
	DefaultTokenTTL         = 8 * time.Hour
	DefaultMongoDatabase    = "banquet-service"
	DefaultMongoConnTimeout = 10 * time.Second
	DefaultBookingAPIURL    = "https://regalia-backend.vercel.app"
	DefaultFetchTimeout     = 5 * time.Second
	DefaultPreviewTimeout   = 20 * time.Second
	DefaultPreviewIdleTTL   = 30 * time.Minute
	DefaultSweepInterval    = time.Minute
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "json"
)

const (
	EnvPort             = "PORT"
	EnvSign             = "SIGN"
	EnvTokenTTL         = "TOKEN_TTL"
	EnvMongoConnString  = "MONGODB_CONNSTRING"
	EnvMongoDatabase    = "MONGODB_DATABASE"
	EnvMongoConnTimeout = "MONGO_CONN_TIMEOUT"
	EnvLocalDBPath      = "LOCAL_DB_PATH"
	EnvUserDBPath       = "USER_DB_PATH"
	EnvBookingAPIURL    = "BOOKING_API_URL"
	EnvMenuEndpoints    = "MENU_ENDPOINTS"
	EnvFetchTimeout     = "FETCH_TIMEOUT"
	EnvPreviewTimeout   = "PREVIEW_TIMEOUT"
	EnvPreviewIdleTTL   = "PREVIEW_IDLE_TTL"
	EnvSweepInterval    = "SWEEP_INTERVAL"
	EnvLogLevel         = "LOG_LEVEL"
	EnvLogFormat        = "LOG_FORMAT"
)

type Config struct {
	Port     string        `validate:"required,numeric"`
	Sign     string        `validate:"required"`
	TokenTTL time.Duration `validate:"gt=0s"`

	MongoConnString  string
	MongoDatabase    string        `validate:"required"`
	MongoConnTimeout time.Duration `validate:"gt=0s"`

	LocalDBPath string `validate:"required"`
	UserDBPath  string `validate:"required"`

	BookingAPIURL  string        `validate:"omitempty,url"`
	MenuEndpoints  []string      `validate:"dive,required"`
	FetchTimeout   time.Duration `validate:"gt=0s"`
	PreviewTimeout time.Duration `validate:"gt=0s"`
	PreviewIdleTTL time.Duration `validate:"gt=0s"`
	SweepInterval  time.Duration `validate:"gt=0s"`

	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=json console"`
}

func GetSecret(key string) (string, error) {
	val, exist := os.LookupEnv(key)
	if exist {
		return val, nil
	}
	return "", fmt.Errorf("no env variable with key %v", key)
}

// Load reads .env (if present) and the environment, then validates the result.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:     getEnvStr(EnvPort, DefaultPort),
		TokenTTL: getEnvDuration(EnvTokenTTL, DefaultTokenTTL),

		MongoConnString:  getEnvStr(EnvMongoConnString, ""),
		MongoDatabase:    getEnvStr(EnvMongoDatabase, DefaultMongoDatabase),
		MongoConnTimeout: getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		LocalDBPath: getEnvStr(EnvLocalDBPath, LOCAL_DB_PATH),
		UserDBPath:  getEnvStr(EnvUserDBPath, USER_DB_PATH),

		BookingAPIURL:  strings.TrimRight(getEnvStr(EnvBookingAPIURL, DefaultBookingAPIURL), "/"),
		FetchTimeout:   getEnvDuration(EnvFetchTimeout, DefaultFetchTimeout),
		PreviewTimeout: getEnvDuration(EnvPreviewTimeout, DefaultPreviewTimeout),
		PreviewIdleTTL: getEnvDuration(EnvPreviewIdleTTL, DefaultPreviewIdleTTL),
		SweepInterval:  getEnvDuration(EnvSweepInterval, DefaultSweepInterval),

		LogLevel:  getEnvStr(EnvLogLevel, DefaultLogLevel),
		LogFormat: getEnvStr(EnvLogFormat, DefaultLogFormat),
	}

	sign, err := GetSecret(EnvSign)
	if err != nil {
		return nil, err
	}
	cfg.Sign = sign

	cfg.MenuEndpoints = splitList(getEnvStr(EnvMenuEndpoints, ""))
	if len(cfg.MenuEndpoints) == 0 {
		cfg.MenuEndpoints = DefaultMenuEndpoints(cfg.BookingAPIURL)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultMenuEndpoints are the booking API routes that may hold a booking's menu,
// in the order they are tried.
func DefaultMenuEndpoints(baseURL string) []string {
	if baseURL == "" {
		return nil
	}
	return []string{
		baseURL + "/api/banquet-menus/{id}",
		baseURL + "/api/menus/all/{ref}",
		baseURL + "/api/menus/{id}",
	}
}

func (cfg *Config) UseMongo() bool {
	return cfg.MongoConnString != ""
}

func (cfg *Config) Validate() error {
	err := validator.New().Struct(cfg)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	errMsg := "Configuration validation failed:\n"
	for i, fieldErr := range validationErrs {
		errMsg += fmt.Sprintf("  %d. %s failed on '%s' (got: %v)\n", i+1, fieldErr.Namespace(), fieldErr.Tag(), redact(fieldErr))
	}
	return fmt.Errorf("%s", errMsg)
}

func redact(fieldErr validator.FieldError) any {
	if fieldErr.Field() == "Sign" {
		return "***"
	}
	return fieldErr.Value()
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
