package internal

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"http_server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Security      SecurityConfig      `mapstructure:"security" validate:"required"`
	Categorizer   CategorizerConfig   `mapstructure:"categorizer"`
	Recognizer    RecognizerConfig    `mapstructure:"recognizer"`
	Ingestion     IngestionConfig     `mapstructure:"ingestion"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port"`
	BaseURL           string        `mapstructure:"base_url"`
	AllowedOrigins    string        `mapstructure:"allowed_origins"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	MaxUploadBytes    int64         `mapstructure:"max_upload_bytes"`
	OpenAPIPath       string        `mapstructure:"openapi_path"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver" validate:"oneof=postgres sqlite"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"required,min=1"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"required,min=1"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"required,min=1m"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time" validate:"required,min=1m"`
	Source          string        `mapstructure:"source"`
}

type SecurityConfig struct {
	JWTSecret           string        `mapstructure:"jwt_secret" validate:"required,min=32"`
	AccessTokenDuration time.Duration `mapstructure:"access_token_duration" validate:"required,min=1m"`
	BCryptCost          int           `mapstructure:"bcrypt_cost" validate:"required,min=10,max=15"`
}

// CategorizerConfig configures the language model used to label bill items.
// APIKey is only ever read from configuration or the environment.
// The sampling fields are pointers so an explicit zero is kept.
type CategorizerConfig struct {
	APIKey          string        `mapstructure:"api_key"`
	Model           string        `mapstructure:"model"`
	Timeout         time.Duration `mapstructure:"timeout"`
	MaxAttempts     int           `mapstructure:"max_attempts"`
	Temperature     *float32      `mapstructure:"temperature"`
	TopP            *float32      `mapstructure:"top_p"`
	TopK            *float32      `mapstructure:"top_k"`
	MaxOutputTokens int32         `mapstructure:"max_output_tokens"`
}

type RecognizerConfig struct {
	Provider             string `mapstructure:"provider" validate:"oneof=tesseract azure"`
	TesseractPath        string `mapstructure:"tesseract_path"`
	PageSegmentationMode int    `mapstructure:"page_segmentation_mode"`
	AzureEndpoint        string `mapstructure:"azure_endpoint"`
	AzureAPIKey          string `mapstructure:"azure_api_key"`
}

type IngestionConfig struct {
	MaxWorkers   int           `mapstructure:"max_workers"`
	BatchTimeout time.Duration `mapstructure:"batch_timeout"`
	TempDir      string        `mapstructure:"temp_dir"`
	Alignment    string        `mapstructure:"alignment" validate:"oneof=truncate strict"`
}

type ObservabilityConfig struct {
	Logging LoggingConfig `mapstructure:"logging"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}

// LoadConfigFromEnv builds the configuration for container deployments where no config file is mounted.
func LoadConfigFromEnv() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Port:              getEnvAsInt("HTTP_PORT", 8080),
			BaseURL:           getEnv("BASE_URL", ""),
			AllowedOrigins:    getEnv("ALLOWED_ORIGINS", "*"),
			ReadHeaderTimeout: getEnvAsDuration("HTTP_READ_HEADER_TIMEOUT", 5*time.Second),
			ReadTimeout:       getEnvAsDuration("HTTP_READ_TIMEOUT", 30*time.Second),
			IdleTimeout:       getEnvAsDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
			WriteTimeout:      getEnvAsDuration("HTTP_WRITE_TIMEOUT", 90*time.Second),
			MaxUploadBytes:    int64(getEnvAsInt("HTTP_MAX_UPLOAD_BYTES", 10<<20)),
			OpenAPIPath:       getEnv("OPENAPI_PATH", "./api/openapi.yml"),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", "postgres"),
			Source:          getEnv("DB_SOURCE", ""),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 20),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			ConnMaxIdleTime: getEnvAsDuration("DB_CONN_MAX_IDLE_TIME", 5*time.Minute),
		},
		Security: SecurityConfig{
			JWTSecret:           getEnv("JWT_SECRET", ""),
			AccessTokenDuration: getEnvAsDuration("ACCESS_TOKEN_DURATION", 24*time.Hour),
			BCryptCost:          getEnvAsInt("BCRYPT_COST", 12),
		},
		Categorizer: CategorizerConfig{
			APIKey:      getEnv("GEMINI_API_KEY", ""),
			Model:       getEnv("CATEGORIZER_MODEL", ""),
			Timeout:     getEnvAsDuration("CATEGORIZER_TIMEOUT", 0),
			MaxAttempts: getEnvAsInt("CATEGORIZER_MAX_ATTEMPTS", 0),
			Temperature: getEnvAsFloat32("CATEGORIZER_TEMPERATURE"),
			TopP:        getEnvAsFloat32("CATEGORIZER_TOP_P"),
			TopK:        getEnvAsFloat32("CATEGORIZER_TOP_K"),
		},
		Recognizer: RecognizerConfig{
			Provider:             getEnv("OCR_PROVIDER", "tesseract"),
			TesseractPath:        getEnv("TESSERACT_PATH", ""),
			PageSegmentationMode: getEnvAsInt("TESSERACT_PSM", 0),
			AzureEndpoint:        getEnv("AZURE_ENDPOINT", ""),
			AzureAPIKey:          getEnv("AZURE_API_KEY", ""),
		},
		Ingestion: IngestionConfig{
			MaxWorkers:   getEnvAsInt("INGESTION_MAX_WORKERS", 0),
			BatchTimeout: getEnvAsDuration("INGESTION_BATCH_TIMEOUT", 0),
			TempDir:      getEnv("INGESTION_TEMP_DIR", ""),
			Alignment:    getEnv("INGESTION_ALIGNMENT", "truncate"),
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  getEnv("LOG_LEVEL", "info"),
				Format: getEnv("LOG_FORMAT", "json"),
			},
		},
	}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills zero values with the values the service was tuned for.
func (c *Config) ApplyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.MaxUploadBytes <= 0 {
		c.Server.MaxUploadBytes = 10 << 20
	}
	if c.Server.OpenAPIPath == "" {
		c.Server.OpenAPIPath = "./api/openapi.yml"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "postgres"
	}
	if c.Security.AccessTokenDuration == 0 {
		c.Security.AccessTokenDuration = 24 * time.Hour
	}
	if c.Security.BCryptCost == 0 {
		c.Security.BCryptCost = 12
	}
	if c.Categorizer.Model == "" {
		c.Categorizer.Model = "gemini-2.0-flash"
	}
	if c.Categorizer.Timeout <= 0 {
		c.Categorizer.Timeout = 20 * time.Second
	}
	if c.Categorizer.MaxAttempts <= 0 {
		c.Categorizer.MaxAttempts = 2
	}
	if c.Categorizer.Temperature == nil {
		c.Categorizer.Temperature = float32Ptr(0.3)
	}
	if c.Categorizer.TopP == nil {
		c.Categorizer.TopP = float32Ptr(0.8)
	}
	if c.Categorizer.TopK == nil {
		c.Categorizer.TopK = float32Ptr(40)
	}
	if c.Categorizer.MaxOutputTokens == 0 {
		c.Categorizer.MaxOutputTokens = 50
	}
	if c.Recognizer.Provider == "" {
		c.Recognizer.Provider = "tesseract"
	}
	if c.Recognizer.TesseractPath == "" {
		c.Recognizer.TesseractPath = "tesseract"
	}
	if c.Recognizer.PageSegmentationMode == 0 {
		c.Recognizer.PageSegmentationMode = 6
	}
	if c.Ingestion.MaxWorkers <= 0 {
		c.Ingestion.MaxWorkers = 4
	}
	if c.Ingestion.BatchTimeout <= 0 {
		c.Ingestion.BatchTimeout = 60 * time.Second
	}
	if c.Ingestion.Alignment == "" {
		c.Ingestion.Alignment = "truncate"
	}
	if c.Observability.Logging.Level == "" {
		c.Observability.Logging.Level = "info"
	}
	if c.Observability.Logging.Format == "" {
		c.Observability.Logging.Format = "text"
	}
}

// ----------------- HELPERS -----------------

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultVal
}

// getEnvAsFloat32 returns nil when the variable is unset or malformed.
func getEnvAsFloat32(key string) *float32 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 32); err == nil {
			return float32Ptr(float32(f))
		}
	}
	return nil
}

func float32Ptr(f float32) *float32 {
	return &f
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("database config: %v", err))
	}

	if err := c.Security.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("security config: %v", err))
	}

	if err := c.Recognizer.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("recognizer config: %v", err))
	}

	if err := c.Ingestion.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("ingestion config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	if c.AllowedOrigins != "" {
		origins := strings.Split(c.AllowedOrigins, ",")
		for _, origin := range origins {
			origin = strings.TrimSpace(origin)
			if origin == "*" {
				continue
			}
			if _, err := url.Parse(origin); err != nil {
				return fmt.Errorf("invalid allowed origin %s: %w", origin, err)
			}
		}
	}
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

func (c *DatabaseConfig) Validate() error {
	if c.Driver != "postgres" && c.Driver != "sqlite" {
		return fmt.Errorf("unsupported driver %q", c.Driver)
	}
	if c.Source == "" {
		return errors.New("source is required")
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

func (c *DatabaseConfig) GetDSN() string {
	return c.Source
}

func (c *SecurityConfig) Validate() error {
	if len(c.JWTSecret) < 32 {
		return errors.New("jwt secret must be at least 32 characters")
	}
	if c.BCryptCost < 10 || c.BCryptCost > 15 {
		return errors.New("bcrypt_cost must be between 10 and 15")
	}
	return nil
}

func (c *RecognizerConfig) Validate() error {
	switch c.Provider {
	case "tesseract":
		return nil
	case "azure":
		if c.AzureEndpoint == "" || c.AzureAPIKey == "" {
			return errors.New("azure_endpoint and azure_api_key are required for the azure provider")
		}
		return nil
	default:
		return fmt.Errorf("unsupported provider %q", c.Provider)
	}
}

func (c *IngestionConfig) Validate() error {
	if c.Alignment != "truncate" && c.Alignment != "strict" {
		return fmt.Errorf("alignment must be truncate or strict, got %q", c.Alignment)
	}
	return nil
}
