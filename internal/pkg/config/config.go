package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, credentials)
// - default: Values common across all environments (timeouts, limits, thresholds)
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	CORS      CORSConfig
	Log       LogConfig
	Auth      AuthConfig
	Bol       BolConfig
	Scraper   ScraperConfig
	Affiliate AffiliateConfig
	Sync      SyncConfig
	AI        AIConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Europe/Amsterdam"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Europe/Amsterdam"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"7200"` // 2*60*60
}

type AuthConfig struct {
	JWTSecret   string        `envconfig:"JWT_SECRET" required:"true"`
	JWTDuration time.Duration `envconfig:"JWT_DURATION" default:"24h"`
	AdminSecret string        `envconfig:"ADMIN_SECRET" required:"true"`
}

// BolConfig holds credentials and pacing for the Bol.com marketing catalog API.
type BolConfig struct {
	ClientID      string        `envconfig:"BOL_CLIENT_ID"`
	ClientSecret  string        `envconfig:"BOL_CLIENT_SECRET"`
	BaseURL       string        `envconfig:"BOL_BASE_URL" default:"https://api.bol.com/marketing/catalog/v1"`
	AuthURL       string        `envconfig:"BOL_AUTH_URL" default:"https://login.bol.com/token"`
	CountryCode   string        `envconfig:"BOL_COUNTRY_CODE" default:"NL"`
	RatePerSecond float64       `envconfig:"BOL_RATE_PER_SECOND" default:"10"`
	Timeout       time.Duration `envconfig:"BOL_TIMEOUT" default:"30s"`
	Retries       int           `envconfig:"BOL_RETRIES" default:"3"`
	CacheSize     int           `envconfig:"BOL_CACHE_SIZE" default:"100"`
}

// ScraperConfig drives the best-effort partner-site automation session.
type ScraperConfig struct {
	Enabled  bool   `envconfig:"SCRAPER_ENABLED" default:"false"`
	Email    string `envconfig:"SCRAPER_EMAIL"`
	Password string `envconfig:"SCRAPER_PASSWORD"`
	BaseURL  string `envconfig:"SCRAPER_BASE_URL" default:"https://partner.bol.com"`
}

type AffiliateConfig struct {
	SiteCode  string `envconfig:"AFFILIATE_SITE_CODE"`
	PartnerID string `envconfig:"AFFILIATE_PARTNER_ID"`
}

const (
	DefaultSyncBatchLimit   = 50
	DefaultDealThresholdPct = 15.0
)

type SyncConfig struct {
	Interval          time.Duration `envconfig:"SYNC_INTERVAL" default:"6h"`
	BatchLimit        int           `envconfig:"SYNC_BATCH_LIMIT" default:"50"`
	DealThresholdPct  float64       `envconfig:"SYNC_DEAL_THRESHOLD_PCT" default:"15"`
	SchedulerDisabled bool          `envconfig:"SYNC_SCHEDULER_DISABLED" default:"false"`
	// SearchTerms feed the scheduled ingestion stage, one search sync per term.
	SearchTerms []string `envconfig:"SYNC_SEARCH_TERMS" default:"airfryer,koptelefoon,smartwatch,stofzuiger"`
	// CategoryIDs add a popular-products sync per category when set.
	CategoryIDs []string `envconfig:"SYNC_CATEGORY_IDS"`
}

type AIConfig struct {
	APIKey  string `envconfig:"AI_API_KEY"`
	BaseURL string `envconfig:"AI_BASE_URL" default:"https://api.abacus.ai/v1"`
	Model   string `envconfig:"AI_MODEL" default:"claude-3-5-sonnet"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Europe/Amsterdam",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Europe/Amsterdam",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 7200,
		},
		Auth: AuthConfig{
			JWTSecret:   "test-secret",
			JWTDuration: time.Hour,
			AdminSecret: "test-admin-secret",
		},
		Bol: BolConfig{
			ClientID:      "test-client",
			ClientSecret:  "test-secret",
			BaseURL:       "https://api.bol.com/marketing/catalog/v1",
			AuthURL:       "https://login.bol.com/token",
			CountryCode:   "NL",
			RatePerSecond: 10,
			Timeout:       30 * time.Second,
			Retries:       3,
			CacheSize:     100,
		},
		Affiliate: AffiliateConfig{
			SiteCode:  "1234567",
			PartnerID: "12345",
		},
		Sync: SyncConfig{
			Interval:         6 * time.Hour,
			BatchLimit:       50,
			DealThresholdPct: 15,
		},
	}
}
