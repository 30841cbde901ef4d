package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Catalogue source: "default", "file" or "mongo".
	CatalogueSource string `mapstructure:"CATALOGUE_SOURCE"`
	CatalogueFile   string `mapstructure:"CATALOGUE_FILE"`
	DatabaseURL     string `mapstructure:"DATABASE_URL"`
	DatabaseName    string `mapstructure:"DATABASE_NAME"`

	// Scheduling.
	BusinessTimezone       string  `mapstructure:"BUSINESS_TIMEZONE"`
	SlotOpen               string  `mapstructure:"SLOT_OPEN"`
	SlotClose              string  `mapstructure:"SLOT_CLOSE"`
	SlotGranularityMinutes int     `mapstructure:"SLOT_GRANULARITY_MINUTES"`
	SlotOpenRatio          float64 `mapstructure:"SLOT_OPEN_RATIO"`
	BookingHorizonDays     int     `mapstructure:"BOOKING_HORIZON_DAYS"`

	// Booking sessions and submission.
	SessionTTL          time.Duration `mapstructure:"SESSION_TTL"`
	SubmitTimeout       time.Duration `mapstructure:"SUBMIT_TIMEOUT"`
	BookingAPIURL       string        `mapstructure:"BOOKING_API_URL"`
	SimulatedAPILatency time.Duration `mapstructure:"SIMULATED_API_LATENCY"`
	ReminderLead        time.Duration `mapstructure:"REMINDER_LEAD"`

	// Pricing.
	MembershipDiscountPercent int64 `mapstructure:"MEMBERSHIP_DISCOUNT_PERCENT"`

	// Geolocation acquisition.
	GeoHighAccuracy bool          `mapstructure:"GEO_HIGH_ACCURACY"`
	GeoTimeout      time.Duration `mapstructure:"GEO_TIMEOUT"`
	GeoMaxCacheAge  time.Duration `mapstructure:"GEO_MAX_CACHE_AGE"`
	GeoIPAPIURL     string        `mapstructure:"GEO_IP_API_URL"`
}

var AppConfig Config

// SetDefaults registers a default for every key so AutomaticEnv can resolve them on Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("REDIS_QUEUE_DB", 1)
	v.SetDefault("CATALOGUE_SOURCE", "default")
	v.SetDefault("CATALOGUE_FILE", "./config/catalogue.yaml")
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "washbook")
	v.SetDefault("BUSINESS_TIMEZONE", "America/Los_Angeles")
	v.SetDefault("SLOT_OPEN", "08:00")
	v.SetDefault("SLOT_CLOSE", "18:00")
	v.SetDefault("SLOT_GRANULARITY_MINUTES", 30)
	v.SetDefault("SLOT_OPEN_RATIO", 0.7)
	v.SetDefault("BOOKING_HORIZON_DAYS", 14)
	v.SetDefault("SESSION_TTL", 30*time.Minute)
	v.SetDefault("SUBMIT_TIMEOUT", 15*time.Second)
	v.SetDefault("BOOKING_API_URL", "")
	v.SetDefault("SIMULATED_API_LATENCY", 2*time.Second)
	v.SetDefault("REMINDER_LEAD", time.Hour)
	v.SetDefault("MEMBERSHIP_DISCOUNT_PERCENT", 15)
	v.SetDefault("GEO_HIGH_ACCURACY", true)
	v.SetDefault("GEO_TIMEOUT", 10*time.Second)
	v.SetDefault("GEO_MAX_CACHE_AGE", 5*time.Minute)
	v.SetDefault("GEO_IP_API_URL", "https://ipapi.co")
}

// Load reads configuration into a Config using the given viper instance.
func Load(v *viper.Viper) (Config, error) {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadConfig() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := Load(viper.GetViper())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
