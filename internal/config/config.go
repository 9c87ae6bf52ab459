package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	SessionSecret       string
	DatabaseURL         string // empty = in-memory SQLite; postgres:// = Postgres; anything else = SQLite file
	RedisURL            string // empty = embedded miniredis
	FrontendURLEndsWith string
	DevPassword         string
	AllowCrossSiteDev   bool
	HealthAdminKey      string

	DemoPassword       string // password given to every seeded demo user
	SeedDemoData       bool
	AllowExpiredClaims bool
	NotificationLimit  int64 // activity entries kept in Redis

	ExpiryReminderSchedule string // cron spec, e.g. "@every 5m"; empty disables the job
	ExpiryReminderWindow   time.Duration
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DEMO_PASSWORD", "foodshare123")
	viper.SetDefault("SEED_DEMO_DATA", true)
	viper.SetDefault("ALLOW_EXPIRED_CLAIMS", false)
	viper.SetDefault("NOTIFICATION_HISTORY", 50)
	viper.SetDefault("EXPIRY_REMINDER_SCHEDULE", "@every 5m")
	viper.SetDefault("EXPIRY_REMINDER_WINDOW", "30m")

	return &Config{
		Env:                    viper.GetString("APP_ENV"),
		Port:                   viper.GetString("PORT"),
		SessionSecret:          viper.GetString("SESSION_SECRET"),
		DatabaseURL:            strings.TrimSpace(viper.GetString("DATABASE_URL")),
		RedisURL:               strings.TrimSpace(viper.GetString("REDIS_URL")),
		FrontendURLEndsWith:    viper.GetString("FRONTEND_URL_ENDS_WITH"),
		DevPassword:            viper.GetString("DEV_PASSWORD"),
		AllowCrossSiteDev:      viper.GetBool("ALLOW_CROSS_SITE_DEV"),
		HealthAdminKey:         viper.GetString("HEALTH_ADMIN_KEY"),
		DemoPassword:           viper.GetString("DEMO_PASSWORD"),
		SeedDemoData:           viper.GetBool("SEED_DEMO_DATA"),
		AllowExpiredClaims:     viper.GetBool("ALLOW_EXPIRED_CLAIMS"),
		NotificationLimit:      notificationLimit(viper.GetInt64("NOTIFICATION_HISTORY")),
		ExpiryReminderSchedule: strings.TrimSpace(viper.GetString("EXPIRY_REMINDER_SCHEDULE")),
		ExpiryReminderWindow:   viper.GetDuration("EXPIRY_REMINDER_WINDOW"),
	}, nil
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func notificationLimit(n int64) int64 {
	if n <= 0 {
		return 50
	}
	return n
}
