package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (bot token, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, schedules, policies), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	CORS      CORSConfig
	Log       LogConfig
	JWT       JWTConfig
	Telegram  TelegramConfig
	Voucher   VoucherConfig
	Cashback  CashbackConfig
	Broadcast BroadcastConfig
	Scheduler SchedulerConfig
	Storage   StorageConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"kuponbot"`
	Password string `envconfig:"DB_PASSWORD" default:""`
	DBName   string `envconfig:"DB_NAME" default:"kuponbot"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Tashkent"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
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
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Tashkent"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"18000"` // 5*60*60
}

type JWTConfig struct {
	Secret               string `envconfig:"JWT_SECRET" required:"true"`
	Duration             string `envconfig:"JWT_DURATION" default:"24h"`
	// bcrypt hash checked by POST /api/auth/login; empty disables password login
	OperatorPasswordHash string `envconfig:"OPERATOR_PASSWORD_HASH"`
}

// TelegramConfig holds everything identifying the bot, its channel and its operators.
// AdminIDs is the single source of privileged identities.
type TelegramConfig struct {
	Token           string        `envconfig:"TELEGRAM_BOT_TOKEN" required:"true"`
	ChannelID       string        `envconfig:"TELEGRAM_CHANNEL_ID" required:"true"`
	ChannelUsername string        `envconfig:"TELEGRAM_CHANNEL_USERNAME" required:"true"`
	AdminIDs        []int64       `envconfig:"ADMIN_TELEGRAM_IDS" required:"true"`
	BrandName       string        `envconfig:"BOT_BRAND_NAME" default:"AYSI OPTICS"`
	ShopURL         string        `envconfig:"SHOP_URL" default:"https://aysioptics.uz/shop.html"`
	ReviewURL       string        `envconfig:"REVIEW_URL" default:"https://g.page/r/aysioptics/review"`
	SurveyURL       string        `envconfig:"SURVEY_URL" default:"https://forms.gle/aysioptics"`
	SupportContact  string        `envconfig:"SUPPORT_CONTACT" default:"@aysi_optics_admin"`
	AdminPanelURL   string        `envconfig:"ADMIN_PANEL_URL" default:""`
	PollTimeout     int           `envconfig:"TELEGRAM_POLL_TIMEOUT" default:"60"`
	Workers         int           `envconfig:"TELEGRAM_WORKERS" default:"8"`
	RatePerSecond   float64       `envconfig:"TELEGRAM_RATE_PER_SECOND" default:"25"`
	RateBurst       int           `envconfig:"TELEGRAM_RATE_BURST" default:"5"`
	BreakerTimeout  time.Duration `envconfig:"TELEGRAM_BREAKER_TIMEOUT" default:"30s"`
	PendingTTL      time.Duration `envconfig:"PENDING_BROADCAST_TTL" default:"10m"`
}

type VoucherConfig struct {
	WelcomeAmount     int64 `envconfig:"WELCOME_VOUCHER_AMOUNT" default:"50000"`
	WelcomeValidDays  int   `envconfig:"WELCOME_VOUCHER_VALID_DAYS" default:"30"`
	BirthdayAmount    int64 `envconfig:"BIRTHDAY_VOUCHER_AMOUNT" default:"50000"`
	BirthdayValidDays int   `envconfig:"BIRTHDAY_VOUCHER_VALID_DAYS" default:"3"`
	// 0 disables anniversary vouchers; the operator digest is still sent
	AnniversaryAmount    int64         `envconfig:"ANNIVERSARY_VOUCHER_AMOUNT" default:"0"`
	AnniversaryValidDays int           `envconfig:"ANNIVERSARY_VOUCHER_VALID_DAYS" default:"7"`
	ReminderLookahead    time.Duration `envconfig:"VOUCHER_REMINDER_LOOKAHEAD" default:"48h"`
	ReminderCooldown     time.Duration `envconfig:"VOUCHER_REMINDER_COOLDOWN" default:"24h"`
}

type CashbackConfig struct {
	Percent string `envconfig:"CASHBACK_PERCENT" default:"5"`
}

type BroadcastConfig struct {
	SendDelay   time.Duration `envconfig:"BROADCAST_SEND_DELAY" default:"50ms"`
	MaxInFlight int           `envconfig:"BROADCAST_MAX_IN_FLIGHT" default:"0"`
	// 0 means no overall deadline
	Timeout time.Duration `envconfig:"BROADCAST_TIMEOUT" default:"0s"`
}

type SchedulerConfig struct {
	Enabled            bool          `envconfig:"SCHEDULER_ENABLED" default:"true"`
	TimeZone           string        `envconfig:"SCHEDULER_TIMEZONE" default:"Asia/Tashkent"`
	FollowupAfter      time.Duration `envconfig:"FOLLOWUP_AFTER" default:"72h"`
	FollowupInterval   time.Duration `envconfig:"FOLLOWUP_INTERVAL" default:"1h"`
	// widened to FollowupInterval when smaller
	FollowupLookback   time.Duration `envconfig:"FOLLOWUP_LOOKBACK" default:"6h"`
	AnniversaryMonths  int           `envconfig:"ANNIVERSARY_MONTHS" default:"6"`
	AnniversaryCron    string        `envconfig:"ANNIVERSARY_CRON" default:"0 9 * * *"`
	BirthdayRemindCron string        `envconfig:"BIRTHDAY_REMINDER_CRON" default:"0 9 * * *"`
	BirthdayCron       string        `envconfig:"BIRTHDAY_VOUCHER_CRON" default:"0 10 * * *"`
	VoucherCron        string        `envconfig:"VOUCHER_REMINDER_CRON" default:"0 11 * * *"`
}

type StorageConfig struct {
	// postgres | memory
	Driver string `envconfig:"STORAGE_DRIVER" default:"postgres"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c SchedulerConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

// LoadJWTConfig reads only the token settings, for tooling that never starts the bot.
func LoadJWTConfig() (JWTConfig, error) {
	var cfg JWTConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return JWTConfig{}, fmt.Errorf("failed to process env config: %w", err)
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
			TimeZone: "Asia/Tashkent",
			MaxConns: 10,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Tashkent",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 18000,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
		},
		Telegram: TelegramConfig{
			Token:           "test-token",
			ChannelID:       "@aysi_test",
			ChannelUsername: "@aysi_test",
			AdminIDs:        []int64{1001, 1002},
			BrandName:       "AYSI OPTICS",
			ShopURL:         "https://example.test/shop",
			ReviewURL:       "https://example.test/review",
			SurveyURL:       "https://example.test/survey",
			SupportContact:  "@aysi_test_support",
			Workers:         2,
			RatePerSecond:   1000,
			RateBurst:       100,
			BreakerTimeout:  time.Second,
			PendingTTL:      10 * time.Minute,
		},
		Voucher: VoucherConfig{
			WelcomeAmount:        50000,
			WelcomeValidDays:     30,
			BirthdayAmount:       50000,
			BirthdayValidDays:    3,
			AnniversaryValidDays: 7,
			ReminderLookahead:    48 * time.Hour,
			ReminderCooldown:     24 * time.Hour,
		},
		Cashback: CashbackConfig{
			Percent: "5",
		},
		Broadcast: BroadcastConfig{
			SendDelay: 0,
		},
		Scheduler: SchedulerConfig{
			Enabled:            false,
			TimeZone:           "Asia/Tashkent",
			FollowupAfter:      72 * time.Hour,
			FollowupInterval:   time.Hour,
			FollowupLookback:   6 * time.Hour,
			AnniversaryMonths:  6,
			AnniversaryCron:    "0 9 * * *",
			BirthdayRemindCron: "0 9 * * *",
			BirthdayCron:       "0 10 * * *",
			VoucherCron:        "0 11 * * *",
		},
		Storage: StorageConfig{
			Driver: "memory",
		},
	}
}
