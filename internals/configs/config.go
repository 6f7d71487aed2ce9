package configs

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Storage  StorageConfig
	Midtrans MidtransConfig
	Prayer   PrayerConfig
	Finance  FinanceConfig
	Log      LogConfig
}

type AppConfig struct {
	Name        string
	Env         string
	Port        string
	Timezone    string
	CorsOrigins string
}

type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	MigrationsTable string
}

// DSN dipakai gorm (pgx) maupun golang-migrate (lib/pq).
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=masjidku_portal",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret    string
	AccessTTL time.Duration
}

type StorageConfig struct {
	Driver         string // s3 | oss
	Endpoint       string
	Region         string
	Bucket         string
	AccessKey      string
	SecretKey      string
	PublicBaseURL  string
	UsePathStyle   bool
	GalleryMaxW    int
	GalleryQuality float32
}

type MidtransConfig struct {
	ServerKey  string
	Production bool
}

type PrayerConfig struct {
	BaseURL         string
	DefaultCityCode string
	HijriAdjustment int
	IncludeImsak    bool
	SyncCron        string
	HTTPTimeout     time.Duration
}

type FinanceConfig struct {
	CacheTTL time.Duration
}

type LogConfig struct {
	Level  string
	Format string
	Output string
}

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "masjidku_portal")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "3000")
	v.SetDefault("app.timezone", "Asia/Jakarta")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.sslmode", "require")
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", 10*time.Minute)
	v.SetDefault("db.conn_max_idle_time", 60*time.Second)
	v.SetDefault("db.migrations_table", "schema_migrations")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("jwt.access_ttl", 24*time.Hour)

	v.SetDefault("storage.driver", "s3")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.use_path_style", true)
	v.SetDefault("gallery.max_width", 1600)
	v.SetDefault("gallery.quality", 80)

	v.SetDefault("midtrans.production", false)

	v.SetDefault("prayer.base_url", "https://api.myquran.com/v2")
	v.SetDefault("prayer.city_code", "1301") // KOTA JAKARTA
	v.SetDefault("prayer.hijri_adjustment", -1)
	v.SetDefault("prayer.include_imsak", true)
	v.SetDefault("prayer.sync_cron", "5 0 * * *")
	v.SetDefault("prayer.http_timeout", 10*time.Second)

	v.SetDefault("finance.cache_ttl", 5*time.Minute)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
}

// Load membaca konfigurasi dari ENV (mis. DB_HOST, PRAYER_CITY_CODE) setelah LoadEnv.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name:        v.GetString("app.name"),
			Env:         v.GetString("app.env"),
			Port:        firstNonEmpty(v.GetString("port"), v.GetString("app.port")),
			Timezone:    v.GetString("app.timezone"),
			CorsOrigins: v.GetString("cors.allow_origins"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("db.host"),
			Port:            v.GetString("db.port"),
			User:            v.GetString("db.user"),
			Password:        v.GetString("db.password"),
			Name:            v.GetString("db.name"),
			SSLMode:         v.GetString("db.sslmode"),
			MaxOpenConns:    v.GetInt("db.max_open_conns"),
			MaxIdleConns:    v.GetInt("db.max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("db.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetDuration("db.conn_max_idle_time"),
			MigrationsTable: v.GetString("db.migrations_table"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("redis.enabled"),
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			Secret:    v.GetString("jwt.secret"),
			AccessTTL: v.GetDuration("jwt.access_ttl"),
		},
		Storage: StorageConfig{
			Driver:         strings.ToLower(v.GetString("storage.driver")),
			Endpoint:       v.GetString("storage.endpoint"),
			Region:         v.GetString("storage.region"),
			Bucket:         v.GetString("storage.bucket"),
			AccessKey:      v.GetString("storage.access_key"),
			SecretKey:      v.GetString("storage.secret_key"),
			PublicBaseURL:  v.GetString("storage.public_base_url"),
			UsePathStyle:   v.GetBool("storage.use_path_style"),
			GalleryMaxW:    v.GetInt("gallery.max_width"),
			GalleryQuality: float32(v.GetFloat64("gallery.quality")),
		},
		Midtrans: MidtransConfig{
			ServerKey:  v.GetString("midtrans.server_key"),
			Production: v.GetBool("midtrans.production"),
		},
		Prayer: PrayerConfig{
			BaseURL:         strings.TrimRight(v.GetString("prayer.base_url"), "/"),
			DefaultCityCode: v.GetString("prayer.city_code"),
			HijriAdjustment: v.GetInt("prayer.hijri_adjustment"),
			IncludeImsak:    v.GetBool("prayer.include_imsak"),
			SyncCron:        v.GetString("prayer.sync_cron"),
			HTTPTimeout:     v.GetDuration("prayer.http_timeout"),
		},
		Finance: FinanceConfig{
			CacheTTL: v.GetDuration("finance.cache_ttl"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
	}

	if cfg.JWT.Secret == "" {
		log.Println("❌ JWT_SECRET belum diset!")
	}
	if _, err := time.LoadLocation(cfg.App.Timezone); err != nil {
		return nil, fmt.Errorf("APP_TIMEZONE tidak valid: %w", err)
	}
	return cfg, nil
}

// Location mengembalikan zona waktu aplikasi; validasi sudah dilakukan di Load.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func firstNonEmpty(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}
