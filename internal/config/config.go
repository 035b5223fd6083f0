package config

import (
	"errors"
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	EnvLocal      = "local"
	EnvDev        = "development"
	EnvProduction = "production"
)

type Config struct {
	Env        string `env:"ENV" env-default:"development" env-description:"one of local, development, production"`
	LogLevel   string `env:"LOG_LEVEL" env-default:"info" env-description:"logging level, debug, info, etc."`
	AppName    string `env:"APP_NAME" env-default:"NITT Hospital"`
	HttpServer HttpServer
	Database   Database
	Limiter    Limiter
	Auth       AuthConfig
	OTP        OTPConfig
	SMTP       SMTPConfig
	Cache      Cache
	Queue      QueueConfig
}

type HttpServer struct {
	Port           string        `env:"HTTP_PORT" env-default:"3333"`
	Timeout        time.Duration `env:"HTTP_TIMEOUT" env-default:"10s"`
	IdleTimeout    time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	AllowedOrigins []string      `env:"ALLOWED_ORIGINS" env-default:"http://localhost:5173" env-separator:","`
}

type Database struct {
	Net                string        `env:"DB_NET" env-default:"tcp"`
	Server             string        `env:"DB_SERVER" env-required:"true"`
	DBName             string        `env:"DB_NAME" env-required:"true"`
	User               string        `env:"DB_USER" env-required:"true"`
	Password           string        `env:"DB_PASSWORD" env-required:"true"`
	TimeZone           string        `env:"DB_TIMEZONE" env-default:"UTC"`
	Timeout            time.Duration `env:"DB_TIMEOUT" env-default:"2s"`
	MaxIdleConnections int           `env:"DB_MAX_IDLE_CONNECTIONS" env-default:"20"`
	MaxOpenConnections int           `env:"DB_MAX_OPEN_CONNECTIONS" env-default:"20"`
}

type Limiter struct {
	RPS   int           `env:"LIMITER_RPS" env-default:"10"`
	Burst int           `env:"LIMITER_BURST" env-default:"20"`
	TTL   time.Duration `env:"LIMITER_TTL" env-default:"10m"`
}

type AuthConfig struct {
	JWT    JWTConfig
	Cookie CookieConfig
}

type JWTConfig struct {
	AccessTokenTTL time.Duration `env:"JWT_ACCESS_TOKEN_TTL" env-default:"15m"`
	SigningKey     string        `env:"JWT_ACCESS_SECRET" env-required:"true"`
}

type CookieConfig struct {
	Name     string `env:"AUTH_COOKIE_NAME" env-default:"access_token"`
	Secure   bool   `env:"AUTH_COOKIE_SECURE" env-default:"false"`
	SameSite string `env:"AUTH_COOKIE_SAMESITE" env-default:"lax" env-description:"one of strict, lax, none"`
	Path     string `env:"AUTH_COOKIE_PATH" env-default:"/"`
	Domain   string `env:"AUTH_COOKIE_DOMAIN" env-default:""`
}

// OTPConfig is passed to the otp service at construction time.
type OTPConfig struct {
	ExpiryMinutes  int           `env:"OTP_EXPIRY_MINUTES" env-default:"5"`
	MaxAttempts    int           `env:"OTP_MAX_ATTEMPTS" env-default:"5"`
	ResendCooldown time.Duration `env:"OTP_RESEND_COOLDOWN" env-default:"0s" env-description:"minimum delay between two otp emails to one address, 0 disables"`
	Generator      string        `env:"OTP_GENERATOR" env-default:"random" env-description:"one of random, hotp"`
}

func (c OTPConfig) Expiry() time.Duration {
	return time.Duration(c.ExpiryMinutes) * time.Minute
}

type SMTPConfig struct {
	Host string `env:"SMTP_HOST" env-required:"true"`
	Port int    `env:"SMTP_PORT" env-default:"587"`
	User string `env:"SMTP_USER" env-required:"true"`
	Pass string `env:"SMTP_PASS" env-required:"true"`
	From string `env:"SMTP_FROM" env-default:"NITT Hospital <no-reply@nitt.edu>"`
}

type Cache struct {
	Type  string `env:"REDIS_TYPE" env-default:"redis" env-description:"specifies provider, one of redis/redisCluster"`
	Redis struct {
		Address  string `env:"REDIS_ADDR" env-default:"localhost:6379" env-description:"redis host:port single instance"`
		Password string `env:"REDIS_PASSWORD" env-default:"" env-description:"redis password if exists"`
		PoolSize int    `env:"REDIS_POOL_SIZE" env-default:"70" env-description:"max tcp connections pool size"`
	}
	RedisCluster struct {
		Addresses []string `env:"REDIS_CLUSTER_ADDRS" env-default:"" env-description:"redis cluster nodes: ['172.27.29.90:7000','172.27.29.91:7001']"`
		Password  string   `env:"REDIS_PASSWORD" env-default:"" env-description:"redis password if exists"`
		PoolSize  int      `env:"REDIS_POOL_SIZE" env-default:"70" env-description:"max tcp connections pool size"`
	}
}

type QueueConfig struct {
	Enabled     bool `env:"QUEUE_ENABLED" env-default:"false" env-description:"send notices and run the otp purge through asynq"`
	Concurrency int  `env:"QUEUE_CONCURRENCY" env-default:"5"`

	// OtpPurgeInterval schedules the expired otp purge, 0 disables it.
	OtpPurgeInterval time.Duration `env:"QUEUE_OTP_PURGE_INTERVAL" env-default:"1h"`
}

// RedisRequired reports whether any configured feature talks to redis.
func (c *Config) RedisRequired() bool {
	return c.Queue.Enabled || c.OTP.ResendCooldown > 0
}

func (c OTPConfig) Validate() error {
	var errs []error
	if c.ExpiryMinutes <= 0 {
		errs = append(errs, errors.New("OTP_EXPIRY_MINUTES must be positive"))
	}
	if c.MaxAttempts <= 0 {
		errs = append(errs, errors.New("OTP_MAX_ATTEMPTS must be positive"))
	}
	if c.ResendCooldown < 0 {
		errs = append(errs, errors.New("OTP_RESEND_COOLDOWN must not be negative"))
	}
	return errors.Join(errs...)
}

func MustLoad() *Config {
	var cfg Config

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("cannot read config from environment: %s", err)
	}

	if err := cfg.OTP.Validate(); err != nil {
		log.Fatalf("invalid otp config: %s", err)
	}

	return &cfg
}
