package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env          string `env:"ENV" env-required:"true"`
	LogLevel     string `env:"LOG_LEVEL" env-default:"info" env-description:"logging level, debug, info, etc."`
	HttpServer   HttpServer
	Database     Database
	Limiter      Limiter
	Auth         AuthConfig
	SMTP         SMTPConfig
	Email        EmailConfig
	SMS          SMSConfig
	Cache        Cache
	OTP          OTPConfig
	Registration RegistrationConfig
	Matching     MatchingConfig
	PDF          PDFConfig
	Queue        QueueConfig
}

type HttpServer struct {
	Port           string        `env:"HTTP_PORT" env-default:"8080"`
	Timeout        time.Duration `env:"HTTP_TIMEOUT" env-default:"15s" env-description:"must exceed the face match timeout"`
	IdleTimeout    time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	SwaggerEnabled bool          `env:"HTTP_SWAGGER_ENABLED" env-default:"false"`
	MetricsEnabled bool          `env:"HTTP_METRICS_ENABLED" env-default:"true"`
	AllowedOrigins []string      `env:"HTTP_ALLOWED_ORIGINS" env-default:"*"`
}

type Database struct {
	Net                string        `env:"DB_NET" env-default:"tcp"`
	Server             string        `env:"DB_SERVER" env-required:"true"`
	DBName             string        `env:"DB_NAME" env-required:"true"`
	User               string        `env:"DB_USER" env-required:"true"`
	Password           string        `env:"DB_PASSWORD" env-required:"true"`
	TimeZone           string        `env:"DB_TIMEZONE" env-default:"Asia/Manila"`
	Timeout            time.Duration `env:"DB_TIMEOUT" env-default:"2s"`
	MaxIdleConnections int           `env:"DB_MAX_IDLE_CONNECTIONS" env-default:"20"`
	MaxOpenConnections int           `env:"DB_MAX_OPEN_CONNECTIONS" env-default:"40"`
	ConnMaxLifetime    time.Duration `env:"DB_CONN_MAX_LIFETIME" env-default:"30m"`
}

type Limiter struct {
	RPS   int           `env:"LIMITER_RPS" env-default:"10"`
	Burst int           `env:"LIMITER_BURST" env-default:"20"`
	TTL   time.Duration `env:"LIMITER_TTL" env-default:"10m"`
}

type AuthConfig struct {
	JWT          JWTConfig
	PasswordSalt string `env:"AUTH_PASSWORD_SALT" env-required:"true"`
}

type JWTConfig struct {
	AccessTokenTTL       time.Duration `env:"JWT_ACCESS_TOKEN_TTL" env-default:"15m"`
	RegistrationTokenTTL time.Duration `env:"JWT_REGISTRATION_TOKEN_TTL" env-default:"2h"`
	SigningKey           string        `env:"JWT_SIGNING_KEY" env-required:"true"`
}

type SMTPConfig struct {
	Host string `env:"SMTP_HOST" env-required:"true"`
	Port int    `env:"SMTP_PORT" env-required:"true"`
	From string `env:"SMTP_FROM" env-required:"true"`
	Pass string `env:"SMTP_PASS" env-required:"true"`
}

type EmailConfig struct {
	Enabled   bool `env:"EMAIL_ENABLED" env-default:"false"`
	Templates EmailTemplates
}

type EmailTemplates struct {
	Dir          string `env:"EMAIL_TEMPLATES_DIR" env-default:"./templates"`
	Verification string `env:"EMAIL_TEMPLATE_VERIFICATION" env-default:"verification_email.html"`
}

type SMSConfig struct {
	Enabled    bool          `env:"SMS_ENABLED" env-default:"false"`
	GatewayURL string        `env:"SMS_GATEWAY_URL" env-default:""`
	APIKey     string        `env:"SMS_API_KEY" env-default:""`
	SenderName string        `env:"SMS_SENDER_NAME" env-default:"BARANGAY"`
	Timeout    time.Duration `env:"SMS_TIMEOUT" env-default:"10s"`
}

type Cache struct {
	Type  string `env:"REDIS_TYPE" env-required:"true" env-description:"specifies provider, one of redis/redisCluster"`
	Redis struct {
		Address  string `env:"REDIS_ADDR" env-default:"" env-description:"redis host:port single instance"`
		Password string `env:"REDIS_PASSWORD" env-default:"" env-description:"redis password if exists"`
		PoolSize int    `env:"REDIS_POOL_SIZE" env-default:"70" env-description:"max tcp connections pool size"`
	}
	RedisCluster struct {
		Addresses []string `env:"REDIS_CLUSTER_ADDRS" env-default:"" env-description:"redis cluster nodes: ['172.27.29.90:7000','172.27.29.91:7001'', '172.27.29.92:7002'']"`
		Password  string   `env:"REDIS_PASSWORD" env-default:"" env-description:"redis password if exists"`
		PoolSize  int      `env:"REDIS_POOL_SIZE" env-default:"70" env-description:"max tcp connections pool size"`
	}
}

type OTPConfig struct {
	TTL             time.Duration `env:"OTP_TTL" env-default:"5m"`
	MaxAttempts     int           `env:"OTP_MAX_ATTEMPTS" env-default:"5"`
	ExposePhoneCode bool          `env:"OTP_EXPOSE_PHONE_CODE" env-default:"false" env-description:"return phone codes to the challenge for local comparison"`
	Purpose         string        `env:"OTP_PURPOSE" env-default:"registration"`
}

type RegistrationConfig struct {
	SessionTTL       time.Duration `env:"REGISTRATION_SESSION_TTL" env-default:"2h"`
	CaptureStatusTTL time.Duration `env:"REGISTRATION_CAPTURE_STATUS_TTL" env-default:"3s"`
	FaceMatchTimeout time.Duration `env:"REGISTRATION_FACE_MATCH_TIMEOUT" env-default:"5s"`
	Compensate       bool          `env:"REGISTRATION_COMPENSATE" env-default:"true"`
	MaxPhotoBytes    int64         `env:"REGISTRATION_MAX_PHOTO_BYTES" env-default:"5242880" env-description:"decoded size limit of one capture photo"`
}

type MatchingConfig struct {
	BaseURL       string        `env:"MATCHING_BASE_URL" env-required:"true"`
	APIKey        string        `env:"MATCHING_API_KEY" env-default:""`
	Timeout       time.Duration `env:"MATCHING_TIMEOUT" env-default:"20s"`
	WebhookSecret string        `env:"MATCHING_WEBHOOK_SECRET" env-required:"true"`
}

type PDFConfig struct {
	FontPath string `env:"PDF_FONT_PATH" env-default:"./fonts/DejaVuSans.ttf"`
}

type QueueConfig struct {
	Concurrency int `env:"QUEUE_CONCURRENCY" env-default:"10"`
}

func MustLoad() *Config {
	var cfg Config

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("cannot read config from environment: %s", err)
	}

	return &cfg
}
