package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Relay    RelayConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type PostgresConfig struct {
	User     string
	Password string
	Name     string
	Host     string
	Port     int
	SSLMode  string
}

// RelayConfig points the portal at the confirmation-email relay.
// An empty BaseURL disables email sending entirely.
type RelayConfig struct {
	BaseURL string
}

// SMTPConfig configures the mailrelay binary. User and Password may be
// empty, in which case the relay starts but refuses to send.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	FromName string
}

func New() (*Config, error) {
	const op = "config.New"

	_ = godotenv.Load()

	serverHost := os.Getenv("SERVER_HOST")
	if serverHost == "" {
		serverHost = "localhost"
	}

	serverPort, err := intEnv("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	serverCfg := ServerConfig{
		Host: serverHost,
		Port: serverPort,
	}

	postgresHost := os.Getenv("POSTGRES_HOST")
	if postgresHost == "" {
		postgresHost = "localhost"
	}

	postgresPort, err := intEnv("POSTGRES_PORT", 5432)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	postgresUser := os.Getenv("POSTGRES_USER")
	if postgresUser == "" {
		return nil, fmt.Errorf("%s: missing POSTGRES_USER", op)
	}

	postgresPassword := os.Getenv("POSTGRES_PASSWORD")
	if postgresPassword == "" {
		return nil, fmt.Errorf("%s: missing POSTGRES_PASSWORD", op)
	}

	postgresDB := os.Getenv("POSTGRES_DB")
	if postgresDB == "" {
		return nil, fmt.Errorf("%s: missing POSTGRES_DB", op)
	}

	postgresSSLMode := os.Getenv("POSTGRES_SSLMODE")
	if postgresSSLMode == "" {
		postgresSSLMode = "disable"
	}

	postgresCfg := PostgresConfig{
		User:     postgresUser,
		Password: postgresPassword,
		Name:     postgresDB,
		Host:     postgresHost,
		Port:     postgresPort,
		SSLMode:  postgresSSLMode,
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	redisDB, err := intEnv("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	redisCfg := RedisConfig{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       redisDB,
	}

	relayCfg := RelayConfig{
		BaseURL: os.Getenv("MAIL_RELAY_URL"),
	}

	return &Config{
		Server:   serverCfg,
		Postgres: postgresCfg,
		Redis:    redisCfg,
		Relay:    relayCfg,
	}, nil
}

// NewSMTP loads the mailrelay configuration. It never fails on missing
// credentials so the relay can come up and report the misconfiguration
// per request.
func NewSMTP() (*SMTPConfig, error) {
	const op = "config.NewSMTP"

	_ = godotenv.Load()

	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "smtp.gmail.com"
	}

	port, err := intEnv("SMTP_PORT", 587)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user := os.Getenv("SMTP_USER")

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = user
	}

	fromName := os.Getenv("SMTP_FROM_NAME")
	if fromName == "" {
		fromName = "CampusTix"
	}

	return &SMTPConfig{
		Host:     host,
		Port:     port,
		User:     user,
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     from,
		FromName: fromName,
	}, nil
}

func intEnv(name string, def int) (int, error) {
	s := os.Getenv(name)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return v, nil
}
