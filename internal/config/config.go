package config

import (
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env            string         `yaml:"env"`             // Env is the current environment: local, development, production.
	MonitoringPort int            `yaml:"monitoring_port"` // MonitoringPort is the port of the /metrics and /healthz listener, 0 disables it.
	JournalTimeout time.Duration  `yaml:"journal_timeout"` // JournalTimeout bounds a single journal write.
	Postgres       PostgresConfig `yaml:"postgres"`        // Postgres holds the journal database configuration.
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `yaml:"host"`     // Host is the database server address.
	Port     string `yaml:"port"`     // Port is the database server port.
	User     string `yaml:"user"`     // User is the database user.
	Password string `yaml:"password"` // Password is the database user's password.
	Dbname   string `yaml:"db_name"`  // Dbname is the name of the database.
}

// JournalEnabled reports whether a journal database is configured.
func (c *Config) JournalEnabled() bool {
	return c.Postgres.Host != ""
}

const defaultJournalTimeout = 5 * time.Second

// MustLoad builds the configuration from an optional YAML file named by CONFIG_PATH and the
// environment. Environment variables win over the file. It panics on invalid values.
func MustLoad() *Config {
	v := viper.New()

	v.SetDefault("env", "local")
	v.SetDefault("monitoring_port", "0")
	v.SetDefault("journal_timeout", defaultJournalTimeout.String())
	v.SetDefault("postgres.port", "5432")

	bindings := map[string]string{
		"env":               "HESTIA_ENV",
		"monitoring_port":   "HESTIA_MONITORING_PORT",
		"journal_timeout":   "HESTIA_JOURNAL_TIMEOUT",
		"postgres.host":     "DB_HOST",
		"postgres.port":     "DB_PORT",
		"postgres.user":     "DB_USERNAME",
		"postgres.password": "DB_PASSWORD",
		"postgres.db_name":  "DB_NAME",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			panic("config error: " + err.Error())
		}
	}

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		// check if file exists
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			panic("config file does not exist: " + configPath)
		}

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			panic("config error: " + err.Error())
		}
	}

	port, err := strconv.Atoi(v.GetString("monitoring_port"))
	if err != nil || port < 0 {
		panic("failed to parse monitoring port from configuration")
	}

	timeout, err := time.ParseDuration(v.GetString("journal_timeout"))
	if err != nil || timeout <= 0 {
		panic("failed to parse journal timeout from configuration")
	}

	return &Config{
		Env:            v.GetString("env"),
		MonitoringPort: port,
		JournalTimeout: timeout,
		Postgres: PostgresConfig{
			Host:     v.GetString("postgres.host"),
			Port:     v.GetString("postgres.port"),
			User:     v.GetString("postgres.user"),
			Password: v.GetString("postgres.password"),
			Dbname:   v.GetString("postgres.db_name"),
		},
	}
}
