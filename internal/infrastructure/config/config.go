package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "skywrench/internal/shared/config"
)

type Config struct {
	Server       sharedConfig.ServerConfig       `mapstructure:"server"`
	Database     sharedConfig.DatabaseConfig     `mapstructure:"database"`
	Logger       sharedConfig.LoggerConfig       `mapstructure:"logger"`
	Auth         sharedConfig.AuthConfig         `mapstructure:"auth"`
	Email        sharedConfig.EmailConfig        `mapstructure:"email"`
	Mailroom     sharedConfig.MailroomConfig     `mapstructure:"mailroom"`
	Redis        sharedConfig.RedisConfig        `mapstructure:"redis"`
	SLA          sharedConfig.SLAConfig          `mapstructure:"sla"`
	Approval     sharedConfig.ApprovalConfig     `mapstructure:"approval"`
	Integrations sharedConfig.IntegrationsConfig `mapstructure:"integrations"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from file and environment variables
func Load(env string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../configs")
	viper.AddConfigPath("../../configs")

	viper.SetEnvPrefix("SKYWRENCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Allow env parameter to override server mode if provided
	if env != "" && env != "default" {
		viper.Set("server.mode", env)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")

	// Database defaults
	viper.SetDefault("database.driver", "mysql")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 3306)
	viper.SetDefault("database.username", "root")
	viper.SetDefault("database.password", "password")
	viper.SetDefault("database.database", "skywrench_dev")
	viper.SetDefault("database.max_idle_conns", 10)
	viper.SetDefault("database.max_open_conns", 100)
	viper.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output_path", "stdout")

	// Auth defaults
	viper.SetDefault("auth.password.bcrypt_cost", 12)
	viper.SetDefault("auth.jwt.secret", "change-me-in-production")
	viper.SetDefault("auth.jwt.access_exp_minutes", 60)
	viper.SetDefault("auth.jwt.refresh_exp_days", 7)

	// Email defaults
	viper.SetDefault("email.smtp_host", "localhost")
	viper.SetDefault("email.smtp_port", 1025)
	viper.SetDefault("email.smtp_user", "")
	viper.SetDefault("email.smtp_password", "")
	viper.SetDefault("email.from_address", "service@skywrench.local")
	viper.SetDefault("email.from_name", "SkyWrench Service Center")

	// Mailroom defaults; the poll interval drops in debug mode so inbound
	// mail shows up quickly during development.
	viper.SetDefault("mailroom.enabled", false)
	viper.SetDefault("mailroom.imap_host", "localhost")
	viper.SetDefault("mailroom.imap_port", 993)
	viper.SetDefault("mailroom.imap_user", "")
	viper.SetDefault("mailroom.imap_password", "")
	viper.SetDefault("mailroom.mailbox", "INBOX")
	viper.SetDefault("mailroom.poll_interval_sec", 300)

	// Redis defaults
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// SLA classification cutoffs
	viper.SetDefault("sla.warning_remaining_hours", 12)
	viper.SetDefault("sla.critical_remaining_hours", 4)

	// Approval gate
	viper.SetDefault("approval.cost_threshold", "1000")

	// Integrations (must be configured to be usable)
	viper.SetDefault("integrations.ldap.url", "")
	viper.SetDefault("integrations.ldap.bind_dn", "")
	viper.SetDefault("integrations.ldap.bind_password", "")
	viper.SetDefault("integrations.ldap.base_dn", "")
	viper.SetDefault("integrations.ldap.user_filter", "(objectClass=inetOrgPerson)")
	viper.SetDefault("integrations.issue_tracker.base_url", "")
	viper.SetDefault("integrations.issue_tracker.username", "")
	viper.SetDefault("integrations.issue_tracker.api_token", "")
	viper.SetDefault("integrations.issue_tracker.project", "UAV")
}
