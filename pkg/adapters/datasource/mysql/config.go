package mysql

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/ekaya-inc/ekaya-scaffold/pkg/adapters/datasource"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/config"
)

// Config contains MySQL-specific connection options.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	TLS      string // "", "true", "false", "skip-verify", "preferred"
	Timeout  time.Duration
}

// DefaultPort returns the default MySQL port.
func DefaultPort() int {
	return 3306
}

// DefaultTimeout returns the default dial timeout.
func DefaultTimeout() time.Duration {
	return 10 * time.Second
}

// FromConnection creates a Config from a parsed JDBC connection. Recognised
// parameters: useSSL, sslMode, connectTimeout (milliseconds, as in Connector/J).
func FromConnection(cc *datasource.ConnectionConfig) (*Config, error) {
	cfg := &Config{
		Host:     cc.Host,
		Port:     cc.Port,
		User:     cc.User,
		Password: cc.Password,
		Database: cc.Database,
		Timeout:  DefaultTimeout(),
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort()
	}
	if cfg.Host == "" {
		return nil, fmt.Errorf("host is required")
	}
	if cfg.User == "" {
		return nil, fmt.Errorf("user is required")
	}
	if cfg.Database == "" {
		return nil, fmt.Errorf("database is required")
	}

	if useSSL, ok := cc.Param("useSSL"); ok {
		if strings.EqualFold(useSSL, "true") {
			cfg.TLS = "true"
		} else {
			cfg.TLS = "false"
		}
	}
	if mode, ok := cc.Param("sslMode"); ok {
		switch strings.ToUpper(mode) {
		case "DISABLED":
			cfg.TLS = "false"
		case "PREFERRED":
			cfg.TLS = "preferred"
		case "REQUIRED":
			cfg.TLS = "skip-verify"
		case "VERIFY_CA", "VERIFY_IDENTITY":
			cfg.TLS = "true"
		}
	}
	if timeout, ok := cc.Param("connectTimeout"); ok {
		ms, err := strconv.Atoi(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid connectTimeout %q", timeout)
		}
		cfg.Timeout = time.Duration(ms) * time.Millisecond
	}
	return cfg, nil
}

// driverConfig converts cfg into the driver's configuration.
func driverConfig(cfg *Config) *mysql.Config {
	dc := mysql.NewConfig()
	dc.User = cfg.User
	dc.Passwd = cfg.Password
	dc.Net = "tcp"
	dc.Addr = net.JoinHostPort(config.ResolveHostForDocker(cfg.Host), strconv.Itoa(cfg.Port))
	dc.DBName = cfg.Database
	dc.ParseTime = true
	dc.Timeout = cfg.Timeout
	dc.TLSConfig = cfg.TLS
	return dc
}
