package cmd

import (
	"fmt"
	"time"
)

const (
	defaultStoreTimeout = 5 * time.Second
	defaultCartTTL      = 2 * time.Hour
)

type Config struct {
	HTTPPort         string
	DBHost           string
	DBPort           string
	DBUser           string
	DBPassword       string
	DBName           string
	DBSslMode        string
	StoreTimeout     string
	CartTTL          string
	BoardRefreshSpec string
	StaffUsername    string
	StaffPassword    string
	StaffID          string
	StaffName        string
	RabbitMQURL      string
	RabbitMQExchange string
	Timezone         string
}

// UsesPostgres reports whether a database is configured. Without one the
// in-memory store is used.
func (c Config) UsesPostgres() bool {
	return c.DBHost != ""
}

// DSN is the key/value connection string understood by both GORM and lib/pq.
func (c Config) DSN() string {
	sslMode := c.DBSslMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, sslMode)
}

func (c Config) StoreTimeoutDuration() (time.Duration, error) {
	return durationOr(c.StoreTimeout, defaultStoreTimeout, "STORE_TIMEOUT")
}

func (c Config) CartTTLDuration() (time.Duration, error) {
	return durationOr(c.CartTTL, defaultCartTTL, "CART_TTL")
}

// Location resolves TIMEZONE; empty means the host's local zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE: %w", err)
	}
	return loc, nil
}

func durationOr(raw string, fallback time.Duration, name string) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s: must be positive, got %s", name, raw)
	}
	return d, nil
}
