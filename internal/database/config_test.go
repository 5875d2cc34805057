package database

import (
	"strings"
	"testing"

	"altrion/internal/config"
)

func TestConfigFromApp(t *testing.T) {
	c := NewConfig(&config.Config{
		DBHost:     "db",
		DBPort:     "5433",
		DBUser:     "altrion",
		DBPassword: "p@ss word",
		DBName:     "loans",
		DBSSLMode:  "require",
	})

	dsn := c.DSN()
	for _, part := range []string{"host=db", "port=5433", "dbname=loans", "sslmode=require"} {
		if !strings.Contains(dsn, part) {
			t.Errorf("DSN %q missing %q", dsn, part)
		}
	}

	want := "postgres://altrion:p%40ss%20word@db:5433/loans?sslmode=require"
	if got := c.URL(); got != want {
		t.Errorf("URL() = %q, want %q", got, want)
	}
}
