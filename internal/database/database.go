package database

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrServiceRoleUnavailable is returned by elevated operations when no
// service-role handle was configured. No query is attempted in that case.
var ErrServiceRoleUnavailable = errors.New("service role not available")

// Store holds the two database handles. App connects as the application role
// and is subject to row-level security policies. Service connects as the
// privileged role and bypasses them; it is nil unless DB_SERVICE_USER and
// DB_SERVICE_PASSWORD are set.
type Store struct {
	App     *gorm.DB
	Service *gorm.DB
}

// HasServiceRole reports whether the privileged handle is available.
func (s *Store) HasServiceRole() bool {
	return s.Service != nil
}

// Open builds the Store from environment configuration. Missing required
// values are a startup error, not something to recover from at runtime.
func Open() (*Store, error) {
	host := os.Getenv("DB_HOST")
	if host == "" {
		return nil, errors.New("DB_HOST not set")
	}
	name := os.Getenv("DB_NAME")
	if name == "" {
		return nil, errors.New("DB_NAME not set")
	}
	port, err := strconv.ParseUint(os.Getenv("DB_PORT"), 10, 32)
	if err != nil {
		port = 5432
	}

	app, err := connect(host, uint(port), name, os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"))
	if err != nil {
		return nil, fmt.Errorf("app role connection: %w", err)
	}

	store := &Store{App: app}

	svcUser := os.Getenv("DB_SERVICE_USER")
	svcPass := os.Getenv("DB_SERVICE_PASSWORD")
	if svcUser != "" && svcPass != "" {
		svc, err := connect(host, uint(port), name, svcUser, svcPass)
		if err != nil {
			return nil, fmt.Errorf("service role connection: %w", err)
		}
		store.Service = svc
	}

	return store, nil
}

func connect(host string, port uint, dbname, user, password string) (*gorm.DB, error) {
	var sslMode string
	if os.Getenv("DB_SSL_MODE_DISABLE") == "true" {
		sslMode = " sslmode=disable"
	}
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d%s",
		host, user, password, dbname, port, sslMode)
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
}
