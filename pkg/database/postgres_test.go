package database

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-enrollment-api/pkg/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "registrar",
		Password: `it's a \secret`,
		Name:     "course_enrollment",
		SSLMode:  "require",
	})
	assert.Equal(t, `host=db.internal port=5432 user=registrar password='it\'s a \\secret' dbname=course_enrollment sslmode=require`, dsn)
}

func TestDSNOmitsEmptySettings(t *testing.T) {
	assert.Equal(t, "host=localhost dbname=app", DSN(config.DatabaseConfig{Host: "localhost", Name: "app"}))
}

func TestConfigurePool(t *testing.T) {
	raw, _, err := sqlmock.New()
	require.NoError(t, err)
	db := sqlx.NewDb(raw, "sqlmock")
	defer db.Close()

	configurePool(db, config.DatabaseConfig{MaxOpenConns: 7, MaxIdleConns: 3, ConnMaxLifetime: time.Minute})
	assert.Equal(t, 7, db.Stats().MaxOpenConnections)
}

func TestNewPostgresFailsWhenUnreachable(t *testing.T) {
	_, err := NewPostgres(context.Background(), config.DatabaseConfig{
		Host:    "127.0.0.1",
		Port:    1,
		User:    "postgres",
		Name:    "course_enrollment",
		SSLMode: "disable",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ping postgres 127.0.0.1:1")
}
