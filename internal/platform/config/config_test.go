// Copyright (c) 2026 Akari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/akari/internal/platform/config"
)

// requiredEnv is the minimal environment for a successful Load.
var requiredEnv = map[string]string{
	"PORT":        "4000",
	"JWT_SECRET":  "test-secret",
	"DB_HOST":     "localhost",
	"DB_PORT":     "5432",
	"DB_USERNAME": "akari",
	"DB_PASSWORD": "pa/ss:word",
	"DB_NAME":     "akari",
}

func setRequiredEnv(t *testing.T) {
	t.Helper()
	for key, value := range requiredEnv {
		t.Setenv(key, value)
	}
}

/*
TestLoad_Success verifies parsing of a complete environment and the
defaults applied to optional variables.
*/
func TestLoad_Success(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.ServerPort)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "development", cfg.Environment)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "./data/migrations", cfg.MigrationPath)
	assert.Empty(t, cfg.RedisURL)
}

/*
TestLoad_MissingRequired verifies that the process fails fast when any
required variable is absent.
*/
func TestLoad_MissingRequired(t *testing.T) {
	for key := range requiredEnv {
		t.Run(key, func(t *testing.T) {
			setRequiredEnv(t)

			// t.Setenv registered the cleanup; unset to simulate absence.
			t.Setenv(key, "")
			require.NoError(t, os.Unsetenv(key))

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}

/*
TestDatabaseURL verifies DSN assembly, including escaping of reserved
characters in credentials.
*/
func TestDatabaseURL(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	dsn := cfg.DatabaseURL()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "localhost:5432")
	assert.Contains(t, dsn, "/akari")
	// The raw password contains '/' and ':' which must be escaped.
	assert.NotContains(t, dsn, "pa/ss:word")
}
