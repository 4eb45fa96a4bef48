package main

import (
	"testing"

	"github.com/mohamedhosni23/apple-store-bi-project/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearETLEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"MONGO_URI", "MONGO_DB_NAME", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
		"POSTGRES_HOST", "POSTGRES_PORT", "ETL_SKIP_LOAD", "ETL_EXPORT_DIR", "ETL_EXPORT_BUCKET", "ETL_EXPORT_PREFIX",
		"ETL_BATCH_SIZE", "ETL_SNS_TOPIC_ARN", "AWS_USE_SECRETS"} {
		t.Setenv(k, "")
	}
}

func TestLoadConfig_WarehouseFromEnv(t *testing.T) {
	clearETLEnv(t)
	t.Setenv("POSTGRES_USER", "bi")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB", "apple_store_dw")

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, "mongodb://localhost:27017/applestoresousse", cfg.MongoURI)
	assert.Equal(t, "applestoresousse", cfg.MongoDBName)
	assert.Equal(t, "apple_store_dw", cfg.Postgres.DBName)
	assert.Equal(t, "localhost", cfg.Postgres.Host)
	assert.Equal(t, "./dw_export", cfg.ExportDir)
	assert.Equal(t, 500, cfg.BatchSize)
	assert.False(t, cfg.SkipLoad)
}

func TestLoadConfig_SkipLoadNeedsNoWarehouse(t *testing.T) {
	clearETLEnv(t)

	cfg, err := LoadConfig([]string{"-skip-load", "-export-dir", "/tmp/out"})
	require.NoError(t, err)

	assert.True(t, cfg.SkipLoad)
	assert.Equal(t, "/tmp/out", cfg.ExportDir)
}

func TestLoadConfig_MissingWarehouse(t *testing.T) {
	clearETLEnv(t)

	_, err := LoadConfig(nil)
	assert.ErrorContains(t, err, "warehouse config incomplete")
}

func TestApplyPostgresSecret(t *testing.T) {
	pg := database.PostgresConfig{User: "local", Host: "localhost", Port: "5432"}

	applyPostgresSecret(`{"POSTGRES_USER":"rds","POSTGRES_HOST":"dw.internal","POSTGRES_PORT":""}`, &pg)

	assert.Equal(t, "rds", pg.User)
	assert.Equal(t, "dw.internal", pg.Host)
	assert.Equal(t, "5432", pg.Port)

	applyPostgresSecret("not json", &pg)
	assert.Equal(t, "rds", pg.User)
}
