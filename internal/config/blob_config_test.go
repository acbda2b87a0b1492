package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestS3ConfigIsConfigured(t *testing.T) {
	t.Run("empty config is not configured", func(t *testing.T) {
		assert.False(t, S3Config{}.IsConfigured())
	})

	t.Run("required fields set is configured", func(t *testing.T) {
		cfg := S3Config{
			Endpoint:        "https://storage.yandexcloud.net",
			Region:          "ru-central1",
			Bucket:          "bucket",
			AccessKeyID:     "key",
			SecretAccessKey: "secret",
		}
		assert.True(t, cfg.IsConfigured())
	})

	t.Run("public url required only when preferred", func(t *testing.T) {
		cfg := S3Config{
			Endpoint:        "https://storage.yandexcloud.net",
			Region:          "ru-central1",
			Bucket:          "bucket",
			AccessKeyID:     "key",
			SecretAccessKey: "secret",
			PreferPublicURL: true,
		}
		assert.False(t, cfg.IsConfigured())
		assert.Equal(t, []string{"S3_PUBLIC_BASE_URL"}, cfg.MissingRequired())
	})
}

func TestS3ConfigMissingRequired(t *testing.T) {
	cfg := S3Config{
		Endpoint: "https://storage.yandexcloud.net",
		Bucket:   "bucket",
	}
	assert.Equal(t, []string{"S3_REGION", "S3_ACCESS_KEY_ID", "S3_SECRET_ACCESS_KEY"}, cfg.MissingRequired())
}

func TestS3ConfigDiagnostics(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		level, code, _ := (S3Config{}).Diagnostics()
		assert.Equal(t, "INFO", level)
		assert.Equal(t, "s3_not_configured", code)
	})

	t.Run("partial config", func(t *testing.T) {
		level, code, _ := (S3Config{Endpoint: "https://storage.yandexcloud.net"}).Diagnostics()
		assert.Equal(t, "WARN", level)
		assert.Equal(t, "s3_partial_config", code)
	})

	t.Run("ready", func(t *testing.T) {
		level, code, _ := (S3Config{
			Endpoint:        "https://storage.yandexcloud.net",
			Region:          "ru-central1",
			Bucket:          "bucket",
			AccessKeyID:     "key",
			SecretAccessKey: "secret",
		}).Diagnostics()
		assert.Equal(t, "INFO", level)
		assert.Equal(t, "s3_ready", code)
	})
}

func TestS3ConfigDiagnosticsSummaryHidesSecrets(t *testing.T) {
	summary := S3Config{AccessKeyID: "AKIA123", SecretAccessKey: "supersecret"}.DiagnosticsSummary()
	assert.NotContains(t, summary, "AKIA123")
	assert.NotContains(t, summary, "supersecret")
	assert.Contains(t, summary, "secret_access_key=set")
}
