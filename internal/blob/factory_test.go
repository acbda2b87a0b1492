package blob

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	appcfg "github.com/fdg312/health-assistant/internal/config"
	"github.com/fdg312/health-assistant/internal/storage"
)

func observed() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.InfoLevel)
	return zap.New(core), logs
}

func TestNewBlobStoreLocalForced(t *testing.T) {
	logger, logs := observed()

	store, mode, err := NewBlobStore(context.Background(), appcfg.BlobConfig{
		Mode:     appcfg.BlobModeLocal,
		LocalDir: t.TempDir(),
	}, logger)
	require.NoError(t, err)
	assert.Equal(t, appcfg.BlobModeLocal, mode)
	assert.IsType(t, &LocalStore{}, store)
	assert.Equal(t, 1, logs.FilterMessage("mode=local (forced)").Len())
}

func TestNewBlobStoreAutoEmptyS3FallsBackToLocal(t *testing.T) {
	logger, logs := observed()

	store, mode, err := NewBlobStore(context.Background(), appcfg.BlobConfig{
		Mode:     appcfg.BlobModeAuto,
		LocalDir: t.TempDir(),
	}, logger)
	require.NoError(t, err)
	assert.Equal(t, appcfg.BlobModeLocal, mode)
	assert.IsType(t, &LocalStore{}, store)

	entries := logs.FilterMessage("mode=local (auto, S3 not configured)").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "s3_not_configured", entries[0].ContextMap()["code"])
}

func TestNewBlobStoreS3MissingRequiredReturnsError(t *testing.T) {
	store, mode, err := NewBlobStore(context.Background(), appcfg.BlobConfig{
		Mode: appcfg.BlobModeS3,
		S3:   appcfg.S3Config{Endpoint: "https://storage.yandexcloud.net"},
	}, nil)
	require.Error(t, err)
	assert.Nil(t, store)
	assert.Empty(t, mode)
	assert.Contains(t, err.Error(), "missing required config")
}

func TestNewBlobStoreUnknownMode(t *testing.T) {
	_, _, err := NewBlobStore(context.Background(), appcfg.BlobConfig{Mode: "ftp"}, nil)
	assert.Error(t, err)
}

func TestLocalStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	store, err := NewLocalStore(root)
	require.NoError(t, err)

	n, err := store.PutObject(ctx, "reports/2025-03-01_2025-03-10.csv", []byte("date\n"), "text/csv")
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	data, err := store.GetObject(ctx, "reports/2025-03-01_2025-03-10.csv")
	require.NoError(t, err)
	assert.Equal(t, "date\n", string(data))

	loc, err := store.Locate(ctx, "reports/2025-03-01_2025-03-10.csv")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "reports", "2025-03-01_2025-03-10.csv"), loc)

	require.NoError(t, store.DeleteObject(ctx, "reports/2025-03-01_2025-03-10.csv"))
	_, err = store.GetObject(ctx, "reports/2025-03-01_2025-03-10.csv")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestLocalStoreRejectsEscapingKeys(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"../x.csv", "a/../../x.csv", "", "/etc/passwd"} {
		_, err := store.PutObject(context.Background(), key, []byte("x"), "text/plain")
		assert.ErrorIs(t, err, ErrInvalidKey, key)
	}
}
