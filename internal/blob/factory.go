package blob

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	appcfg "github.com/fdg312/health-assistant/internal/config"
)

// NewBlobStore builds a blob store using mode local|s3|auto and reports the mode chosen.
func NewBlobStore(ctx context.Context, cfg appcfg.BlobConfig, logger *zap.Logger) (Store, string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	log := logger.Named("blob")

	mode := strings.ToLower(strings.TrimSpace(cfg.Mode))
	if mode == "" {
		mode = appcfg.BlobModeLocal
	}

	switch mode {
	case appcfg.BlobModeLocal:
		log.Info("mode=local (forced)", zap.String("dir", cfg.LocalDir))
		return newLocal(cfg)

	case appcfg.BlobModeAuto:
		if !cfg.S3.IsConfigured() {
			level, code, msg := cfg.S3.Diagnostics()
			log.Info("mode=local (auto, S3 not configured)",
				zap.String("level", level),
				zap.String("code", code),
				zap.String("detail", msg),
				zap.String("s3", cfg.S3.DiagnosticsSummary()),
			)
			return newLocal(cfg)
		}

		store, err := NewS3Store(ctx, cfg.S3)
		if err != nil {
			log.Warn("s3 init failed, fallback=local", zap.Error(err))
			return newLocal(cfg)
		}
		log.Info("mode=s3 (auto, configured)", zap.String("s3", cfg.S3.DiagnosticsSummary()))
		return store, appcfg.BlobModeS3, nil

	case appcfg.BlobModeS3:
		if !cfg.S3.IsConfigured() {
			missing := cfg.S3.MissingRequired()
			log.Error("code=s3_config_incomplete", zap.Strings("missing", missing))
			return nil, "", fmt.Errorf("BLOB_MODE=s3 requested but missing required config: %s", strings.Join(missing, ", "))
		}

		store, err := NewS3Store(ctx, cfg.S3)
		if err != nil {
			return nil, "", fmt.Errorf("BLOB_MODE=s3 init failed: %w", err)
		}
		log.Info("mode=s3 (forced)", zap.String("s3", cfg.S3.DiagnosticsSummary()))
		return store, appcfg.BlobModeS3, nil

	default:
		return nil, "", fmt.Errorf("unsupported blob mode: %s", mode)
	}
}

func newLocal(cfg appcfg.BlobConfig) (Store, string, error) {
	store, err := NewLocalStore(cfg.LocalDir)
	if err != nil {
		return nil, "", err
	}
	return store, appcfg.BlobModeLocal, nil
}
