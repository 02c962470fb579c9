package main

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"notekeeper/backend/internal/auth"
	"notekeeper/backend/internal/config"
	"notekeeper/backend/internal/storage"
)

// newFirebaseApp returns nil when neither authentication nor storage uses
// Firebase.
func newFirebaseApp(ctx context.Context, cfg *config.Config) (*firebase.App, error) {
	if cfg.AuthMode != config.AuthFirebase {
		return nil, nil
	}

	var opts []option.ClientOption
	if cfg.FirebaseCredentials != "" {
		creds, err := config.RectifyCredentials(cfg.FirebaseCredentials)
		if err != nil {
			return nil, fmt.Errorf("firebase credentials: %w", err)
		}
		opts = append(opts, option.WithCredentialsJSON(creds))
	}

	var fbCfg *firebase.Config
	if cfg.FirebaseStorageBucket != "" {
		fbCfg = &firebase.Config{StorageBucket: cfg.FirebaseStorageBucket}
	}
	app, err := firebase.NewApp(ctx, fbCfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("initializing firebase app: %w", err)
	}
	return app, nil
}

func newVerifier(ctx context.Context, cfg *config.Config, app *firebase.App) (auth.Verifier, error) {
	switch cfg.AuthMode {
	case config.AuthJWT:
		return auth.NewJWTVerifier([]byte(cfg.JWTSecret)), nil
	default:
		client, err := app.Auth(ctx)
		if err != nil {
			return nil, fmt.Errorf("getting auth client: %w", err)
		}
		return auth.NewFirebaseVerifier(client), nil
	}
}

// newUploader returns a nil Uploader for STORAGE_BACKEND=none, which the
// upload service answers with 503.
func newUploader(ctx context.Context, cfg *config.Config, app *firebase.App, log *zap.Logger) (storage.Uploader, error) {
	switch cfg.StorageBackend {
	case config.StorageFirebase:
		client, err := app.Storage(ctx)
		if err != nil {
			return nil, fmt.Errorf("getting storage client: %w", err)
		}
		return storage.NewFirebaseUploader(client, cfg.FirebaseStorageBucket)
	case config.StorageDrive:
		creds, err := config.RectifyCredentials(cfg.DriveCredentials)
		if err != nil {
			return nil, fmt.Errorf("drive credentials: %w", err)
		}
		return storage.NewDriveUploader(ctx, creds, cfg.DriveFolderID, log)
	case config.StorageMinio:
		u, err := storage.NewMinioUploader(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		if err != nil {
			return nil, err
		}
		if err := u.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return u, nil
	default:
		return nil, nil
	}
}
