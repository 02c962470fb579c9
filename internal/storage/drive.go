package storage

import (
	"context"
	"fmt"
	"io"
	pathpkg "path"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// DriveUploader stores media in a Google Drive folder owned by a service
// account and shares each file read-only by link.
type DriveUploader struct {
	srv      *drive.Service
	folderID string
	log      *zap.Logger
}

// NewDriveUploader authenticates with the service-account JSON in
// credentials.
func NewDriveUploader(ctx context.Context, credentials []byte, folderID string, log *zap.Logger) (*DriveUploader, error) {
	jwtConfig, err := google.JWTConfigFromJSON(credentials, drive.DriveFileScope)
	if err != nil {
		return nil, fmt.Errorf("parse drive credentials: %w", err)
	}
	srv, err := drive.NewService(ctx, option.WithHTTPClient(jwtConfig.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("create drive client: %w", err)
	}
	log.Info("drive uploader initialized", zap.String("folder", folderID))
	return &DriveUploader{srv: srv, folderID: folderID, log: log}, nil
}

func (u *DriveUploader) Upload(ctx context.Context, path string, r io.Reader, _ int64, contentType string) (string, error) {
	meta := &drive.File{
		Name:          pathpkg.Base(path),
		Parents:       []string{u.folderID},
		AppProperties: map[string]string{"path": path},
	}
	file, err := u.srv.Files.Create(meta).
		Media(r, googleapi.ContentType(contentType)).
		Fields("id", "webContentLink").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("create drive file: %w", err)
	}

	_, err = u.srv.Permissions.Create(file.Id, &drive.Permission{Type: "anyone", Role: "reader"}).
		Context(ctx).
		Do()
	if err != nil {
		if derr := u.srv.Files.Delete(file.Id).Context(ctx).Do(); derr != nil {
			u.log.Warn("could not remove unshared drive file", zap.String("file_id", file.Id), zap.Error(derr))
		}
		return "", fmt.Errorf("share drive file: %w", err)
	}

	u.log.Debug("drive file uploaded", zap.String("file_id", file.Id), zap.String("path", path))
	if file.WebContentLink != "" {
		return file.WebContentLink, nil
	}
	return driveDownloadURL(file.Id), nil
}

func driveDownloadURL(fileID string) string {
	return "https://drive.google.com/uc?export=download&id=" + fileID
}
