package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"notekeeper/backend/internal/errs"
	"notekeeper/backend/internal/models"
	"notekeeper/backend/internal/storage"
)

var (
	// ErrStorageDisabled is returned when no object storage is configured.
	ErrStorageDisabled = errors.New("object storage is not configured")
	// ErrPayloadTooLarge is returned when an upload exceeds the size limit.
	ErrPayloadTooLarge = errors.New("payload too large")
)

type UploadKind string

const (
	UploadImage  UploadKind = "image"
	UploadAudio  UploadKind = "audio"
	UploadAvatar UploadKind = "avatar"
)

// sniffLen is how much of the upload is buffered for content detection.
const sniffLen = 3072

// UploadRecorder counts stored uploads.
type UploadRecorder interface {
	RecordUpload(kind string)
}

// ProfileUpdater receives the new avatar URL after an avatar upload.
type ProfileUpdater interface {
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, patch models.ProfilePatch) (*models.User, error)
}

type Upload struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}

type UploadService struct {
	store    storage.Uploader
	profiles ProfileUpdater
	recorder UploadRecorder
	maxBytes int64
	log      *zap.Logger
}

// NewUploadService returns a service that answers ErrStorageDisabled for
// every upload when store is nil.
func NewUploadService(store storage.Uploader, profiles ProfileUpdater, recorder UploadRecorder, maxBytes int64, log *zap.Logger) *UploadService {
	return &UploadService{store: store, profiles: profiles, recorder: recorder, maxBytes: maxBytes, log: log}
}

func (s *UploadService) Enabled() bool { return s.store != nil }

func (s *UploadService) MaxBytes() int64 { return s.maxBytes }

// Upload sniffs the content, stores it under the user's prefix and returns
// the download URL. Avatar uploads also update the user's photoURL.
func (s *UploadService) Upload(ctx context.Context, userID primitive.ObjectID, kind UploadKind, r io.Reader, size int64) (*Upload, error) {
	if s.store == nil {
		return nil, ErrStorageDisabled
	}
	if size > s.maxBytes {
		return nil, ErrPayloadTooLarge
	}
	if size <= 0 {
		return nil, errs.Validation("file is empty")
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]
	mtype := mimetype.Detect(head)

	if err := checkKind(kind, mtype.String()); err != nil {
		return nil, err
	}

	path := objectPath(kind, userID, mtype.Extension())
	body := io.MultiReader(bytes.NewReader(head), r)
	url, err := s.store.Upload(ctx, path, body, size, mtype.String())
	if err != nil {
		return nil, fmt.Errorf("store %s: %w", path, err)
	}
	if s.recorder != nil {
		s.recorder.RecordUpload(string(kind))
	}
	s.log.Info("upload stored",
		zap.String("user_id", userID.Hex()),
		zap.String("kind", string(kind)),
		zap.String("content_type", mtype.String()),
		zap.Int64("size", size),
	)

	if kind == UploadAvatar && s.profiles != nil {
		if _, err := s.profiles.UpdateProfile(ctx, userID, models.ProfilePatch{PhotoURL: &url}); err != nil {
			return nil, fmt.Errorf("set avatar: %w", err)
		}
	}
	return &Upload{URL: url, Path: path}, nil
}

func checkKind(kind UploadKind, contentType string) error {
	// mimetype may append parameters such as charset.
	base, _, _ := strings.Cut(contentType, ";")
	switch kind {
	case UploadImage, UploadAvatar:
		if strings.HasPrefix(base, "image/") {
			return nil
		}
		return errs.Validation("file is not an image (%s)", base)
	case UploadAudio:
		// m4a recordings are MP4 containers and may sniff as video/mp4.
		if strings.HasPrefix(base, "audio/") || base == "video/mp4" {
			return nil
		}
		return errs.Validation("file is not an audio recording (%s)", base)
	default:
		return errs.Validation("kind must be one of image, audio, avatar")
	}
}

func objectPath(kind UploadKind, userID primitive.ObjectID, ext string) string {
	switch kind {
	case UploadAvatar:
		return fmt.Sprintf("profile-pictures/%s/profile%s", userID.Hex(), ext)
	case UploadAudio:
		return fmt.Sprintf("notes/%s/audio/%s%s", userID.Hex(), uuid.NewString(), ext)
	default:
		return fmt.Sprintf("notes/%s/images/%s%s", userID.Hex(), uuid.NewString(), ext)
	}
}
