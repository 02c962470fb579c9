// Package handlers exposes the HTTP API on top of the services.
package handlers

import (
	"context"
	"io"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"notekeeper/backend/internal/models"
	"notekeeper/backend/internal/reporting"
	"notekeeper/backend/internal/services"
)

type NoteStore interface {
	List(ctx context.Context, userID primitive.ObjectID) ([]models.Note, error)
	Create(ctx context.Context, userID primitive.ObjectID, in models.NoteInput) (*models.Note, error)
	Update(ctx context.Context, userID, id primitive.ObjectID, patch models.NotePatch) (*models.Note, error)
	Delete(ctx context.Context, userID, id primitive.ObjectID) error
}

type ReminderStore interface {
	List(ctx context.Context, userID primitive.ObjectID) ([]models.Reminder, error)
	Create(ctx context.Context, userID primitive.ObjectID, in models.ReminderInput) (*models.Reminder, error)
	Update(ctx context.Context, userID, id primitive.ObjectID, patch models.ReminderPatch) (*models.Reminder, error)
	MarkComplete(ctx context.Context, userID, id primitive.ObjectID) (*models.Reminder, error)
	Delete(ctx context.Context, userID, id primitive.ObjectID) error
}

// UserDirectory is the part of services.Directory the API needs. It also
// resolves callers for AuthMiddleware.
type UserDirectory interface {
	GetOrCreate(ctx context.Context, id models.Identity) (*models.User, error)
	Get(ctx context.Context, userID primitive.ObjectID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, patch models.ProfilePatch) (*models.User, error)
	UpdateSettings(ctx context.Context, userID primitive.ObjectID, patch models.SettingsPatch) (*models.User, error)
	DeleteAccount(ctx context.Context, userID primitive.ObjectID) error
}

type Searcher interface {
	Search(ctx context.Context, userID primitive.ObjectID, query string) ([]models.SearchResult, error)
}

type Uploader interface {
	Enabled() bool
	MaxBytes() int64
	Upload(ctx context.Context, userID primitive.ObjectID, kind services.UploadKind, r io.Reader, size int64) (*services.Upload, error)
}

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler serves the /api routes. Construct it with New.
type Handler struct {
	notes     NoteStore
	reminders ReminderStore
	users     UserDirectory
	search    Searcher
	uploads   Uploader
	db        Pinger
	log       *zap.Logger
	rep       reporting.Reporter
}

type Services struct {
	Notes     NoteStore
	Reminders ReminderStore
	Users     UserDirectory
	Search    Searcher
	Uploads   Uploader
	DB        Pinger
}

func New(svc Services, log *zap.Logger, rep reporting.Reporter) *Handler {
	if rep == nil {
		rep = reporting.Nop{}
	}
	return &Handler{
		notes:     svc.Notes,
		reminders: svc.Reminders,
		users:     svc.Users,
		search:    svc.Search,
		uploads:   svc.Uploads,
		db:        svc.DB,
		log:       log,
		rep:       rep,
	}
}
