// Package repository declares the persistence contracts used by the services.
// Every note and reminder operation takes the owning user id and must filter
// on it; a record owned by someone else is reported as errs.ErrNotFound.
package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"notekeeper/backend/internal/models"
)

type UserRepository interface {
	FindBySubject(ctx context.Context, subject string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	// Upsert inserts a user for id.Subject unless one exists and returns the
	// stored record. created is false when the record was already present.
	// A concurrent insert of the same subject or email yields errs.ErrConflict.
	Upsert(ctx context.Context, id models.Identity, now time.Time) (user *models.User, created bool, err error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, patch models.ProfilePatch) (*models.User, error)
	UpdateSettings(ctx context.Context, id primitive.ObjectID, patch models.SettingsPatch) (*models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type NoteRepository interface {
	// List returns the user's notes, newest first.
	List(ctx context.Context, userID primitive.ObjectID) ([]models.Note, error)
	Create(ctx context.Context, note *models.Note) error
	Update(ctx context.Context, userID, id primitive.ObjectID, patch models.NotePatch, now time.Time) (*models.Note, error)
	Delete(ctx context.Context, userID, id primitive.ObjectID) error
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
	Search(ctx context.Context, userID primitive.ObjectID, query string, limit int64) ([]models.Note, error)
}

type ReminderRepository interface {
	// List returns the user's reminders by scheduled time, earliest first.
	List(ctx context.Context, userID primitive.ObjectID) ([]models.Reminder, error)
	Create(ctx context.Context, reminder *models.Reminder) error
	Get(ctx context.Context, userID, id primitive.ObjectID) (*models.Reminder, error)
	Update(ctx context.Context, userID, id primitive.ObjectID, patch models.ResolvedReminderPatch) (*models.Reminder, error)
	Delete(ctx context.Context, userID, id primitive.ObjectID) error
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
	Search(ctx context.Context, userID primitive.ObjectID, query string, limit int64) ([]models.Reminder, error)
}
