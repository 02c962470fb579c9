// Package services holds the application logic between the HTTP handlers
// and the repositories.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"notekeeper/backend/internal/cache"
	"notekeeper/backend/internal/errs"
	"notekeeper/backend/internal/models"
	"notekeeper/backend/internal/repository"
)

// provisionAttempts bounds the lookup/upsert loop of GetOrCreate. Two
// rounds are enough for a lost upsert race; the third covers a replica that
// has not yet observed the winner.
const provisionAttempts = 3

// ProvisionRecorder counts first logins.
type ProvisionRecorder interface {
	RecordUserProvisioned()
}

// Directory maps identity-provider subjects to internal users and owns the
// user lifecycle.
type Directory struct {
	users     repository.UserRepository
	notes     repository.NoteRepository
	reminders repository.ReminderRepository
	cache     cache.UserCache
	recorder  ProvisionRecorder
	log       *zap.Logger
	now       func() time.Time
}

type DirectoryOption func(*Directory)

func WithUserCache(c cache.UserCache) DirectoryOption {
	return func(d *Directory) { d.cache = c }
}

func WithProvisionRecorder(r ProvisionRecorder) DirectoryOption {
	return func(d *Directory) { d.recorder = r }
}

func NewDirectory(
	users repository.UserRepository,
	notes repository.NoteRepository,
	reminders repository.ReminderRepository,
	log *zap.Logger,
	opts ...DirectoryOption,
) *Directory {
	d := &Directory{
		users:     users,
		notes:     notes,
		reminders: reminders,
		cache:     cache.Nop{},
		log:       log,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Directory) FindBySubject(ctx context.Context, subject string) (*models.User, error) {
	return d.users.FindBySubject(ctx, subject)
}

func (d *Directory) Get(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	return d.users.FindByID(ctx, userID)
}

// Provision creates the user for id. It fails with errs.ErrConflict when the
// subject or email is already taken.
func (d *Directory) Provision(ctx context.Context, id models.Identity) (*models.User, error) {
	if id.Subject == "" {
		return nil, errs.Validation("subject is required")
	}
	u, created, err := d.users.Upsert(ctx, id, d.now().UTC())
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, fmt.Errorf("provision %s: %w", id.Subject, errs.ErrConflict)
	}
	d.provisioned(u)
	return u, nil
}

// GetOrCreate resolves the user for a verified identity, provisioning it on
// first sight. Concurrent first requests of one subject converge on a single
// record; the transient conflict of the losing request is absorbed here.
func (d *Directory) GetOrCreate(ctx context.Context, id models.Identity) (*models.User, error) {
	if id.Subject == "" {
		return nil, errs.Validation("subject is required")
	}
	if u, ok := d.cache.Get(ctx, id.Subject); ok {
		return u, nil
	}

	for attempt := 1; attempt <= provisionAttempts; attempt++ {
		u, err := d.users.FindBySubject(ctx, id.Subject)
		if err == nil {
			d.cache.Set(ctx, u)
			return u, nil
		}
		if !errors.Is(err, errs.ErrNotFound) {
			return nil, err
		}

		u, created, err := d.users.Upsert(ctx, id, d.now().UTC())
		if err == nil {
			if created {
				d.provisioned(u)
			}
			d.cache.Set(ctx, u)
			return u, nil
		}
		if !errors.Is(err, errs.ErrConflict) {
			return nil, err
		}
		d.log.Debug("user provisioning raced, retrying lookup",
			zap.String("subject", id.Subject),
			zap.Int("attempt", attempt),
		)
	}

	return nil, fmt.Errorf("provision %s: email or subject held by another user: %w", id.Subject, errs.ErrConflict)
}

func (d *Directory) provisioned(u *models.User) {
	if d.recorder != nil {
		d.recorder.RecordUserProvisioned()
	}
	d.log.Info("user provisioned",
		zap.String("user_id", u.ID.Hex()),
		zap.String("subject", u.FirebaseUID),
	)
}

func (d *Directory) UpdateProfile(ctx context.Context, userID primitive.ObjectID, patch models.ProfilePatch) (*models.User, error) {
	u, err := d.users.UpdateProfile(ctx, userID, patch)
	if err != nil {
		return nil, err
	}
	d.cache.Invalidate(ctx, u.FirebaseUID)
	return u, nil
}

func (d *Directory) UpdateSettings(ctx context.Context, userID primitive.ObjectID, patch models.SettingsPatch) (*models.User, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	u, err := d.users.UpdateSettings(ctx, userID, patch)
	if err != nil {
		return nil, err
	}
	d.cache.Invalidate(ctx, u.FirebaseUID)
	return u, nil
}

// DeleteAccount removes the user's reminders and notes before the user
// record. If it stops halfway the user survives with fewer records and a
// repeated call finishes the job.
func (d *Directory) DeleteAccount(ctx context.Context, userID primitive.ObjectID) error {
	u, err := d.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	reminders, err := d.reminders.DeleteByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("delete reminders: %w", err)
	}
	notes, err := d.notes.DeleteByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("delete notes: %w", err)
	}
	d.cache.Invalidate(ctx, u.FirebaseUID)
	if err := d.users.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	d.log.Info("account deleted",
		zap.String("user_id", userID.Hex()),
		zap.Int64("reminders", reminders),
		zap.Int64("notes", notes),
	)
	return nil
}
