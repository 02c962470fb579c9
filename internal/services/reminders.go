package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"notekeeper/backend/internal/models"
	"notekeeper/backend/internal/repository"
)

type ReminderService struct {
	reminders repository.ReminderRepository
	now       func() time.Time
}

func NewReminderService(reminders repository.ReminderRepository) *ReminderService {
	return &ReminderService{reminders: reminders, now: time.Now}
}

func (s *ReminderService) List(ctx context.Context, userID primitive.ObjectID) ([]models.Reminder, error) {
	return s.reminders.List(ctx, userID)
}

func (s *ReminderService) Create(ctx context.Context, userID primitive.ObjectID, in models.ReminderInput) (*models.Reminder, error) {
	at, err := in.Validate()
	if err != nil {
		return nil, err
	}
	rem := &models.Reminder{
		UserID:    userID,
		Title:     in.Title,
		Message:   in.Message,
		DateTime:  at,
		Completed: false,
		CreatedAt: s.now().UTC(),
	}
	if err := s.reminders.Create(ctx, rem); err != nil {
		return nil, err
	}
	return rem, nil
}

func (s *ReminderService) Update(ctx context.Context, userID, id primitive.ObjectID, patch models.ReminderPatch) (*models.Reminder, error) {
	resolved, err := patch.Resolve()
	if err != nil {
		return nil, err
	}
	return s.reminders.Update(ctx, userID, id, resolved)
}

// MarkComplete is idempotent: completing a completed reminder succeeds.
func (s *ReminderService) MarkComplete(ctx context.Context, userID, id primitive.ObjectID) (*models.Reminder, error) {
	done := true
	return s.reminders.Update(ctx, userID, id, models.ResolvedReminderPatch{Completed: &done})
}

func (s *ReminderService) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	return s.reminders.Delete(ctx, userID, id)
}
