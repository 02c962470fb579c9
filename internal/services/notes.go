package services

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"notekeeper/backend/internal/models"
	"notekeeper/backend/internal/repository"
)

type NoteService struct {
	notes       repository.NoteRepository
	placeholder string
	now         func() time.Time
}

// NewNoteService builds the note store. placeholder is the image given to
// notes created without one.
func NewNoteService(notes repository.NoteRepository, placeholder string) *NoteService {
	return &NoteService{notes: notes, placeholder: placeholder, now: time.Now}
}

func (s *NoteService) List(ctx context.Context, userID primitive.ObjectID) ([]models.Note, error) {
	return s.notes.List(ctx, userID)
}

func (s *NoteService) Create(ctx context.Context, userID primitive.ObjectID, in models.NoteInput) (*models.Note, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	image := strings.TrimSpace(in.Image)
	if image == "" {
		image = s.placeholder
	}
	now := s.now().UTC()
	note := &models.Note{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Image:       image,
		AudioURL:    strings.TrimSpace(in.AudioURL),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) Update(ctx context.Context, userID, id primitive.ObjectID, patch models.NotePatch) (*models.Note, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	return s.notes.Update(ctx, userID, id, patch, s.now().UTC())
}

func (s *NoteService) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	return s.notes.Delete(ctx, userID, id)
}
