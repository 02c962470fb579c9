package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"notekeeper/backend/internal/errs"
	"notekeeper/backend/internal/models"
)

const placeholder = "https://picsum.photos/200"

func TestNoteService_CreateThenList(t *testing.T) {
	repo := &memNotes{}
	svc := NewNoteService(repo, placeholder)
	clock := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { clock = clock.Add(time.Minute); return clock }
	ctx := context.Background()
	user := primitive.NewObjectID()

	first, err := svc.Create(ctx, user, models.NoteInput{Title: "a", Description: "x", Image: "https://img/a", AudioURL: "https://snd/a"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, user, models.NoteInput{Title: "b", Description: "y"})
	require.NoError(t, err)

	assert.Equal(t, user, first.UserID)
	assert.Equal(t, "https://img/a", first.Image)
	assert.Equal(t, "https://snd/a", first.AudioURL)
	assert.Equal(t, placeholder, second.Image)
	assert.Equal(t, second.CreatedAt, second.UpdatedAt)

	notes, err := svc.List(ctx, user)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, second.ID, notes[0].ID, "newest first")
	assert.Equal(t, *first, notes[1])
}

func TestNoteService_CreateRejectsEmptyTitle(t *testing.T) {
	repo := &memNotes{}
	svc := NewNoteService(repo, placeholder)
	user := primitive.NewObjectID()

	_, err := svc.Create(context.Background(), user, models.NoteInput{Title: "", Description: "x"})
	assert.ErrorIs(t, err, errs.ErrValidation)
	assert.Empty(t, repo.items)
}

func TestNoteService_OwnershipIsolation(t *testing.T) {
	repo := &memNotes{}
	svc := NewNoteService(repo, placeholder)
	ctx := context.Background()
	alice, bob := primitive.NewObjectID(), primitive.NewObjectID()

	n, err := svc.Create(ctx, alice, models.NoteInput{Title: "secret", Description: "x"})
	require.NoError(t, err)

	bobs, err := svc.List(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, bobs)

	title := "pwned"
	_, err = svc.Update(ctx, bob, n.ID, models.NotePatch{Title: &title})
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, bob, n.ID), errs.ErrNotFound)

	updated, err := svc.Update(ctx, alice, n.ID, models.NotePatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "pwned", updated.Title)
	assert.NoError(t, svc.Delete(ctx, alice, n.ID))
}

func TestNoteService_UpdateValidates(t *testing.T) {
	svc := NewNoteService(&memNotes{}, placeholder)
	empty := ""
	_, err := svc.Update(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), models.NotePatch{Description: &empty})
	assert.ErrorIs(t, err, errs.ErrValidation)
}
