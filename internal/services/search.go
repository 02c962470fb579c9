package services

import (
	"context"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"notekeeper/backend/internal/models"
	"notekeeper/backend/internal/repository"
)

const searchLimit = 50

type SearchService struct {
	notes     repository.NoteRepository
	reminders repository.ReminderRepository
}

func NewSearchService(notes repository.NoteRepository, reminders repository.ReminderRepository) *SearchService {
	return &SearchService{notes: notes, reminders: reminders}
}

// Search matches query case-insensitively against note titles and
// descriptions and reminder titles and messages, newest first.
func (s *SearchService) Search(ctx context.Context, userID primitive.ObjectID, query string) ([]models.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.SearchResult{}, nil
	}

	var (
		notes     []models.Note
		reminders []models.Reminder
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		notes, err = s.notes.Search(gctx, userID, query, searchLimit)
		return err
	})
	g.Go(func() error {
		var err error
		reminders, err = s.reminders.Search(gctx, userID, query, searchLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]models.SearchResult, 0, len(notes)+len(reminders))
	for _, n := range notes {
		results = append(results, models.SearchResult{
			Type:      "note",
			ID:        n.ID.Hex(),
			Title:     n.Title,
			Snippet:   n.Description,
			CreatedAt: n.CreatedAt,
		})
	}
	for _, r := range reminders {
		results = append(results, models.SearchResult{
			Type:      "reminder",
			ID:        r.ID.Hex(),
			Title:     r.Title,
			Snippet:   r.Message,
			CreatedAt: r.CreatedAt,
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})
	return results, nil
}
