package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"notekeeper/backend/internal/errs"
	"notekeeper/backend/internal/models"
	"notekeeper/backend/internal/repository"
)

type memUsers struct {
	mu        sync.Mutex
	bySubject map[string]*models.User
	// conflicts makes the next n upserts insert the record but report a
	// duplicate key, as the loser of a real race would see.
	conflicts int
	upserts   int
}

var _ repository.UserRepository = (*memUsers)(nil)

func newMemUsers() *memUsers {
	return &memUsers{bySubject: map[string]*models.User{}}
}

func (m *memUsers) FindBySubject(_ context.Context, subject string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.bySubject[subject]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.bySubject {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (m *memUsers) Upsert(_ context.Context, id models.Identity, now time.Time) (*models.User, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upserts++
	if u, ok := m.bySubject[id.Subject]; ok {
		cp := *u
		return &cp, false, nil
	}
	for _, u := range m.bySubject {
		if id.Email != "" && u.Email == id.Email {
			return nil, false, errs.ErrConflict
		}
	}
	u := &models.User{
		ID:          primitive.NewObjectID(),
		FirebaseUID: id.Subject,
		Email:       id.Email,
		DisplayName: id.DisplayName,
		PhotoURL:    id.PhotoURL,
		Settings:    models.DefaultSettings(),
		CreatedAt:   now,
	}
	m.bySubject[id.Subject] = u
	if m.conflicts > 0 {
		m.conflicts--
		return nil, false, errs.ErrConflict
	}
	cp := *u
	return &cp, true, nil
}

func (m *memUsers) UpdateProfile(_ context.Context, id primitive.ObjectID, p models.ProfilePatch) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.bySubject {
		if u.ID == id {
			if p.DisplayName != nil {
				u.DisplayName = *p.DisplayName
			}
			if p.PhotoURL != nil {
				u.PhotoURL = *p.PhotoURL
			}
			cp := *u
			return &cp, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (m *memUsers) UpdateSettings(_ context.Context, id primitive.ObjectID, p models.SettingsPatch) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.bySubject {
		if u.ID == id {
			if p.Theme != nil {
				u.Settings.Theme = *p.Theme
			}
			if p.Notifications != nil {
				u.Settings.Notifications = *p.Notifications
			}
			if p.Language != nil {
				u.Settings.Language = *p.Language
			}
			cp := *u
			return &cp, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (m *memUsers) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for s, u := range m.bySubject {
		if u.ID == id {
			delete(m.bySubject, s)
			return nil
		}
	}
	return errs.ErrNotFound
}

func (m *memUsers) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.bySubject)
}

type memNotes struct {
	mu    sync.Mutex
	items []models.Note
	err   error
}

var _ repository.NoteRepository = (*memNotes)(nil)

func (m *memNotes) List(_ context.Context, userID primitive.ObjectID) ([]models.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Note{}
	for _, n := range m.items {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memNotes) Create(_ context.Context, n *models.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	m.items = append(m.items, *n)
	return nil
}

func (m *memNotes) Update(_ context.Context, userID, id primitive.ObjectID, p models.NotePatch, now time.Time) (*models.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		n := &m.items[i]
		if n.ID == id && n.UserID == userID {
			if p.Title != nil {
				n.Title = *p.Title
			}
			if p.Description != nil {
				n.Description = *p.Description
			}
			if p.Image != nil {
				n.Image = *p.Image
			}
			if p.AudioURL != nil {
				n.AudioURL = *p.AudioURL
			}
			n.UpdatedAt = now
			cp := *n
			return &cp, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (m *memNotes) Delete(_ context.Context, userID, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, n := range m.items {
		if n.ID == id && n.UserID == userID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return errs.ErrNotFound
}

func (m *memNotes) DeleteByUser(_ context.Context, userID primitive.ObjectID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.items[:0]
	var n int64
	for _, it := range m.items {
		if it.UserID == userID {
			n++
			continue
		}
		kept = append(kept, it)
	}
	m.items = kept
	return n, nil
}

func (m *memNotes) Search(_ context.Context, userID primitive.ObjectID, q string, limit int64) ([]models.Note, error) {
	if m.err != nil {
		return nil, m.err
	}
	all, _ := m.List(context.Background(), userID)
	out := []models.Note{}
	for _, n := range all {
		if containsFold(n.Title, q) || containsFold(n.Description, q) {
			out = append(out, n)
		}
	}
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

type memReminders struct {
	mu    sync.Mutex
	items []models.Reminder
}

var _ repository.ReminderRepository = (*memReminders)(nil)

func (m *memReminders) List(_ context.Context, userID primitive.ObjectID) ([]models.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Reminder{}
	for _, r := range m.items {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DateTime.Before(out[j].DateTime) })
	return out, nil
}

func (m *memReminders) Create(_ context.Context, r *models.Reminder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	m.items = append(m.items, *r)
	return nil
}

func (m *memReminders) Get(_ context.Context, userID, id primitive.ObjectID) (*models.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.items {
		if r.ID == id && r.UserID == userID {
			cp := r
			return &cp, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (m *memReminders) Update(_ context.Context, userID, id primitive.ObjectID, p models.ResolvedReminderPatch) (*models.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		r := &m.items[i]
		if r.ID == id && r.UserID == userID {
			if p.Title != nil {
				r.Title = *p.Title
			}
			if p.Message != nil {
				r.Message = *p.Message
			}
			if p.DateTime != nil {
				r.DateTime = *p.DateTime
			}
			if p.Completed != nil {
				r.Completed = *p.Completed
			}
			cp := *r
			return &cp, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (m *memReminders) Delete(_ context.Context, userID, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.items {
		if r.ID == id && r.UserID == userID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return errs.ErrNotFound
}

func (m *memReminders) DeleteByUser(_ context.Context, userID primitive.ObjectID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.items[:0]
	var n int64
	for _, it := range m.items {
		if it.UserID == userID {
			n++
			continue
		}
		kept = append(kept, it)
	}
	m.items = kept
	return n, nil
}

func (m *memReminders) Search(_ context.Context, userID primitive.ObjectID, q string, limit int64) ([]models.Reminder, error) {
	all, _ := m.List(context.Background(), userID)
	out := []models.Reminder{}
	for _, r := range all {
		if containsFold(r.Title, q) || containsFold(r.Message, q) {
			out = append(out, r)
		}
	}
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
