package handlers

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"notekeeper/backend/internal/errs"
	"notekeeper/backend/internal/models"
	"notekeeper/backend/internal/services"
)

type tokenVerifier map[string]models.Identity

func (v tokenVerifier) Verify(_ context.Context, token string) (models.Identity, error) {
	id, ok := v[token]
	if !ok {
		return models.Identity{}, errs.ErrUnauthenticated
	}
	return id, nil
}

type memDirectory struct {
	mu      sync.Mutex
	users   map[string]*models.User
	deleted []primitive.ObjectID
}

func newMemDirectory() *memDirectory {
	return &memDirectory{users: map[string]*models.User{}}
}

func (d *memDirectory) GetOrCreate(_ context.Context, id models.Identity) (*models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if u, ok := d.users[id.Subject]; ok {
		return u, nil
	}
	u := &models.User{
		ID:          primitive.NewObjectID(),
		FirebaseUID: id.Subject,
		Email:       id.Email,
		Settings:    models.DefaultSettings(),
		CreatedAt:   time.Now().UTC(),
	}
	d.users[id.Subject] = u
	return u, nil
}

func (d *memDirectory) byID(id primitive.ObjectID) (*models.User, error) {
	for _, u := range d.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (d *memDirectory) Get(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.byID(id)
}

func (d *memDirectory) UpdateProfile(_ context.Context, id primitive.ObjectID, p models.ProfilePatch) (*models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, err := d.byID(id)
	if err != nil {
		return nil, err
	}
	if p.DisplayName != nil {
		u.DisplayName = *p.DisplayName
	}
	if p.PhotoURL != nil {
		u.PhotoURL = *p.PhotoURL
	}
	return u, nil
}

func (d *memDirectory) UpdateSettings(_ context.Context, id primitive.ObjectID, p models.SettingsPatch) (*models.User, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	u, err := d.byID(id)
	if err != nil {
		return nil, err
	}
	if p.Theme != nil {
		u.Settings.Theme = *p.Theme
	}
	if p.Notifications != nil {
		u.Settings.Notifications = *p.Notifications
	}
	if p.Language != nil {
		u.Settings.Language = *p.Language
	}
	return u, nil
}

func (d *memDirectory) DeleteAccount(_ context.Context, id primitive.ObjectID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, err := d.byID(id)
	if err != nil {
		return err
	}
	delete(d.users, u.FirebaseUID)
	d.deleted = append(d.deleted, id)
	return nil
}

type memNotes struct {
	mu    sync.Mutex
	notes []models.Note
	err   error
}

func (s *memNotes) List(_ context.Context, userID primitive.ObjectID) ([]models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := []models.Note{}
	for _, n := range s.notes {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memNotes) Create(_ context.Context, userID primitive.ObjectID, in models.NoteInput) (*models.Note, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	n := models.Note{
		ID:          primitive.NewObjectID(),
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Image:       in.Image,
		AudioURL:    in.AudioURL,
		CreatedAt:   time.Now().UTC(),
	}
	s.notes = append(s.notes, n)
	return &n, nil
}

func (s *memNotes) Update(_ context.Context, userID, id primitive.ObjectID, p models.NotePatch) (*models.Note, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notes {
		n := &s.notes[i]
		if n.ID != id || n.UserID != userID {
			continue
		}
		if p.Title != nil {
			n.Title = *p.Title
		}
		if p.Description != nil {
			n.Description = *p.Description
		}
		out := *n
		return &out, nil
	}
	return nil, errs.ErrNotFound
}

func (s *memNotes) Delete(_ context.Context, userID, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range s.notes {
		if n.ID == id && n.UserID == userID {
			s.notes = append(s.notes[:i], s.notes[i+1:]...)
			return nil
		}
	}
	return errs.ErrNotFound
}

type memReminders struct {
	mu        sync.Mutex
	reminders []models.Reminder
}

func (s *memReminders) List(_ context.Context, userID primitive.ObjectID) ([]models.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Reminder{}
	for _, r := range s.reminders {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateTime.Before(out[j].DateTime) })
	return out, nil
}

func (s *memReminders) Create(_ context.Context, userID primitive.ObjectID, in models.ReminderInput) (*models.Reminder, error) {
	at, err := in.Validate()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r := models.Reminder{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Title:     in.Title,
		Message:   in.Message,
		DateTime:  at,
		CreatedAt: time.Now().UTC(),
	}
	s.reminders = append(s.reminders, r)
	return &r, nil
}

func (s *memReminders) apply(userID, id primitive.ObjectID, p models.ResolvedReminderPatch) (*models.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.reminders {
		r := &s.reminders[i]
		if r.ID != id || r.UserID != userID {
			continue
		}
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
		out := *r
		return &out, nil
	}
	return nil, errs.ErrNotFound
}

func (s *memReminders) Update(_ context.Context, userID, id primitive.ObjectID, p models.ReminderPatch) (*models.Reminder, error) {
	resolved, err := p.Resolve()
	if err != nil {
		return nil, err
	}
	return s.apply(userID, id, resolved)
}

func (s *memReminders) MarkComplete(_ context.Context, userID, id primitive.ObjectID) (*models.Reminder, error) {
	done := true
	return s.apply(userID, id, models.ResolvedReminderPatch{Completed: &done})
}

func (s *memReminders) Delete(_ context.Context, userID, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.reminders {
		if r.ID == id && r.UserID == userID {
			s.reminders = append(s.reminders[:i], s.reminders[i+1:]...)
			return nil
		}
	}
	return errs.ErrNotFound
}

type stubSearch struct {
	gotQuery string
	results  []models.SearchResult
}

func (s *stubSearch) Search(_ context.Context, _ primitive.ObjectID, q string) ([]models.SearchResult, error) {
	s.gotQuery = q
	if strings.TrimSpace(q) == "" {
		return []models.SearchResult{}, nil
	}
	return s.results, nil
}

type stubUploads struct {
	enabled  bool
	maxBytes int64
	gotKind  services.UploadKind
	gotBody  string
	err      error
}

func (s *stubUploads) Enabled() bool   { return s.enabled }
func (s *stubUploads) MaxBytes() int64 { return s.maxBytes }

func (s *stubUploads) Upload(_ context.Context, userID primitive.ObjectID, kind services.UploadKind, r io.Reader, _ int64) (*services.Upload, error) {
	if s.err != nil {
		return nil, s.err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	s.gotKind = kind
	s.gotBody = string(b)
	path := "notes/" + userID.Hex() + "/images/x.png"
	return &services.Upload{URL: "https://cdn.example.com/" + path, Path: path}, nil
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }
