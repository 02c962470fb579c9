package models

import (
	"strings"
	"time"

	"notekeeper/backend/internal/errs"
)

// NoteInput is the payload of a note creation.
type NoteInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	AudioURL    string `json:"audioUrl"`
}

func (in NoteInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return errs.Validation("title is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return errs.Validation("description is required")
	}
	return nil
}

// NotePatch holds the fields of a partial note update; nil means unchanged.
type NotePatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	AudioURL    *string `json:"audioUrl"`
}

func (p NotePatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return errs.Validation("title must not be empty")
	}
	if p.Description != nil && strings.TrimSpace(*p.Description) == "" {
		return errs.Validation("description must not be empty")
	}
	return nil
}

func (p NotePatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Image == nil && p.AudioURL == nil
}

// ReminderInput is the payload of a reminder creation. DateTime is kept as
// the raw client string and parsed by Validate.
type ReminderInput struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	DateTime string `json:"dateTime"`
}

// Validate checks required fields and returns the parsed scheduled time.
func (in ReminderInput) Validate() (time.Time, error) {
	if strings.TrimSpace(in.Title) == "" {
		return time.Time{}, errs.Validation("title is required")
	}
	if strings.TrimSpace(in.Message) == "" {
		return time.Time{}, errs.Validation("message is required")
	}
	return ParseDateTime(in.DateTime)
}

// ReminderPatch holds the fields of a partial reminder update.
type ReminderPatch struct {
	Title     *string `json:"title"`
	Message   *string `json:"message"`
	DateTime  *string `json:"dateTime"`
	Completed *bool   `json:"completed"`
}

// ResolvedReminderPatch is a validated ReminderPatch with the time already parsed.
type ResolvedReminderPatch struct {
	Title     *string
	Message   *string
	DateTime  *time.Time
	Completed *bool
}

func (p ReminderPatch) Resolve() (ResolvedReminderPatch, error) {
	out := ResolvedReminderPatch{Title: p.Title, Message: p.Message, Completed: p.Completed}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return out, errs.Validation("title must not be empty")
	}
	if p.Message != nil && strings.TrimSpace(*p.Message) == "" {
		return out, errs.Validation("message must not be empty")
	}
	if p.DateTime != nil {
		t, err := ParseDateTime(*p.DateTime)
		if err != nil {
			return out, err
		}
		out.DateTime = &t
	}
	return out, nil
}

func (p ResolvedReminderPatch) Empty() bool {
	return p.Title == nil && p.Message == nil && p.DateTime == nil && p.Completed == nil
}

// ProfilePatch is the payload of PUT /api/users/profile.
type ProfilePatch struct {
	DisplayName *string `json:"displayName"`
	PhotoURL    *string `json:"photoURL"`
}

// SettingsPatch is the payload of PUT /api/users/settings.
type SettingsPatch struct {
	Theme         *string `json:"theme"`
	Notifications *bool   `json:"notifications"`
	Language      *string `json:"language"`
}

func (p SettingsPatch) Validate() error {
	if p.Theme != nil {
		switch *p.Theme {
		case ThemeLight, ThemeDark, ThemeSystem:
		default:
			return errs.Validation("theme must be one of light, dark, system")
		}
	}
	if p.Language != nil && strings.TrimSpace(*p.Language) == "" {
		return errs.Validation("language must not be empty")
	}
	return nil
}

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDateTime accepts ISO-8601 timestamps as sent by JavaScript clients.
// Values without a zone are taken as UTC.
func ParseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errs.Validation("dateTime is required")
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errs.Validation("dateTime %q is not a valid date", s)
}
