package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeeper/backend/internal/errs"
)

func strPtr(s string) *string { return &s }

func TestNoteInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		in      NoteInput
		wantErr bool
	}{
		{"ok", NoteInput{Title: "Groceries", Description: "milk"}, false},
		{"empty title", NoteInput{Title: "", Description: "x"}, true},
		{"blank title", NoteInput{Title: "   ", Description: "x"}, true},
		{"empty description", NoteInput{Title: "a"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, errs.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestReminderInput_Validate(t *testing.T) {
	at, err := ReminderInput{Title: "Call", Message: "Mom", DateTime: "2025-01-01T10:00:00Z"}.Validate()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC), at)

	_, err = ReminderInput{Title: "Call", Message: "Mom", DateTime: "tomorrow-ish"}.Validate()
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = ReminderInput{Title: "Call", DateTime: "2025-01-01T10:00:00Z"}.Validate()
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestParseDateTime_Layouts(t *testing.T) {
	for _, s := range []string{
		"2025-01-01T10:00:00.000Z",
		"2025-01-01T12:00:00+02:00",
		"2025-01-01T10:00:00",
		"2025-01-01 10:00:00",
	} {
		got, err := ParseDateTime(s)
		require.NoError(t, err, s)
		assert.Equal(t, time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC), got, s)
	}

	_, err := ParseDateTime("")
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestReminderPatch_Resolve(t *testing.T) {
	p, err := ReminderPatch{DateTime: strPtr("2025-03-04")}.Resolve()
	require.NoError(t, err)
	require.NotNil(t, p.DateTime)
	assert.Equal(t, 4, p.DateTime.Day())
	assert.False(t, p.Empty())

	_, err = ReminderPatch{Title: strPtr(" ")}.Resolve()
	assert.ErrorIs(t, err, errs.ErrValidation)

	empty, err := ReminderPatch{}.Resolve()
	require.NoError(t, err)
	assert.True(t, empty.Empty())
}

func TestSettingsPatch_Validate(t *testing.T) {
	assert.NoError(t, SettingsPatch{Theme: strPtr("dark")}.Validate())
	assert.ErrorIs(t, SettingsPatch{Theme: strPtr("solarized")}.Validate(), errs.ErrValidation)
	assert.ErrorIs(t, SettingsPatch{Language: strPtr("")}.Validate(), errs.ErrValidation)
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, ThemeSystem, s.Theme)
	assert.True(t, s.Notifications)
	assert.Equal(t, "en", s.Language)
}
