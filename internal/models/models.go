package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Theme values accepted in Settings.Theme.
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

type Settings struct {
	Theme         string `bson:"theme" json:"theme"`
	Notifications bool   `bson:"notifications" json:"notifications"`
	Language      string `bson:"language" json:"language"`
}

// DefaultSettings is what a freshly provisioned user starts with.
func DefaultSettings() Settings {
	return Settings{Theme: ThemeSystem, Notifications: true, Language: "en"}
}

type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirebaseUID string             `bson:"firebaseUid" json:"firebaseUid"`
	Email       string             `bson:"email,omitempty" json:"email"`
	DisplayName string             `bson:"displayName,omitempty" json:"displayName,omitempty"`
	PhotoURL    string             `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	Settings    Settings           `bson:"settings" json:"settings"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// Identity is what the identity provider vouches for after a token check.
type Identity struct {
	Subject     string
	Email       string
	DisplayName string
	PhotoURL    string
}

type Note struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Image       string             `bson:"image" json:"image"`
	AudioURL    string             `bson:"audioUrl,omitempty" json:"audioUrl,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type Reminder struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Title     string             `bson:"title" json:"title"`
	Message   string             `bson:"message" json:"message"`
	DateTime  time.Time          `bson:"dateTime" json:"dateTime"`
	Completed bool               `bson:"completed" json:"completed"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// SearchResult is one hit of a cross-collection search.
type SearchResult struct {
	Type      string    `json:"type"`
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Snippet   string    `json:"snippet"`
	CreatedAt time.Time `json:"createdAt"`
}
