// Package models contains the persistent entities of the tracker.
package models

import "time"

// DeveloperLevel is the self-assessed tier of a user.
type DeveloperLevel string

const (
	LevelBeginner     DeveloperLevel = "BEGINNER"
	LevelIntermediate DeveloperLevel = "INTERMEDIATE"
	LevelAdvanced     DeveloperLevel = "ADVANCED"
)

// User is the identity record. ID and Email are immutable after creation.
// PasswordHash is a bcrypt hash, never the plaintext.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Bio          string
	AvatarKey    string
	Skills       []string
	Level        DeveloperLevel
	CreatedAt    time.Time
}
