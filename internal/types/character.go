package types

import "time"

// CharacterProfile is the static persona descriptor. Profiles are loaded once
// and looked up by name; they are never mutated at runtime.
type CharacterProfile struct {
	ID                int      `json:"id"`
	Name              string   `json:"name"`
	Role              string   `json:"role"`
	Personality       string   `json:"personality"`
	SpeakingStyle     string   `json:"speaking_style"`
	Situation         string   `json:"situation"`
	ValentineNote     string   `json:"valentine"`
	ExampleUtterances []string `json:"example_tweets"`
	ScoreMultiplier   float64  `json:"score_multiplier"`
}

// AffectionScore is the persisted per-character affection record.
// Total is never negative.
type AffectionScore struct {
	Total      int       `json:"total"`
	LastUpdate time.Time `json:"lastUpdate"`
	Emotion    string    `json:"emotion"`
}

// SavedDiary is the one-time-generated diary kept as long-term memory.
// At most one exists per character; a second save replaces the first.
type SavedDiary struct {
	CharacterID int       `json:"userId"`
	Content     string    `json:"content"`
	Timestamp   time.Time `json:"timestamp"`
}

// UserProfile is the free-text profile the diary pipeline analyzes.
type UserProfile struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ConversationTurn is one entry of the in-memory chat history.
type ConversationTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	// RoleUser marks a turn spoken by the user.
	RoleUser = "user"
	// RoleAssistant marks a turn spoken by the character.
	RoleAssistant = "assistant"
)
