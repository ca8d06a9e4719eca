package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/kokoroworks/valentine-companion/internal/types"
)

const profileKey = "userProfile"

// ProfileStore persists the user's free-text profile.
type ProfileStore struct {
	kv KV
}

// NewProfileStore returns a ProfileStore on the given KV.
func NewProfileStore(kv KV) *ProfileStore {
	return &ProfileStore{kv: kv}
}

// Get returns the saved profile, if one exists.
func (s *ProfileStore) Get(ctx context.Context) (types.UserProfile, bool) {
	raw, ok, err := s.kv.Get(ctx, profileKey)
	if err != nil {
		slog.Warn("failed to read user profile", "error", err.Error())
		return types.UserProfile{}, false
	}
	if !ok {
		return types.UserProfile{}, false
	}
	var profile types.UserProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		slog.Warn("failed to decode user profile", "error", err.Error())
		return types.UserProfile{}, false
	}
	return profile, true
}

// Save stores the profile.
func (s *ProfileStore) Save(ctx context.Context, profile types.UserProfile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode user profile: %w", err)
	}
	if err := s.kv.Set(ctx, profileKey, raw); err != nil {
		return fmt.Errorf("failed to save user profile: %w", err)
	}
	return nil
}
