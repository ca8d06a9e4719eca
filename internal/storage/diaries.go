package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/kokoroworks/valentine-companion/internal/types"
)

const diariesKey = "savedDiaries"

// DiaryStore persists generated diaries. At most one diary exists per
// character; saving again replaces it.
type DiaryStore struct {
	kv      KV
	nowFunc func() time.Time
}

// NewDiaryStore returns a DiaryStore on the given KV.
func NewDiaryStore(kv KV) *DiaryStore {
	return &DiaryStore{kv: kv, nowFunc: time.Now}
}

// All returns every saved diary. Read failures degrade to an empty list.
func (s *DiaryStore) All(ctx context.Context) []types.SavedDiary {
	raw, ok, err := s.kv.Get(ctx, diariesKey)
	if err != nil {
		slog.Warn("failed to read diaries", "error", err.Error())
		return nil
	}
	if !ok {
		return nil
	}
	var diaries []types.SavedDiary
	if err := json.Unmarshal(raw, &diaries); err != nil {
		slog.Warn("failed to decode diaries", "error", err.Error())
		return nil
	}
	return diaries
}

// Find returns the diary for a character, if one exists.
func (s *DiaryStore) Find(ctx context.Context, characterID int) (types.SavedDiary, bool) {
	for _, diary := range s.All(ctx) {
		if diary.CharacterID == characterID {
			return diary, true
		}
	}
	return types.SavedDiary{}, false
}

// Save upserts the diary for its character.
func (s *DiaryStore) Save(ctx context.Context, diary types.SavedDiary) error {
	if diary.Timestamp.IsZero() {
		diary.Timestamp = s.nowFunc()
	}

	diaries := s.All(ctx)
	replaced := false
	for i := range diaries {
		if diaries[i].CharacterID == diary.CharacterID {
			diaries[i] = diary
			replaced = true
			break
		}
	}
	if !replaced {
		diaries = append(diaries, diary)
	}

	raw, err := json.Marshal(diaries)
	if err != nil {
		return fmt.Errorf("failed to encode diaries: %w", err)
	}
	if err := s.kv.Set(ctx, diariesKey, raw); err != nil {
		return fmt.Errorf("failed to save diaries: %w", err)
	}
	return nil
}

// ClearAll removes every saved diary.
func (s *DiaryStore) ClearAll(ctx context.Context) error {
	if err := s.kv.Delete(ctx, diariesKey); err != nil {
		return fmt.Errorf("failed to clear diaries: %w", err)
	}
	return nil
}
