package storage

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/kokoroworks/valentine-companion/internal/emotion"
	"github.com/kokoroworks/valentine-companion/internal/types"
)

const scoresKey = "emotion_scores"

// legacyScoreKey is the deprecated per-character flat key. It is still read
// and written so data saved by older builds survives; remove once all
// persisted data is confirmed migrated to the keyed map.
func legacyScoreKey(characterID int) string {
	return "emotion_score_" + strconv.Itoa(characterID)
}

// ScoreStore persists per-character affection scores. All operations degrade
// to defaults instead of returning errors; a failed read is a zero score and
// a failed write keeps the previously stored value.
type ScoreStore struct {
	kv      KV
	nowFunc func() time.Time
}

// NewScoreStore returns a ScoreStore on the given KV.
func NewScoreStore(kv KV) *ScoreStore {
	return &ScoreStore{kv: kv, nowFunc: time.Now}
}

// Get returns the stored score for a character, preferring the larger of the
// keyed-map value and the legacy flat-key value. Missing data reads as 0.
func (s *ScoreStore) Get(ctx context.Context, characterID int) int {
	score := 0
	if record, ok := s.all(ctx)[strconv.Itoa(characterID)]; ok {
		score = record.Total
	}

	if raw, ok, err := s.kv.Get(ctx, legacyScoreKey(characterID)); err != nil {
		slog.Warn("failed to read legacy score", "characterID", characterID, "error", err.Error())
	} else if ok {
		if legacy, parseErr := strconv.Atoi(string(raw)); parseErr == nil && legacy > score {
			score = legacy
		}
	}
	return score
}

// Update clamps newTotal to a minimum of 0, derives the emotion label, writes
// both storage formats, and returns the clamped value. On write failure the
// previously stored value is returned instead.
func (s *ScoreStore) Update(ctx context.Context, characterID int, newTotal int) int {
	final := newTotal
	if final < 0 {
		final = 0
	}

	scores := s.all(ctx)
	scores[strconv.Itoa(characterID)] = types.AffectionScore{
		Total:      final,
		LastUpdate: s.nowFunc(),
		Emotion:    emotion.Determine(final),
	}

	if err := s.writeAll(ctx, scores); err != nil {
		slog.Error("failed to write scores", "characterID", characterID, "error", err.Error())
		return s.Get(ctx, characterID)
	}
	if err := s.kv.Set(ctx, legacyScoreKey(characterID), []byte(strconv.Itoa(final))); err != nil {
		slog.Error("failed to write legacy score", "characterID", characterID, "error", err.Error())
		return s.Get(ctx, characterID)
	}
	return final
}

// Reset deletes the character's score from both formats. Idempotent.
func (s *ScoreStore) Reset(ctx context.Context, characterID int) {
	scores := s.all(ctx)
	delete(scores, strconv.Itoa(characterID))
	if err := s.writeAll(ctx, scores); err != nil {
		slog.Error("failed to reset score", "characterID", characterID, "error", err.Error())
	}
	if err := s.kv.Delete(ctx, legacyScoreKey(characterID)); err != nil {
		slog.Error("failed to reset legacy score", "characterID", characterID, "error", err.Error())
	}
}

func (s *ScoreStore) all(ctx context.Context) map[string]types.AffectionScore {
	scores := make(map[string]types.AffectionScore)
	raw, ok, err := s.kv.Get(ctx, scoresKey)
	if err != nil {
		slog.Warn("failed to read scores", "error", err.Error())
		return scores
	}
	if !ok {
		return scores
	}
	if err := json.Unmarshal(raw, &scores); err != nil {
		slog.Warn("failed to decode scores", "error", err.Error())
		return make(map[string]types.AffectionScore)
	}
	return scores
}

func (s *ScoreStore) writeAll(ctx context.Context, scores map[string]types.AffectionScore) error {
	raw, err := json.Marshal(scores)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, scoresKey, raw)
}
