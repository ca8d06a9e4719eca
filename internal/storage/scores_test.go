package storage

import (
	"context"
	"fmt"
	"strconv"
	"testing"
)

// failingKV wraps MemoryKV and fails selected operations.
type failingKV struct {
	*MemoryKV
	failGet bool
	failSet bool
}

func (f *failingKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if f.failGet {
		return nil, false, fmt.Errorf("storage unavailable")
	}
	return f.MemoryKV.Get(ctx, key)
}

func (f *failingKV) Set(ctx context.Context, key string, value []byte) error {
	if f.failSet {
		return fmt.Errorf("storage unavailable")
	}
	return f.MemoryKV.Set(ctx, key, value)
}

func TestGetDefaultsToZero(t *testing.T) {
	store := NewScoreStore(NewMemoryKV())
	if got := store.Get(context.Background(), 1); got != 0 {
		t.Fatalf("expected 0 for missing score, got %d", got)
	}
}

func TestUpdateClampsNegative(t *testing.T) {
	store := NewScoreStore(NewMemoryKV())
	ctx := context.Background()

	if got := store.Update(ctx, 1, -50); got != 0 {
		t.Fatalf("expected clamp to 0, got %d", got)
	}
	if got := store.Get(ctx, 1); got != 0 {
		t.Fatalf("expected stored 0, got %d", got)
	}
}

func TestScoreNeverNegativeAcrossSequence(t *testing.T) {
	store := NewScoreStore(NewMemoryKV())
	ctx := context.Background()

	deltas := []int{10, -100, 50, -20, -999, 30}
	for _, delta := range deltas {
		current := store.Get(ctx, 7)
		stored := store.Update(ctx, 7, current+delta)
		if stored < 0 {
			t.Fatalf("stored score went negative: %d after delta %d", stored, delta)
		}
		if got := store.Get(ctx, 7); got < 0 {
			t.Fatalf("read score went negative: %d", got)
		}
	}
}

func TestUpdateWritesBothFormats(t *testing.T) {
	kv := NewMemoryKV()
	store := NewScoreStore(kv)
	ctx := context.Background()

	store.Update(ctx, 2, 120)

	raw, ok, _ := kv.Get(ctx, "emotion_score_2")
	if !ok {
		t.Fatal("expected legacy key to be written")
	}
	if string(raw) != "120" {
		t.Fatalf("unexpected legacy value: %s", raw)
	}
	if got := store.Get(ctx, 2); got != 120 {
		t.Fatalf("expected 120, got %d", got)
	}
}

func TestGetPrefersLargerLegacyScore(t *testing.T) {
	kv := NewMemoryKV()
	store := NewScoreStore(kv)
	ctx := context.Background()

	store.Update(ctx, 3, 50)
	// A stale legacy value larger than the keyed map wins the read.
	if err := kv.Set(ctx, "emotion_score_3", []byte(strconv.Itoa(200))); err != nil {
		t.Fatal(err)
	}

	if got := store.Get(ctx, 3); got != 200 {
		t.Fatalf("expected legacy 200 to win, got %d", got)
	}
}

func TestGetIgnoresSmallerLegacyScore(t *testing.T) {
	kv := NewMemoryKV()
	store := NewScoreStore(kv)
	ctx := context.Background()

	store.Update(ctx, 3, 300)
	if err := kv.Set(ctx, "emotion_score_3", []byte("10")); err != nil {
		t.Fatal(err)
	}

	if got := store.Get(ctx, 3); got != 300 {
		t.Fatalf("expected keyed 300 to win, got %d", got)
	}
}

func TestResetRemovesBothFormats(t *testing.T) {
	kv := NewMemoryKV()
	store := NewScoreStore(kv)
	ctx := context.Background()

	store.Update(ctx, 4, 80)
	store.Reset(ctx, 4)

	if got := store.Get(ctx, 4); got != 0 {
		t.Fatalf("expected 0 after reset, got %d", got)
	}
	if _, ok, _ := kv.Get(ctx, "emotion_score_4"); ok {
		t.Fatal("expected legacy key to be removed")
	}

	// Reset is idempotent.
	store.Reset(ctx, 4)
	if got := store.Get(ctx, 4); got != 0 {
		t.Fatalf("expected 0 after second reset, got %d", got)
	}
}

func TestGetReadFailureReturnsZero(t *testing.T) {
	store := NewScoreStore(&failingKV{MemoryKV: NewMemoryKV(), failGet: true})
	if got := store.Get(context.Background(), 1); got != 0 {
		t.Fatalf("expected 0 on read failure, got %d", got)
	}
}

func TestUpdateWriteFailureReturnsPreviousValue(t *testing.T) {
	kv := &failingKV{MemoryKV: NewMemoryKV()}
	store := NewScoreStore(kv)
	ctx := context.Background()

	store.Update(ctx, 5, 60)

	kv.failSet = true
	if got := store.Update(ctx, 5, 999); got != 60 {
		t.Fatalf("expected previous value 60 on write failure, got %d", got)
	}
}

func TestUpdateStoresEmotionLabel(t *testing.T) {
	kv := NewMemoryKV()
	store := NewScoreStore(kv)
	ctx := context.Background()

	store.Update(ctx, 6, 85)

	record, ok := store.all(ctx)["6"]
	if !ok {
		t.Fatal("expected score record")
	}
	if record.Emotion != "joy" {
		t.Fatalf("expected label joy, got %q", record.Emotion)
	}
}
