// Package diary generates and persists the one-time character diary used as
// long-term conversation memory.
package diary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kokoroworks/valentine-companion/internal/generate"
	"github.com/kokoroworks/valentine-companion/internal/prompt"
	"github.com/kokoroworks/valentine-companion/internal/types"
)

// ErrGenerationFailed is the generic error surfaced when any pipeline stage
// fails. Stage detail stays in the wrapped cause.
var ErrGenerationFailed = errors.New("diary generation failed")

// Store is the diary persistence the pipeline delegates to.
type Store interface {
	Find(ctx context.Context, characterID int) (types.SavedDiary, bool)
	Save(ctx context.Context, diary types.SavedDiary) error
}

// Result is a pipeline outcome.
type Result struct {
	Diary      string
	IsNewDiary bool
}

// Pipeline runs the three-stage diary generation: profile analysis, a
// first-person reflection, then the diary text, each stage feeding the next.
type Pipeline struct {
	gen     generate.Client
	diaries Store
	builder *prompt.Builder

	// minElapsed guarantees the calling surface's loading state stays
	// visible; it only affects pacing, never content.
	minElapsed time.Duration
	nowFunc    func() time.Time
	sleepFunc  func(ctx context.Context, d time.Duration)
}

// NewPipeline returns a Pipeline. minElapsed <= 0 means the default of 10s.
func NewPipeline(gen generate.Client, diaries Store, minElapsed time.Duration) *Pipeline {
	if minElapsed <= 0 {
		minElapsed = 10 * time.Second
	}
	return &Pipeline{
		gen:        gen,
		diaries:    diaries,
		builder:    prompt.NewBuilder(),
		minElapsed: minElapsed,
		nowFunc:    time.Now,
		sleepFunc:  sleepContext,
	}
}

// Generate returns the character's diary, producing and persisting it on
// first call. A diary that already exists is returned as-is and never
// regenerated.
func (p *Pipeline) Generate(ctx context.Context, character types.CharacterProfile, user types.UserProfile) (Result, error) {
	if existing, found := p.diaries.Find(ctx, character.ID); found {
		return Result{Diary: existing.Content, IsNewDiary: false}, nil
	}

	start := p.nowFunc()

	analysis, err := p.runStage(ctx, "profile analysis", "心理カウンセラー", func() (string, error) {
		return p.builder.ProfileAnalysisPrompt(user)
	})
	if err != nil {
		return Result{}, err
	}

	thoughts, err := p.runStage(ctx, "reflection", character.Name, func() (string, error) {
		return p.builder.ReflectionPrompt(analysis, character)
	})
	if err != nil {
		return Result{}, err
	}

	content, err := p.runStage(ctx, "diary composition", character.Name, func() (string, error) {
		return p.builder.DiaryPrompt(thoughts, character)
	})
	if err != nil {
		return Result{}, err
	}

	if elapsed := p.nowFunc().Sub(start); elapsed < p.minElapsed {
		p.sleepFunc(ctx, p.minElapsed-elapsed)
	}

	if err := p.diaries.Save(ctx, types.SavedDiary{
		CharacterID: character.ID,
		Content:     content,
		Timestamp:   p.nowFunc(),
	}); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	return Result{Diary: content, IsNewDiary: true}, nil
}

// runStage renders one stage prompt and issues its generation call.
func (p *Pipeline) runStage(ctx context.Context, stage, persona string, buildPrompt func() (string, error)) (string, error) {
	promptText, err := buildPrompt()
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrGenerationFailed, stage, err)
	}
	text, err := p.gen.Generate(ctx, generate.Request{Message: promptText, Character: persona})
	if err != nil {
		slog.Error("diary stage failed", "stage", stage, "error", err.Error())
		return "", fmt.Errorf("%w: %s: %w", ErrGenerationFailed, stage, err)
	}
	return text, nil
}

func sleepContext(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
