package diary

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/kokoroworks/valentine-companion/internal/generate"
	"github.com/kokoroworks/valentine-companion/internal/types"
)

// Runner is the pipeline surface the supervisor drives.
type Runner interface {
	Generate(ctx context.Context, character types.CharacterProfile, user types.UserProfile) (Result, error)
}

// maxRetries limits the supervisor to exactly one retry after the first
// generic failure.
const maxRetries = 1

// defaultNavigateDelay is how long the escalated state stays on screen
// before the surface is sent away.
const defaultNavigateDelay = 5 * time.Second

// Supervisor applies the caller-side retry and escalation policy around the
// pipeline: one retry on a generic failure, immediate escalation on a server
// error or a second failure.
type Supervisor struct {
	pipeline      Runner
	navigateDelay time.Duration

	// OnRetry signals the surface to show a "will retry" message.
	OnRetry func()
	// OnRecommendProfileChange signals the terminal escalation state.
	OnRecommendProfileChange func()
	// OnNavigateBack fires after the escalation delay.
	OnNavigateBack func()

	mu            sync.Mutex
	navigateTimer *time.Timer
}

// NewSupervisor returns a Supervisor. navigateDelay <= 0 means the default.
func NewSupervisor(pipeline Runner, navigateDelay time.Duration) *Supervisor {
	if navigateDelay <= 0 {
		navigateDelay = defaultNavigateDelay
	}
	return &Supervisor{pipeline: pipeline, navigateDelay: navigateDelay}
}

// Run drives the pipeline with the retry policy and returns the final
// result. Escalation schedules the navigate-back timer before returning the
// failure.
func (s *Supervisor) Run(ctx context.Context, character types.CharacterProfile, user types.UserProfile) (Result, error) {
	attempts := 0
	for {
		result, err := s.pipeline.Generate(ctx, character, user)
		if err == nil {
			return result, nil
		}
		attempts++
		slog.Warn("diary generation attempt failed", "character", character.Name, "attempt", attempts, "error", err.Error())

		if generate.IsServerError(err) || attempts > maxRetries {
			s.escalate()
			return Result{}, err
		}
		if s.OnRetry != nil {
			s.OnRetry()
		}
	}
}

func (s *Supervisor) escalate() {
	if s.OnRecommendProfileChange != nil {
		s.OnRecommendProfileChange()
	}
	if s.OnNavigateBack == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.navigateTimer = time.AfterFunc(s.navigateDelay, s.OnNavigateBack)
}

// Cancel clears any pending navigate timer. An already-dispatched generation
// call is not interrupted; its late result is simply ignored by the surface
// that abandoned it.
func (s *Supervisor) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.navigateTimer != nil {
		s.navigateTimer.Stop()
		s.navigateTimer = nil
	}
}
