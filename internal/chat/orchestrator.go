// Package chat runs the per-turn conversation state machine: validate,
// compose, generate, classify, score, reward.
package chat

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/kokoroworks/valentine-companion/internal/emotion"
	"github.com/kokoroworks/valentine-companion/internal/generate"
	"github.com/kokoroworks/valentine-companion/internal/profile"
	"github.com/kokoroworks/valentine-companion/internal/prompt"
	"github.com/kokoroworks/valentine-companion/internal/types"
)

// Outcome distinguishes how a turn ended.
type Outcome int

const (
	// OutcomeReply is a normal scored reply.
	OutcomeReply Outcome = iota
	// OutcomeRejected means the input was refused before any generation.
	OutcomeRejected
	// OutcomeFallback means the generator failed and a canned apology was
	// returned; nothing was scored or appended.
	OutcomeFallback
	// OutcomeDropped means the reply exceeded the length cap and was
	// discarded without being shown, scored, or appended.
	OutcomeDropped
)

// Result is the outcome of one conversation turn.
type Result struct {
	Outcome      Outcome
	Text         string
	EmotionScore int
}

const (
	maxMessageLength = 200
	maxReplyLength   = 250
	// fallbackPoints is awarded when the reply's emotion analysis fails.
	fallbackPoints = 10

	refusalUnknown = "よくわかんないなあ"
	refusalBlocked = "ごめんね、はなしたくない...。"
	refusalTooLong = "ごめんね、ちょっと何言ってるかわかんない..."
	apologyFailure = "ごめんね"
)

var blockedKeywords = []string{"自殺", "死にたい"}

// Scores is the affection score persistence the orchestrator needs.
type Scores interface {
	Get(ctx context.Context, characterID int) int
	Update(ctx context.Context, characterID int, newTotal int) int
	Reset(ctx context.Context, characterID int)
}

// Diaries looks up the saved diary used as long-term memory.
type Diaries interface {
	Find(ctx context.Context, characterID int) (types.SavedDiary, bool)
}

// Classifier analyzes text sentiment. Classify reports a generation failure
// so the reply-scoring path can award fallback points.
type Classifier interface {
	Classify(ctx context.Context, text string) (emotion.Classification, error)
}

// Config wires an Orchestrator.
type Config struct {
	Profiles   *profile.Table
	Generator  generate.Client
	Classifier Classifier
	Scores     Scores
	Diaries    Diaries
	// Threshold is the reward threshold; 0 means the default of 2000.
	Threshold int
	// MaxHistory is the retained exchange count; 0 means the default of 5.
	MaxHistory int
	// OnReward fires when the score crosses the threshold.
	OnReward func(characterID int)
}

// Orchestrator holds one chat session's transient state. It is not safe for
// concurrent use; each active session owns its own instance.
type Orchestrator struct {
	profiles   *profile.Table
	gen        generate.Client
	classifier Classifier
	scores     Scores
	diaries    Diaries
	builder    *prompt.Builder
	history    *prompt.History

	threshold int
	onReward  func(characterID int)

	currentEmotion string
	contextWindow  []string
}

// New returns an Orchestrator for one chat session.
func New(cfg Config) *Orchestrator {
	threshold := cfg.Threshold
	if threshold <= 0 {
		threshold = 2000
	}
	return &Orchestrator{
		profiles:       cfg.Profiles,
		gen:            cfg.Generator,
		classifier:     cfg.Classifier,
		scores:         cfg.Scores,
		diaries:        cfg.Diaries,
		builder:        prompt.NewBuilder(),
		history:        prompt.NewHistory(cfg.MaxHistory),
		threshold:      threshold,
		onReward:       cfg.OnReward,
		currentEmotion: emotion.Neutral,
	}
}

// Respond runs one conversation turn for the named character.
func (o *Orchestrator) Respond(ctx context.Context, characterName, message string) Result {
	char, ok := o.profiles.Lookup(characterName)
	if !ok {
		slog.Warn("unknown character", "name", characterName)
		return Result{Outcome: OutcomeRejected, Text: refusalUnknown}
	}
	for _, keyword := range blockedKeywords {
		if strings.Contains(message, keyword) {
			return Result{Outcome: OutcomeRejected, Text: refusalBlocked}
		}
	}
	if utf8.RuneCountInString(message) > maxMessageLength {
		return Result{Outcome: OutcomeRejected, Text: refusalTooLong}
	}

	messageEmotion, err := o.classifier.Classify(ctx, message)
	if err != nil {
		slog.Warn("message emotion analysis failed", "error", err.Error())
	}
	if messageEmotion.Emotion != emotion.Neutral {
		o.currentEmotion = messageEmotion.Emotion
	}

	diaryText := ""
	if diary, found := o.diaries.Find(ctx, char.ID); found {
		diaryText = diary.Content
	}

	o.history.Push(types.ConversationTurn{Role: types.RoleUser, Content: message})

	examples := prompt.SelectRelevantExamples(message, char.ExampleUtterances, o.currentEmotion)

	currentScore := o.scores.Get(ctx, char.ID)
	progress := math.Min(float64(currentScore)/float64(o.threshold)*100, 100)

	promptText, err := o.builder.ChatPrompt(prompt.ChatData{
		Profile:          char,
		Examples:         examples,
		Progress:         progress,
		CurrentEmotion:   o.currentEmotion,
		MessageEmotion:   messageEmotion.Emotion,
		MessageIntensity: messageEmotion.Total,
		Diary:            diaryText,
		Message:          message,
	})
	if err != nil {
		slog.Error("failed to build chat prompt", "error", err.Error())
		return Result{Outcome: OutcomeFallback, Text: apologyFailure}
	}

	contextBlock, err := o.builder.ContextBlock(char, o.currentEmotion, o.history)
	if err != nil {
		slog.Error("failed to build context block", "error", err.Error())
		return Result{Outcome: OutcomeFallback, Text: apologyFailure}
	}

	reply, err := o.gen.Generate(ctx, generate.Request{
		Message:   promptText,
		Context:   contextBlock,
		Character: char.Name,
		Emotion: &generate.Emotion{
			Total: messageEmotion.Total,
			Label: messageEmotion.Emotion,
		},
	})
	if err != nil {
		slog.Error("generation failed", "character", char.Name, "error", err.Error())
		return Result{Outcome: OutcomeFallback, Text: apologyFailure}
	}

	if utf8.RuneCountInString(reply) > maxReplyLength {
		// Deliberate policy: oversize replies vanish without an error so the
		// surface can silently wait for the next turn. The whole turn is
		// rolled back, including the user message already in history.
		slog.Warn("reply over length cap, dropping turn", "character", char.Name, "length", utf8.RuneCountInString(reply))
		o.history.PopLast()
		return Result{Outcome: OutcomeDropped, EmotionScore: currentScore}
	}

	o.history.Push(types.ConversationTurn{Role: types.RoleAssistant, Content: reply})
	o.updateContextWindow(message, reply)

	replyEmotion, classifyErr := o.classifier.Classify(ctx, reply)
	if classifyErr != nil {
		slog.Warn("reply emotion analysis failed, applying fallback points", "error", classifyErr.Error())
		return Result{Outcome: OutcomeReply, Text: reply, EmotionScore: o.applyPoints(ctx, char.ID, fallbackPoints)}
	}

	if replyEmotion.Emotion != emotion.Neutral {
		o.currentEmotion = replyEmotion.Emotion
	}

	points := calculatePoints(replyEmotion.Total, char.ScoreMultiplier)
	return Result{Outcome: OutcomeReply, Text: reply, EmotionScore: o.applyPoints(ctx, char.ID, points)}
}

// applyPoints folds points into the stored score and handles the reward
// threshold. Crossing the threshold fires the reward callback once, resets
// the score, and reports 0.
func (o *Orchestrator) applyPoints(ctx context.Context, characterID, points int) int {
	currentScore := o.scores.Get(ctx, characterID)
	newScore := currentScore + points

	if newScore >= o.threshold {
		if o.onReward != nil {
			o.onReward(characterID)
		}
		o.scores.Reset(ctx, characterID)
		return 0
	}
	return o.scores.Update(ctx, characterID, newScore)
}

// calculatePoints buckets the reply's raw emotion score and applies the
// character multiplier, rounded to nearest.
func calculatePoints(emotionScore int, multiplier float64) int {
	var base int
	switch {
	case emotionScore > 80:
		base = 100
	case emotionScore > 60:
		base = 80
	case emotionScore > 40:
		base = 60
	case emotionScore > 20:
		base = 40
	case emotionScore > 0:
		base = 20
	case emotionScore > -20:
		base = 10
	case emotionScore > -40:
		base = -10
	case emotionScore > -60:
		base = -20
	default:
		base = -30
	}
	if multiplier == 0 {
		multiplier = 1.0
	}
	return int(math.Round(float64(base) * multiplier))
}

// updateContextWindow keeps a short rolling digest of recent exchanges.
func (o *Orchestrator) updateContextWindow(message, reply string) {
	o.contextWindow = append(o.contextWindow,
		"- 相手が「"+message+"」と言った",
		"- 私は「"+reply+"」と答えた",
		"- 感情は"+o.currentEmotion+"だった",
	)
	if len(o.contextWindow) > 10 {
		o.contextWindow = o.contextWindow[len(o.contextWindow)-10:]
	}
}

// ContextWindow returns the rolling exchange digest.
func (o *Orchestrator) ContextWindow() string {
	return strings.Join(o.contextWindow, "\n")
}

// CurrentEmotion returns the session's current emotion label.
func (o *Orchestrator) CurrentEmotion() string {
	return o.currentEmotion
}

// ResetConversation clears all transient session state.
func (o *Orchestrator) ResetConversation() {
	o.history.Clear()
	o.currentEmotion = emotion.Neutral
	o.contextWindow = nil
}
