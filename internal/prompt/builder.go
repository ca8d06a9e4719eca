// Package prompt assembles the textual context and prompts sent to the
// generator.
package prompt

import (
	"bytes"
	"fmt"

	"github.com/kokoroworks/valentine-companion/internal/types"
)

// contextTurns is how many history entries the context block renders
// (three exchanges).
const contextTurns = 6

// ChatData contains all inputs for chat prompt assembly.
type ChatData struct {
	Profile          types.CharacterProfile
	Examples         []string
	Progress         float64
	CurrentEmotion   string
	MessageEmotion   string
	MessageIntensity int
	Diary            string
	Message          string
}

// Builder renders prompts and context blocks.
type Builder struct{}

// NewBuilder creates a prompt Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// ContextBlock renders character identity, current emotion, and the last
// three exchanges, oldest first.
func (b *Builder) ContextBlock(profile types.CharacterProfile, currentEmotion string, history *History) (string, error) {
	data := struct {
		Profile        types.CharacterProfile
		CurrentEmotion string
		Turns          []types.ConversationTurn
	}{
		Profile:        profile,
		CurrentEmotion: currentEmotion,
		Turns:          history.Last(contextTurns),
	}

	var buf bytes.Buffer
	if err := contextTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to build context block: %w", err)
	}
	return buf.String(), nil
}

// ChatPrompt renders the full per-turn prompt.
func (b *Builder) ChatPrompt(data ChatData) (string, error) {
	if data.Diary == "" {
		data.Diary = diaryPlaceholder
	}

	payload := struct {
		ChatData
		ProgressNote string
	}{
		ChatData:     data,
		ProgressNote: progressNote(data.Progress),
	}

	var buf bytes.Buffer
	if err := chatTemplate.Execute(&buf, payload); err != nil {
		return "", fmt.Errorf("failed to build chat prompt: %w", err)
	}
	return buf.String(), nil
}

// ProfileAnalysisPrompt renders the first diary stage prompt.
func (b *Builder) ProfileAnalysisPrompt(profile types.UserProfile) (string, error) {
	var buf bytes.Buffer
	if err := profileAnalysisTemplate.Execute(&buf, profile); err != nil {
		return "", fmt.Errorf("failed to build profile analysis prompt: %w", err)
	}
	return buf.String(), nil
}

// ReflectionPrompt renders the second diary stage prompt.
func (b *Builder) ReflectionPrompt(analysis string, profile types.CharacterProfile) (string, error) {
	data := struct {
		Profile  types.CharacterProfile
		Analysis string
	}{Profile: profile, Analysis: analysis}

	var buf bytes.Buffer
	if err := reflectionTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to build reflection prompt: %w", err)
	}
	return buf.String(), nil
}

// DiaryPrompt renders the final diary composition prompt.
func (b *Builder) DiaryPrompt(thoughts string, profile types.CharacterProfile) (string, error) {
	data := struct {
		Profile  types.CharacterProfile
		Thoughts string
	}{Profile: profile, Thoughts: thoughts}

	var buf bytes.Buffer
	if err := diaryTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to build diary prompt: %w", err)
	}
	return buf.String(), nil
}

func progressNote(progress float64) string {
	switch {
	case progress < 30:
		return "まだ気持ちが高まっていない段階です。"
	case progress < 60:
		return "少しずつ気持ちが高まってきています。"
	case progress < 90:
		return "かなり気持ちが高まってきています。"
	default:
		return "もうすぐチョコレートを渡せそうです。"
	}
}
