package emotion

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/kokoroworks/valentine-companion/internal/generate"
)

// Classification is the result of analyzing one piece of text.
type Classification struct {
	Total      int
	Emotion    string
	LastUpdate time.Time
}

// Classifier turns text into a bounded sentiment score and emotion label.
type Classifier struct {
	gen     generate.Client
	nowFunc func() time.Time
}

// NewClassifier returns a Classifier using the given generation client.
func NewClassifier(gen generate.Client) *Classifier {
	return &Classifier{gen: gen, nowFunc: time.Now}
}

const analyzePrompt = `
以下のテキストの感情分析を行い、-100から100の間のスコアで評価してください。
ポジティブな感情が強いほど高いスコアを、ネガティブな感情が強いほど低いスコアを付けてください。
返答は数値のみにしてください。

テキスト：
%s
`

// scorePattern extracts the first integer, keeping only a leading minus.
// Responses like "スコア: 85点" or "12-3" parse as 85 and 12.
var scorePattern = regexp.MustCompile(`-?[0-9]+`)

// Analyze classifies text and never fails: empty or whitespace-only text
// short-circuits to the neutral default without a generation call, and every
// error path collapses to the same default.
func (c *Classifier) Analyze(ctx context.Context, text string) Classification {
	result, err := c.Classify(ctx, text)
	if err != nil {
		slog.Warn("emotion analysis failed", "error", err.Error())
		return c.neutral()
	}
	return result
}

// Classify is Analyze with the generation failure surfaced. Malformed or
// out-of-range scores still map to the neutral default without an error;
// only a failed generation call is reported, so callers that award fallback
// points on analysis failure can tell the cases apart.
func (c *Classifier) Classify(ctx context.Context, text string) (Classification, error) {
	if strings.TrimSpace(text) == "" {
		return c.neutral(), nil
	}

	raw, err := c.gen.Generate(ctx, generate.Request{
		Message:   fmt.Sprintf(analyzePrompt, text),
		Character: "analyzer",
	})
	if err != nil {
		return c.neutral(), fmt.Errorf("failed to analyze emotion: %w", err)
	}

	match := scorePattern.FindString(raw)
	if match == "" {
		slog.Warn("emotion analysis returned a non-numeric score", "raw", raw)
		return c.neutral(), nil
	}
	score, err := strconv.Atoi(match)
	if err != nil {
		slog.Warn("emotion analysis returned an unparsable score", "raw", raw)
		return c.neutral(), nil
	}
	if score < -100 || score > 100 {
		slog.Warn("emotion analysis score out of range", "score", score)
		return c.neutral(), nil
	}

	return Classification{
		Total:      score,
		Emotion:    Determine(score),
		LastUpdate: c.nowFunc(),
	}, nil
}

func (c *Classifier) neutral() Classification {
	return Classification{Total: 0, Emotion: Neutral, LastUpdate: c.nowFunc()}
}
