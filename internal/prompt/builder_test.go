package prompt

import (
	"strconv"
	"strings"
	"testing"

	"github.com/kokoroworks/valentine-companion/internal/types"
)

func testProfile() types.CharacterProfile {
	return types.CharacterProfile{
		ID:            1,
		Name:          "まりぴ",
		Role:          "高校2年生のギャル",
		Personality:   "明るい",
		SpeakingStyle: "ギャル語",
		Situation:     "バイト中",
		ValentineNote: "チョコ作り挑戦中",
	}
}

func TestContextBlockRendersLastSixTurns(t *testing.T) {
	history := NewHistory(5)
	for i := 0; i < 8; i++ {
		role := types.RoleUser
		if i%2 == 1 {
			role = types.RoleAssistant
		}
		history.Push(types.ConversationTurn{Role: role, Content: "turn" + strconv.Itoa(i)})
	}

	block, err := NewBuilder().ContextBlock(testProfile(), "joy", history)
	if err != nil {
		t.Fatal(err)
	}

	if strings.Contains(block, "turn0") || strings.Contains(block, "turn1") {
		t.Fatalf("expected oldest turns to be excluded:\n%s", block)
	}
	for i := 2; i < 8; i++ {
		if !strings.Contains(block, "turn"+strconv.Itoa(i)) {
			t.Fatalf("expected turn%d in context block:\n%s", i, block)
		}
	}
	if !strings.Contains(block, "相手: turn2") || !strings.Contains(block, "私: turn3") {
		t.Fatalf("expected speaker labels:\n%s", block)
	}
	if strings.Index(block, "turn2") > strings.Index(block, "turn7") {
		t.Fatal("expected oldest-first ordering")
	}
	if !strings.Contains(block, "joy") {
		t.Fatal("expected current emotion in context block")
	}
	if !strings.Contains(block, "まりぴ") {
		t.Fatal("expected character identity in context block")
	}
}

func TestChatPromptIncludesProgressAndDiary(t *testing.T) {
	builder := NewBuilder()
	text, err := builder.ChatPrompt(ChatData{
		Profile:          testProfile(),
		Examples:         []string{"例文1", "例文2"},
		Progress:         42.5,
		CurrentEmotion:   "shy",
		MessageEmotion:   "joy",
		MessageIntensity: 85,
		Diary:            "昨日の日記",
		Message:          "おはよう",
	})
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"42.5%", "昨日の日記", "おはよう", "例文1", "shy", "joy", "85", "少しずつ気持ちが高まってきています。"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in chat prompt:\n%s", want, text)
		}
	}
}

func TestChatPromptUsesPlaceholderWithoutDiary(t *testing.T) {
	text, err := NewBuilder().ChatPrompt(ChatData{
		Profile: testProfile(),
		Message: "やあ",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text, "昨日は特に何も書いていません") {
		t.Fatalf("expected diary placeholder:\n%s", text)
	}
}

func TestProgressNotes(t *testing.T) {
	cases := []struct {
		progress float64
		want     string
	}{
		{0, "まだ気持ちが高まっていない段階です。"},
		{29.9, "まだ気持ちが高まっていない段階です。"},
		{30, "少しずつ気持ちが高まってきています。"},
		{60, "かなり気持ちが高まってきています。"},
		{90, "もうすぐチョコレートを渡せそうです。"},
		{100, "もうすぐチョコレートを渡せそうです。"},
	}
	for _, tc := range cases {
		if got := progressNote(tc.progress); got != tc.want {
			t.Errorf("progressNote(%v) = %q, want %q", tc.progress, got, tc.want)
		}
	}
}

func TestDiaryStagePromptsChainInputs(t *testing.T) {
	builder := NewBuilder()

	analysis, err := builder.ProfileAnalysisPrompt(types.UserProfile{Name: "たろう", Description: "サッカー部"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(analysis, "たろう") || !strings.Contains(analysis, "サッカー部") {
		t.Fatalf("expected user profile in analysis prompt:\n%s", analysis)
	}

	reflection, err := builder.ReflectionPrompt("分析結果です", testProfile())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(reflection, "分析結果です") || !strings.Contains(reflection, "まりぴ") {
		t.Fatalf("expected chained analysis in reflection prompt:\n%s", reflection)
	}

	diaryPrompt, err := builder.DiaryPrompt("独白です", testProfile())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(diaryPrompt, "独白です") || !strings.Contains(diaryPrompt, "2025年2月13日") {
		t.Fatalf("expected chained thoughts in diary prompt:\n%s", diaryPrompt)
	}
}
