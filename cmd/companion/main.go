// Package main is the CLI entry point for the valentine companion.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/genai"

	"github.com/kokoroworks/valentine-companion/internal/chat"
	"github.com/kokoroworks/valentine-companion/internal/config"
	"github.com/kokoroworks/valentine-companion/internal/diary"
	"github.com/kokoroworks/valentine-companion/internal/emotion"
	"github.com/kokoroworks/valentine-companion/internal/generate"
	"github.com/kokoroworks/valentine-companion/internal/profile"
	"github.com/kokoroworks/valentine-companion/internal/storage"
	"github.com/kokoroworks/valentine-companion/internal/types"
)

var (
	characterFlag   string
	userNameFlag    string
	descriptionFlag string
)

var rootCmd = &cobra.Command{
	Use:   "companion",
	Short: "companion - valentine chat companion",
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with a character in REPL mode",
	RunE:  runChat,
}

var diaryCmd = &cobra.Command{
	Use:   "diary",
	Short: "Generate (or fetch) the character's diary",
	RunE:  runDiary,
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear all saved diaries",
	RunE:  runClear,
}

func main() {
	chatCmd.Flags().StringVarP(&characterFlag, "character", "c", "まりぴ", "character name")
	diaryCmd.Flags().StringVarP(&characterFlag, "character", "c", "まりぴ", "character name")
	diaryCmd.Flags().StringVar(&userNameFlag, "name", "", "your name for the user profile")
	diaryCmd.Flags().StringVar(&descriptionFlag, "description", "", "a short self description")
	rootCmd.AddCommand(chatCmd, diaryCmd, clearCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newGenerator builds the configured generation backend.
func newGenerator(ctx context.Context, cfg config.Config) (generate.Client, error) {
	switch cfg.Backend {
	case config.BackendOpenAI:
		return generate.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.LLMModel)
	case config.BackendGemini:
		llm, err := gemini.NewModel(ctx, cfg.LLMModel, &genai.ClientConfig{
			APIKey:  cfg.GoogleAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini model: %w", err)
		}
		return generate.NewLLMClient(llm)
	default:
		return generate.NewRelayClient(cfg.BackendURL), nil
	}
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	ctx := cmd.Context()

	store, err := storage.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer store.Close()

	gen, err := newGenerator(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to create generator: %v", err)
	}

	orchestrator := chat.New(chat.Config{
		Profiles:   profile.Default(),
		Generator:  gen,
		Classifier: emotion.NewClassifier(gen),
		Scores:     store.Scores,
		Diaries:    store.Diaries,
		Threshold:  cfg.RewardThreshold,
		MaxHistory: cfg.MaxHistoryLength,
		OnReward: func(characterID int) {
			fmt.Println("♥ チョコレートをもらいました！")
		},
	})

	fmt.Printf("%s と話しています。終了は Ctrl-D、リセットは /reset。\n", characterFlag)
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/reset" {
			orchestrator.ResetConversation()
			fmt.Println("会話をリセットしました。")
			continue
		}

		result := orchestrator.Respond(ctx, characterFlag, line)
		switch result.Outcome {
		case chat.OutcomeDropped:
			// The turn vanished on purpose; say nothing.
		default:
			fmt.Printf("%s: %s  (score %d)\n", characterFlag, result.Text, result.EmotionScore)
		}
	}
	return scanner.Err()
}

func runDiary(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	ctx := cmd.Context()

	store, err := storage.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer store.Close()

	gen, err := newGenerator(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to create generator: %v", err)
	}

	char, ok := profile.Default().Lookup(characterFlag)
	if !ok {
		return fmt.Errorf("unknown character %q", characterFlag)
	}

	userProfile, found := store.Profiles.Get(ctx)
	if userNameFlag != "" {
		userProfile = types.UserProfile{Name: userNameFlag, Description: descriptionFlag}
		if err := store.Profiles.Save(ctx, userProfile); err != nil {
			return err
		}
	} else if !found {
		return fmt.Errorf("no saved user profile; pass --name and --description")
	}

	pipeline := diary.NewPipeline(gen, store.Diaries, time.Duration(cfg.MinDiarySeconds)*time.Second)
	supervisor := diary.NewSupervisor(pipeline, 0)
	supervisor.OnRetry = func() {
		fmt.Println("うまくいかなかったので、もう一度だけ試します...")
	}
	supervisor.OnRecommendProfileChange = func() {
		fmt.Println("日記が書けませんでした。プロフィールを変えてみてください。")
	}

	result, err := supervisor.Run(ctx, char, userProfile)
	if err != nil {
		return err
	}
	if result.IsNewDiary {
		fmt.Println("（新しい日記が書き上がりました）")
	}
	fmt.Println(result.Diary)
	return nil
}

func runClear(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	ctx := cmd.Context()

	store, err := storage.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer store.Close()

	if err := store.Diaries.ClearAll(ctx); err != nil {
		return err
	}
	fmt.Println("日記をすべて消しました。")
	return nil
}
