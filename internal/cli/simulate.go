package cli

import (
	"context"
	"log"
	"time"

	"quizzy-attempt-service/internal/app"
	"quizzy-attempt-service/internal/config"
	"quizzy-attempt-service/internal/domain"
	"quizzy-attempt-service/internal/events"
	"quizzy-attempt-service/internal/infra/memory"
	pginfra "quizzy-attempt-service/internal/infra/postgres"
	redisinfra "quizzy-attempt-service/internal/infra/redis"

	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewSimulateCmd plays one scripted attempt through a quiz end to end. It is
// a smoke harness for the full stack, not a network server.
func NewSimulateCmd(configPath *string) *cobra.Command {
	var playerID, quizID string
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play one attempt through a quiz and print the outcome",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(cmd.Context(), *configPath, playerID, quizID)
		},
	}
	cmd.Flags().StringVar(&playerID, "player", "player-1", "player id for the simulated attempt")
	cmd.Flags().StringVar(&quizID, "quiz", "quiz-1", "quiz id to play")
	return cmd
}

func runSimulation(ctx context.Context, configPath, playerID, quizID string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		// No config file is fine for a local run; everything falls back to memory.
		log.Printf("config not loaded (%v), using in-memory stack", err)
		cfg = config.Config{}
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	var redisClient *goredis.Client
	if cfg.Redis.Addr != "" {
		redisClient = goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	var loader memory.QuizLoader = memory.NewStaticQuizLoader(sampleQuizzes())
	if pool != nil {
		loader = pginfra.NewQuizLoader(pool)
	}

	quizTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
	var quizRepo app.QuizRepository
	if redisClient != nil {
		quizRepo = redisinfra.NewQuizRepository(redisClient, loader, quizTTL)
	} else {
		quizRepo = memory.NewQuizRepository(loader, quizTTL)
	}

	var attempts app.AttemptRepository = memory.NewAttemptStore()
	if pool != nil {
		attempts = pginfra.NewAttemptRepository(pool)
	}

	dispatcher := events.NewDispatcher()
	tracker := app.NewAssignmentTracker()
	dispatcher.Subscribe(domain.AttemptCompletedName, tracker.HandleCompleted)
	dispatcher.Subscribe(domain.AttemptCompletedName, logCompletion)

	service := app.NewAttemptService(attempts, quizRepo, dispatcher)

	attempt, resumed, err := service.Start(ctx, playerID, quizID)
	if err != nil {
		return err
	}
	log.Printf("attempt %s started (resumed=%v), %d questions", attempt.ID(), resumed, attempt.Progress().Total)

	quiz, err := quizRepo.GetQuiz(ctx, quizID)
	if err != nil {
		return err
	}

	for i, question := range quiz.Questions {
		if attempt.IsQuestionAnswered(question.ID) {
			continue
		}
		sub := scriptedSubmission(quiz.ID, question, i)
		answer, completed, err := service.SubmitAnswer(ctx, attempt.ID(), sub)
		if err != nil {
			return err
		}
		log.Printf("q%d %q: correct=%v earned=%d elapsed=%s", i+1, question.Title, answer.Correct, answer.Earned.Int(), answer.Elapsed)
		if completed {
			break
		}
	}

	final, err := service.Get(ctx, attempt.ID())
	if err != nil {
		return err
	}
	log.Printf("final: status=%s score=%d accuracy=%.1f%% tracked=%v",
		final.Status(), final.Score().Int(), final.AccuracyPercent(), tracker.HasCompleted(quizID, playerID))
	return nil
}

// scriptedSubmission answers most questions correctly and lets every third
// one time out, so both paths show up in the output.
func scriptedSubmission(quizID string, q domain.Question, idx int) domain.Submission {
	if idx%3 == 2 {
		return domain.Submission{
			QuizID:     quizID,
			QuestionID: q.ID,
			Elapsed:    q.TimeLimit,
		}
	}
	var correct []int
	for i, opt := range q.Options {
		if opt.Correct {
			correct = append(correct, i)
		}
	}
	return domain.Submission{
		QuizID:          quizID,
		QuestionID:      q.ID,
		SelectedOptions: correct,
		Elapsed:         q.TimeLimit / 2,
	}
}

func logCompletion(_ context.Context, ev domain.Event) error {
	if completed, ok := ev.(domain.AttemptCompleted); ok {
		log.Printf("attempt %s completed: score=%d correct=%d/%d accuracy=%.1f%%",
			completed.AttemptID, completed.FinalScore, completed.CorrectAnswers, completed.TotalQuestions, completed.AccuracyPercent)
	}
	return nil
}

// sampleQuizzes provides minimal quiz content for runs without Postgres.
func sampleQuizzes() map[string]domain.Quiz {
	return map[string]domain.Quiz{
		"quiz-1": {
			ID:    "quiz-1",
			Title: "Warm-up",
			Questions: []domain.Question{
				{
					ID:    "q1",
					Title: "What is 2 + 2?",
					Options: []domain.Option{
						{Text: "3"},
						{Text: "4", Correct: true},
						{Text: "5"},
					},
					Points:    100,
					TimeLimit: 20 * time.Second,
				},
				{
					ID:    "q2",
					Title: "Which are prime?",
					Options: []domain.Option{
						{Text: "2", Correct: true},
						{Text: "4"},
						{Text: "7", Correct: true},
					},
					Points:    100,
					TimeLimit: 30 * time.Second,
				},
				{
					ID:    "q3",
					Title: "Capital of France?",
					Options: []domain.Option{
						{Text: "Paris", Correct: true},
						{Text: "Lyon"},
					},
					Points:    100,
					TimeLimit: 15 * time.Second,
				},
			},
		},
	}
}
