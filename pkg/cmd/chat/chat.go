package chat

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/skidmark-racing/chorley/log"
	"github.com/skidmark-racing/chorley/pkg/chat"
	"github.com/skidmark-racing/chorley/pkg/config"
	"github.com/skidmark-racing/chorley/pkg/db/postgres"
	"github.com/skidmark-racing/chorley/pkg/query"
	"github.com/skidmark-racing/chorley/pkg/reference"
	"github.com/skidmark-racing/chorley/pkg/tools"
)

const resetCommand = "!reset"

var username string

//nolint:funlen // by design
func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "starts an interactive chat session with the assistant",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&config.GeminiAPIKey,
		"gemini-api-key",
		"",
		"API key for the Gemini model")
	cmd.Flags().StringVar(&config.GeminiModel,
		"gemini-model",
		"gemini-2.0-flash",
		"model id used for chat completions")
	cmd.Flags().StringVar(&config.SystemPrompt,
		"system-prompt",
		"",
		"override for the assistant system instructions")
	cmd.Flags().StringVar(&username,
		"username",
		"user",
		"name attached to your chat messages")
	cmd.Flags().IntVar(&config.MaxToolRounds,
		"max-tool-rounds",
		5,
		"max model/tool rounds per user turn")
	cmd.Flags().IntVar(&config.MaxHistory,
		"max-history",
		40,
		"max conversation turns kept per conversation (0 = unbounded)")
	cmd.Flags().StringVar(&config.TurnBudget,
		"turn-budget",
		"2m",
		"wall clock budget for a single user turn")
	cmd.Flags().StringVar(&config.ToolTimeout,
		"tool-timeout",
		"15s",
		"timeout for a single tool call")
	cmd.Flags().StringVar(&config.LogLevel,
		"log-level",
		"info",
		"controls the log level (debug, info, warn, error, fatal)")
	cmd.Flags().StringVar(&config.SQLLogLevel,
		"sql-log-level",
		"debug",
		"controls the log level for sql methods")
	cmd.Flags().StringVar(&config.LogFormat,
		"log-format",
		"text",
		"controls the log output format")
	return cmd
}

func parseLogLevel(l string, defaultVal log.Level) log.Level {
	level, err := log.ParseLevel(l)
	if err != nil {
		return defaultVal
	}
	return level
}

func parseDuration(s string, defaultVal time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return defaultVal
	}
	return d
}

func setupLoggers() (logger, sqlLogger *log.Logger) {
	switch config.LogFormat {
	case "json":
		logger = log.New(
			os.Stderr,
			parseLogLevel(config.LogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
		sqlLogger = log.New(
			os.Stderr,
			parseLogLevel(config.SQLLogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
	default:
		logger = log.DevLogger(
			os.Stderr,
			parseLogLevel(config.LogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
		sqlLogger = log.DevLogger(
			os.Stderr,
			parseLogLevel(config.SQLLogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
	}
	return logger, sqlLogger
}

//nolint:funlen // by design
func runChat(ctx context.Context) error {
	logger, sqlLogger := setupLoggers()
	log.ResetDefault(logger)

	log.Debug("Config:",
		log.String("db", config.DB),
		log.String("model", config.GeminiModel),
		log.String("referenceDir", config.ReferenceDir),
	)

	pool := postgres.InitWithURL(
		config.DB,
		postgres.WithTracer(sqlLogger),
		postgres.WithMaxConns(int32(config.DBMaxConns)),
	)
	defer pool.Close()

	refs := reference.NewIndex(config.ReferenceDir,
		reference.WithLogger(log.Default().Named("reference")))

	queries := query.NewService(
		query.WithConn(pool),
		query.WithReferenceIndex(refs),
		query.WithLogger(log.Default().Named("query")),
	)
	executor, err := tools.NewExecutor(queries,
		tools.WithTimeout(parseDuration(config.ToolTimeout, 15*time.Second)))
	if err != nil {
		return err
	}

	model, err := chat.NewGeminiModel(ctx,
		config.GeminiAPIKey,
		config.GeminiModel,
		chat.WithSystemPrompt(config.SystemPrompt),
		chat.WithMaxHistory(config.MaxHistory))
	if err != nil {
		log.Error("could not create model client", log.ErrorField(err))
		return err
	}

	orchestrator := chat.NewOrchestrator(
		chat.WithModel(model),
		chat.WithExecutor(executor),
		chat.WithMaxRounds(config.MaxToolRounds),
		chat.WithTurnBudget(parseDuration(config.TurnBudget, 2*time.Minute)),
		chat.WithLogger(log.Default().Named("chat")),
	)

	convID := uuid.NewString()
	fmt.Printf("Chorley is listening. Type %s to clear the conversation, "+
		"Ctrl-D to quit.\n", resetCommand)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("%s> ", username)
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if text == resetCommand {
			orchestrator.Reset(convID)
			fmt.Println("(conversation cleared)")
			continue
		}
		reply := orchestrator.HandleUserTurn(ctx, convID, username, text)
		for _, line := range reply.Intermediate {
			fmt.Printf("chorley> %s\n", line)
		}
		fmt.Printf("chorley> %s\n", reply.FinalText)
	}
	return scanner.Err()
}
