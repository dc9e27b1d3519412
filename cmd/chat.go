package cmd

import (
	"context"
	"fmt"

	"github.com/birmacher/econ-bot/answer"
	"github.com/birmacher/econ-bot/common"
	"github.com/birmacher/econ-bot/exam"
	"github.com/birmacher/econ-bot/llm"
	"github.com/birmacher/econ-bot/logger"
	"github.com/birmacher/econ-bot/prompt"
	"github.com/birmacher/econ-bot/record"
	"github.com/birmacher/econ-bot/session"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive exam-answer session",
	Long: `Start the interactive loop. Type /notes, /mcq or /pyq followed by a topic,
marks 2|5|10 to change the answer length, model <name> to switch models, /demo for a sample, or exit to quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := chatSettings(cmd)
		if err != nil {
			return err
		}
		logger.Debugf("Using settings: %+v", settings)

		opts := []llm.Option{
			llm.WithAPITimeout(settings.APITimeout),
			llm.WithRetryConfig(settings.RetryConfig()),
		}
		if settings.BaseURL != "" {
			opts = append(opts, llm.WithBaseURL(settings.BaseURL))
		}

		llmClient, err := llm.NewLLM(cmd.Context(), settings.Provider, settings.Model, opts...)
		if err != nil {
			return fmt.Errorf("failed to create client for provider: %v", err)
		}

		journal, err := record.Open(settings.LogFile)
		if err != nil {
			return err
		}
		defer journal.Close()

		controller := answer.NewController(llmClient, prompt.NewBuilder(settings), settings.MaxRetries)

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Economics Explainer Bot (CLI)")
		fmt.Fprintf(out, "Provider: %s  Model: %s  Marks: %d\n", settings.Provider, settings.Model, settings.Marks)
		fmt.Fprintf(out, "Logging requests to %s\n", journal.Path())
		fmt.Fprintln(out, "Type 'help' for commands.")
		fmt.Fprintln(out)

		switchModel := func(ctx context.Context, name string) error {
			client, err := llm.NewLLM(ctx, settings.Provider, name, opts...)
			if err != nil {
				return err
			}
			controller.SetClient(client)
			return nil
		}

		chat := session.New(controller, journal, out,
			session.WithMarks(exam.Marks(settings.Marks)),
			session.WithModel(settings.Model),
			session.WithModelSwitcher(switchModel),
			session.WithWrapWidth(settings.WrapWidth),
		)
		return chat.Run(cmd.Context(), cmd.InOrStdin())
	},
}

// chatSettings merges the settings file, the environment and the flags
func chatSettings(cmd *cobra.Command) (common.Settings, error) {
	settings := common.WithEnvironment(common.WithYamlFile())

	flags := cmd.Flags()
	if flags.Changed("provider") {
		settings.Provider, _ = flags.GetString("provider")
	}
	if flags.Changed("model") {
		settings.Model, _ = flags.GetString("model")
	}
	if flags.Changed("base-url") {
		settings.BaseURL, _ = flags.GetString("base-url")
	}
	if flags.Changed("log-file") {
		settings.LogFile, _ = flags.GetString("log-file")
	}
	if flags.Changed("marks") {
		settings.Marks, _ = flags.GetInt("marks")
	}
	if flags.Changed("max-retries") {
		settings.MaxRetries, _ = flags.GetInt("max-retries")
	}

	return settings, settings.Validate()
}

func init() {
	rootCmd.AddCommand(chatCmd)

	// LLM
	chatCmd.Flags().StringP("provider", "p", "huggingface", "LLM provider (huggingface, ollama, openai, anthropic, gemini)")
	chatCmd.Flags().StringP("model", "m", "", "LLM model name")
	chatCmd.Flags().String("base-url", "", "Override the provider endpoint, e.g. a remote Ollama host")
	// Answers
	chatCmd.Flags().Int("marks", 5, "Initial mark weight (2, 5 or 10)")
	chatCmd.Flags().Int("max-retries", answer.DefaultMaxRetries, "Regenerations of a malformed answer before falling back")
	chatCmd.Flags().String("log-file", common.DefaultLogFile, "Append-only JSONL request log")
}
