package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/vitalwatch/internal/assistant"
	"github.com/blackwell-systems/vitalwatch/internal/output"
	"github.com/blackwell-systems/vitalwatch/internal/retrieval"
)

var (
	askShowEvidence bool
	askProvider     string
	askModel        string
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a question about your health data",
	Long: `Answer a natural-language question grounded in your export data.
Relevant facts are retrieved from the knowledge base and handed to the
configured LLM provider; the answer is constrained to that evidence, and
questions with no matching data are declined rather than guessed at.

Requires ANTHROPIC_API_KEY (or OPENAI_API_KEY with --provider openai),
read from the environment or a .env file.

Examples:
  vitalwatch ask "how did I sleep last night?"
  vitalwatch ask "am I carrying sleep debt?" --evidence
  vitalwatch ask "how is my recovery trending?" --provider openai`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askShowEvidence, "evidence", false, "Print the retrieved evidence before the answer")
	askCmd.Flags().StringVar(&askProvider, "provider", "", "LLM provider: anthropic or openai (default from config)")
	askCmd.Flags().StringVar(&askModel, "model", "", "Model name (default from config)")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")

	data, err := loadData()
	if err != nil {
		return err
	}

	summary := retrieval.Summarize(question, data.buildFacts())

	if askShowEvidence && len(summary.Evidence) > 0 {
		fmt.Println(output.Section("Evidence"))
		fmt.Println()
		fmt.Println(summary.Text)
		fmt.Printf(" %s\n\n", output.StyleMuted.Render("sources: "+strings.Join(summary.Sources, ", ")))
	}

	// No provider needed to decline: skip key resolution entirely.
	if len(summary.Evidence) == 0 {
		answer, _ := assistant.Ask(cmd.Context(), nil, question, summary)
		fmt.Println(answer)
		return nil
	}

	opts := assistant.Options{
		Provider:  data.cfg.Assistant.Provider,
		Model:     data.cfg.Assistant.Model,
		MaxTokens: data.cfg.Assistant.MaxTokens,
	}
	if askProvider != "" {
		opts.Provider = askProvider
	}
	if askModel != "" {
		opts.Model = askModel
	}

	provider, err := assistant.NewProvider(opts)
	if err != nil {
		return err
	}

	if flagVerbose {
		fmt.Fprintln(cmd.ErrOrStderr(), output.StyleMuted.Render(
			fmt.Sprintf("asking %s with %d evidence facts", provider.Name(), len(summary.Evidence))))
	}

	answer, err := assistant.Ask(cmd.Context(), provider, question, summary)
	if err != nil {
		return err
	}

	fmt.Println(answer)
	return nil
}
