package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/vitalwatch/internal/output"
	"github.com/blackwell-systems/vitalwatch/internal/retrieval"
)

var factsLimit int

var factsCmd = &cobra.Command{
	Use:   "facts [query]",
	Short: "Inspect the knowledge base built from your exports",
	Long: `Build the fact knowledge base from the export data and print it.
With a query argument, facts are scored and ranked by relevance so you can
see exactly what evidence a question would retrieve.

Examples:
  vitalwatch facts                     # list the newest facts
  vitalwatch facts "sleep debt"        # rank facts against a query
  vitalwatch facts --limit 30          # show more of the list`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFacts,
}

func init() {
	factsCmd.Flags().IntVar(&factsLimit, "limit", 20, "Maximum facts to display")
	rootCmd.AddCommand(factsCmd)
}

func runFacts(cmd *cobra.Command, args []string) error {
	data, err := loadData()
	if err != nil {
		return err
	}
	facts := data.buildFacts()

	if len(args) == 1 {
		return showScoredFacts(args[0], data)
	}

	if factsLimit > 0 && len(facts) > factsLimit {
		facts = facts[:factsLimit]
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(facts)
	}

	fmt.Println(output.Section("Knowledge Base"))
	fmt.Println()
	for _, f := range facts {
		fmt.Printf(" %s %s\n",
			output.StyleMuted.Render(fmt.Sprintf("%-22s", f.Source)),
			f.Content)
	}
	fmt.Printf("\n %s\n", output.StyleMuted.Render(fmt.Sprintf("showing %d of %d facts", len(facts), len(data.buildFacts()))))
	return nil
}

// showScoredFacts ranks the knowledge base against the query and prints the
// top results with their scores.
func showScoredFacts(query string, data *sessionData) error {
	limit := factsLimit
	if limit <= 0 {
		limit = retrieval.DefaultMaxResults
	}
	scored := retrieval.RetrieveScored(query, data.buildFacts(), limit)

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(scored)
	}

	fmt.Println(output.Section(fmt.Sprintf("Retrieval: %q", query)))
	fmt.Println()
	if len(scored) == 0 {
		fmt.Println(" No facts matched.")
		return nil
	}
	for _, s := range scored {
		fmt.Printf(" %s %s\n",
			output.StyleBold.Render(fmt.Sprintf("%5.1f", s.Score)),
			s.Fact.Content)
	}
	return nil
}
