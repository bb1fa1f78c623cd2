package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/deptree/pkg/deptree"
	"github.com/matzehuels/deptree/pkg/manifest"
)

// statsOpts holds the command-line flags for the stats command.
type statsOpts struct {
	top int // number of rows per ranking table
}

// newStatsCmd creates the stats command showing tree-wide rankings.
func newStatsCmd() *cobra.Command {
	opts := statsOpts{top: 10}

	cmd := &cobra.Command{
		Use:   "stats <manifest>",
		Short: "Show dependency and dependent rankings for a validated tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, args[0], &opts)
		},
	}

	cmd.Flags().IntVarP(&opts.top, "top", "n", opts.top, "rows per ranking table")

	return cmd
}

func runStats(cmd *cobra.Command, path string, opts *statsOpts) error {
	logger := loggerFromContext(cmd.Context())

	b, err := manifest.Load(path)
	if err != nil {
		return err
	}
	tree, err := b.Build()
	if err != nil {
		return err
	}
	logger.Debug("tree validated", "keys", tree.Len(), "edges", tree.EdgeCount())

	fmt.Println(StyleTitle.Render("Transitive dependencies"))
	printRankingTable(tree.MostDependencies(), opts.top)

	fmt.Println(StyleTitle.Render("Direct dependents"))
	printRankingTable(tree.MostDependents(), opts.top)

	printStats(tree.Len(), tree.EdgeCount(), false)
	return nil
}

// printRankingTable renders the top n rankings as a bordered table.
func printRankingTable(rankings []deptree.Ranking[string], n int) {
	if len(rankings) > n {
		rankings = rankings[:n]
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("KEY", "COUNT")
	for _, r := range rankings {
		t.Row(r.Key, strconv.Itoa(r.Count))
	}
	fmt.Println(t.Render())
}
