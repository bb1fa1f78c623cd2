package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/deptree/pkg/deptree"
	"github.com/matzehuels/deptree/pkg/manifest"
)

// newCheckCmd creates the check command for validating a manifest.
// It loads the declared relations, runs cycle detection, and reports either
// a summary of the validated tree or the offending cycle path.
func newCheckCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "check <manifest>",
		Short: "Validate the dependency relations in a manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args[0], quiet)
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress the summary, exit status only")

	return cmd
}

func runCheck(cmd *cobra.Command, path string, quiet bool) error {
	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)

	b, err := manifest.Load(path)
	if err != nil {
		return err
	}
	declared := b.Len()
	logger.Debug("manifest loaded", "path", path, "keys", declared)

	tree, err := b.Build()
	if err != nil {
		var cerr *deptree.CycleError[string]
		if errors.As(err, &cerr) {
			if !quiet {
				printError("%s is not a valid dependency tree", path)
				printDetail("cycle: %s", renderCyclePath(cerr.Path))
			}
			return err
		}
		return err
	}
	prog.done(fmt.Sprintf("Validated %d relations", declared))

	if quiet {
		return nil
	}

	printSuccess("%s is a valid dependency tree", path)
	printStats(tree.Len(), tree.EdgeCount(), false)
	printDetail("roots: %s", joinOrNone(tree.Roots()))
	printDetail("leaves: %s", joinOrNone(tree.Leaves()))
	return nil
}

// renderCyclePath formats a cycle path for terminal display.
func renderCyclePath(path []string) string {
	if len(path) == 1 {
		return StyleError.Render(path[0] + " → " + path[0])
	}
	return StyleError.Render(strings.Join(path, " → "))
}

func joinOrNone(keys []string) string {
	if len(keys) == 0 {
		return "(none)"
	}
	return strings.Join(keys, ", ")
}
