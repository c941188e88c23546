package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/diogo/advicedice/internal/fetcher"
	"github.com/diogo/advicedice/internal/render"
)

// rollOptions controls how a single roll is printed
type rollOptions struct {
	raw  bool
	copy bool
}

// NewRollCmd creates the roll command
func NewRollCmd(deps *Dependencies) *cobra.Command {
	var opts rollOptions

	cmd := &cobra.Command{
		Use:   "roll",
		Short: "Print one piece of advice",
		Long: `Fetch one piece of advice and print it.

A failed roll prints nothing; the failure is written to the diagnostic log.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoll(cmd, deps, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.raw, "raw", false, "Print the id and advice on two plain lines")
	cmd.Flags().BoolVarP(&opts.copy, "copy", "c", false, "Copy the advice to the clipboard")

	return cmd
}

// runRoll performs one activation against in-memory regions and prints them
func runRoll(cmd *cobra.Command, deps *Dependencies, opts rollOptions) error {
	client, release, err := deps.client(appConfig, logger)
	if err != nil {
		return err
	}
	defer release()

	idRegion := fetcher.NewTextRegion("")
	adviceRegion := fetcher.NewTextRegion("")
	f := fetcher.New(client, idRegion, adviceRegion, fetcher.WithLogger(logger))

	decorated := !opts.raw && deps.isTTY()

	var spin *spinner
	if decorated {
		spin = newSpinner(cmd.ErrOrStderr(), "Rolling the dice")
		spin.start()
	}

	ok := f.Fetch()
	if spin != nil {
		spin.finish()
	}
	if !ok {
		// Already logged by the fetcher.
		return nil
	}

	id, advice := idRegion.Text(), adviceRegion.Text()
	out := cmd.OutOrStdout()

	if decorated {
		renderOpts := render.OptionsFromConfig(appConfig)
		if appConfig.Markdown.Width == 0 {
			renderOpts = renderOpts.WithWidth(cardWidth(getTerminalWidth()))
		}
		card, err := render.Card(id, advice, renderOpts)
		if err != nil {
			logger.Sugar().Debugw("card rendering failed, printing plain text", "error", err)
			fmt.Fprintf(out, "%s\n%s\n", id, advice)
		} else {
			fmt.Fprint(out, card)
		}
	} else {
		fmt.Fprintf(out, "%s\n%s\n", id, advice)
	}

	if opts.copy || appConfig.CopyToClipboard {
		copyAdvice(cmd, deps, advice)
	}

	return nil
}

// copyAdvice copies the advice text and reports the outcome on stderr
func copyAdvice(cmd *cobra.Command, deps *Dependencies, advice string) {
	errOut := cmd.ErrOrStderr()
	if err := deps.copy(strings.TrimSpace(advice)); err != nil {
		// Log warning but don't fail
		warnMsg := lipgloss.NewStyle().Foreground(colorWarning).Render(
			fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err),
		)
		fmt.Fprintln(errOut, warnMsg)
		return
	}
	clipMsg := lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ Copied to clipboard")
	fmt.Fprintln(errOut, clipMsg)
}
