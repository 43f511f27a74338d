package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/escalation"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/lci"
)

var scoreUsage = map[lci.Granularity]struct{ use, short string }{
	lci.GranularityPortfolio: {"portfolio", "Score the whole portfolio"},
	lci.GranularityOffice:    {"office NAME", "Score one office"},
	lci.GranularityAttorney:  {"attorney ID", "Score the cases of one attorney (directory id)"},
	lci.GranularityStage:     {"stage ID", "Score the cases currently in one stage"},
}

func newScoreCmd(opts *options, g lci.Granularity) *cobra.Command {
	u := scoreUsage[g]
	nargs := cobra.ExactArgs(1)
	if g == lci.GranularityPortfolio {
		nargs = cobra.NoArgs
	}
	return &cobra.Command{
		Use:   u.use,
		Short: u.short,
		Args:  nargs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			return opts.withBackend(cmd, func(ctx context.Context, b backend) error {
				res, err := b.Score(ctx, g, id)
				if err != nil {
					return err
				}
				if opts.jsonOut {
					return printJSON(cmd.OutOrStdout(), res)
				}
				return printResult(cmd.OutOrStdout(), g, id, res)
			})
		},
	}
}

func newEscalationsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "escalations",
		Short: "Derive the portfolio escalation list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withBackend(cmd, func(ctx context.Context, b backend) error {
				items, err := b.Escalations(ctx)
				if err != nil {
					return err
				}
				if items == nil {
					items = []escalation.Item{}
				}
				if opts.jsonOut {
					return printJSON(cmd.OutOrStdout(), items)
				}
				return printEscalations(cmd.OutOrStdout(), items)
			})
		},
	}
}

func newCaseCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "case ID",
		Short: "Heuristic score of a single case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withBackend(cmd, func(ctx context.Context, b backend) error {
				cs, err := b.ScoreCase(ctx, args[0])
				if err != nil {
					return err
				}
				if opts.jsonOut {
					return printJSON(cmd.OutOrStdout(), cs)
				}
				note := ""
				if !cs.Found {
					note = " (not found, neutral score)"
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d%s\n", cs.CaseID, cs.Score, note)
				return err
			})
		},
	}
}

func newOfficesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "offices",
		Short: "List the offices in the case snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withBackend(cmd, func(ctx context.Context, b backend) error {
				offices, err := b.Offices(ctx)
				if err != nil {
					return err
				}
				if offices == nil {
					offices = []string{}
				}
				if opts.jsonOut {
					return printJSON(cmd.OutOrStdout(), offices)
				}
				if len(offices) > 0 {
					fmt.Fprintln(cmd.OutOrStdout(), strings.Join(offices, "\n"))
				}
				return nil
			})
		},
	}
}
