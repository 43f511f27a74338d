package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/lci"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/logging"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/store"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to lci.db")
	last := flag.Int("last", 20, "show N most recent runs")
	runID := flag.String("run", "", "show single run detail")
	granularity := flag.String("granularity", "", "filter to one granularity (portfolio, office, attorney, stage)")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/lci.db [--last N] [--run id] [--granularity g] [--json]")
		os.Exit(2)
	}

	st, err := store.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	if *runID != "" {
		err = runDetailMode(os.Stdout, st, *runID, *jsonOut)
	} else {
		err = runListMode(os.Stdout, st, *last, lci.Granularity(*granularity), *jsonOut)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region list-mode

type listRow struct {
	RunID       string  `json:"run_id"`
	Granularity string  `json:"granularity"`
	Scope       string  `json:"scope,omitempty"`
	AsOf        string  `json:"as_of"`
	Records     int     `json:"record_count"`
	Score       float64 `json:"composite_score"`
	Band        string  `json:"composite_band"`
	Escalations int     `json:"escalation_count"`
	CreatedAt   string  `json:"created_at"`
}

func runListMode(w io.Writer, st *store.Store, last int, g lci.Granularity, jsonOut bool) error {
	runs, err := logging.ListRuns(st.DB(), last)
	if err != nil {
		return err
	}

	// ListRuns returns newest first; print chronologically.
	rows := make([]listRow, 0, len(runs))
	for i := len(runs) - 1; i >= 0; i-- {
		r := runs[i]
		if g != "" && r.Granularity != g {
			continue
		}
		rows = append(rows, listRow{
			RunID:       r.RunID,
			Granularity: string(r.Granularity),
			Scope:       r.Scope,
			AsOf:        r.AsOf.Format("2006-01-02"),
			Records:     r.RecordCount,
			Score:       r.CompositeScore,
			Band:        string(r.CompositeBand),
			Escalations: r.EscalationCount,
			CreatedAt:   r.CreatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}
	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "no runs found")
		return nil
	}

	if jsonOut {
		return printJSON(w, rows)
	}
	return printListTable(w, rows)
}

func printListTable(w io.Writer, rows []listRow) error {
	fmt.Fprintf(w, "%-8s  %-10s  %-16s  %-10s  %7s  %6s  %-5s  %4s  %s\n",
		"Run", "Scope", "Id", "As Of", "Records", "Score", "Band", "Esc", "Time")
	fmt.Fprintf(w, "%-8s+-%-10s+-%-16s+-%-10s+-%7s+-%6s+-%-5s+-%4s+-%s\n",
		"--------", "----------", "----------------", "----------", "-------", "------", "-----", "----", "--------------------")
	for _, r := range rows {
		fmt.Fprintf(w, "%-8s  %-10s  %-16s  %-10s  %7d  %6.1f  %-5s  %4d  %s\n",
			shortID(r.RunID), r.Granularity, truncate(r.Scope, 16), r.AsOf, r.Records, r.Score, r.Band, r.Escalations, r.CreatedAt)
	}
	return nil
}

// #endregion list-mode

// #region detail-mode

type detailOutput struct {
	listRow
	Seed   string                 `json:"seed"`
	Layers []logging.LayerSummary `json:"layers"`
}

func runDetailMode(w io.Writer, st *store.Store, runID string, jsonOut bool) error {
	r, err := logging.GetRun(st.DB(), runID)
	if err != nil {
		return err
	}
	out := detailOutput{
		listRow: listRow{
			RunID:       r.RunID,
			Granularity: string(r.Granularity),
			Scope:       r.Scope,
			AsOf:        r.AsOf.Format("2006-01-02"),
			Records:     r.RecordCount,
			Score:       r.CompositeScore,
			Band:        string(r.CompositeBand),
			Escalations: r.EscalationCount,
			CreatedAt:   r.CreatedAt.Format("2006-01-02T15:04:05Z"),
		},
		Seed: r.Seed,
	}
	if r.DetailJSON != "" {
		if err := json.Unmarshal([]byte(r.DetailJSON), &out.Layers); err != nil {
			return fmt.Errorf("parse detail: %w", err)
		}
	}

	if jsonOut {
		return printJSON(w, out)
	}

	fmt.Fprintf(w, "Run:          %s\n", out.RunID)
	fmt.Fprintf(w, "Granularity:  %s %s\n", out.Granularity, out.Scope)
	fmt.Fprintf(w, "Seed:         %s\n", out.Seed)
	fmt.Fprintf(w, "As of:        %s\n", out.AsOf)
	fmt.Fprintf(w, "Records:      %d\n", out.Records)
	fmt.Fprintf(w, "Composite:    %.1f (%s)\n", out.Score, out.Band)
	fmt.Fprintf(w, "Escalations:  %d\n", out.Escalations)
	fmt.Fprintf(w, "Created:      %s\n", out.CreatedAt)
	if len(out.Layers) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  %-28s  %6s  %s\n", "Layer", "Score", "Band")
		for _, l := range out.Layers {
			fmt.Fprintf(w, "  %-28s  %6.1f  %s\n", l.Name, l.Score, l.Band)
		}
	}
	return nil
}

// #endregion detail-mode

// #region helpers

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "~"
}

// #endregion helpers
