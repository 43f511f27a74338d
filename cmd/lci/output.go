package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/escalation"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/lci"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printResult writes the composite line followed by a layer/metric table.
func printResult(w io.Writer, g lci.Granularity, id string, res lci.Result) error {
	scope := string(g)
	if id != "" {
		scope += " " + id
	}
	fmt.Fprintf(w, "LCI %s: %.1f (%s), %d records\n\n", scope, res.Score, res.Band, res.RecordCount)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LAYER\tMETRIC\tVALUE\tTARGET\tBAND\tSCORE")
	for _, l := range res.Layers {
		fmt.Fprintf(tw, "%s (%.0f%%)\t\t\t\t%s\t%.1f\n", l.Name, l.Weight*100, l.Band, l.Score)
		for _, m := range l.Metrics {
			fmt.Fprintf(tw, "\t%s\t%.1f %s\t%.1f\t%s\t%.1f\n", m.Name, m.Value, m.Unit, m.Target, m.Band, m.Score)
		}
	}
	return tw.Flush()
}

func printEscalations(w io.Writer, items []escalation.Item) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "no escalations")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tLAYER\tMETRIC\tVALUE\tWEEKS\tLEVEL\tOWNER\tOFFICE")
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f %s\t%d\t%s\t%s\t%s\n",
			it.ID, it.LayerName, it.MetricName, it.Value, it.Unit, it.WeeksInRed, it.Level, it.Owner, it.Office)
	}
	return tw.Flush()
}
