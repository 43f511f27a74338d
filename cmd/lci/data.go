package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/catalog"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/records"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/store"
	"gopkg.in/yaml.v3"
)

func newImportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Load a JSON fixture of cases and attorneys into the store",
		Long: `Load a JSON fixture into the SQLite case store. Existing cases and
attorneys with the same id are replaced.

Fixture shape:
  {"cases": [{"id": "...", "stage": "discovery", ...}],
   "attorneys": [{"id": "att-1", "name": "...", "office": "..."}]}`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve()
			if err != nil {
				return err
			}
			f, err := records.LoadFixture(args[0])
			if err != nil {
				return err
			}
			st, err := store.NewStore(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open store %s: %w", cfg.DBPath, err)
			}
			defer st.Close()
			if err := st.ImportFixture(f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d cases, %d attorneys into %s\n", len(f.Cases), len(f.Attorneys), cfg.DBPath)
			return nil
		},
	}
}

func newCatalogCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the metric catalog as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve()
			if err != nil {
				return err
			}
			c, err := catalog.LoadOrDefault(cfg.CatalogPath)
			if err != nil {
				return err
			}
			if opts.jsonOut {
				return printJSON(cmd.OutOrStdout(), c)
			}
			data, err := catalog.Marshal(c)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "validate [FILE]",
		Short: "Validate a YAML catalog (default: --catalog or the built-in one)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve()
			if err != nil {
				return err
			}
			path := cfg.CatalogPath
			if len(args) == 1 {
				path = args[0]
			}
			c, err := catalog.LoadOrDefault(path)
			if err != nil {
				return err
			}
			source := path
			if source == "" {
				source = "built-in catalog"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d layers, %d metrics)\n", source, len(c.Layers), c.MetricCount())
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show ID",
		Short: "Print one layer (numeric id) or metric definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve()
			if err != nil {
				return err
			}
			c, err := catalog.LoadOrDefault(cfg.CatalogPath)
			if err != nil {
				return err
			}
			var def any
			if id, convErr := strconv.Atoi(args[0]); convErr == nil {
				l, ok := c.Layer(id)
				if !ok {
					return fmt.Errorf("no layer %d in catalog", id)
				}
				def = l
			} else {
				m, ok := c.Metric(args[0])
				if !ok {
					return fmt.Errorf("no metric %q in catalog", args[0])
				}
				def = m
			}
			if opts.jsonOut {
				return printJSON(cmd.OutOrStdout(), def)
			}
			data, err := yaml.Marshal(def)
			if err != nil {
				return fmt.Errorf("marshal definition: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	})
	return cmd
}
