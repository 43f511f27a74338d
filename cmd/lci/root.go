package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/catalog"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/config"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/escalation"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/lci"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/rpc"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/service"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/store"
)

// options are the global flags shared by every subcommand. Empty values fall
// back to the LCI_* environment.
type options struct {
	dbPath      string
	catalogPath string
	asOf        string
	remote      string
	jsonOut     bool
	noLog       bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "lci",
		Short: "Litigation Control Index scoring CLI",
		Long: `lci scores a litigation case portfolio against the 7-layer metric catalog.

Scoring:
  portfolio        Score every case
  office NAME      Score one office
  attorney ID      Score one attorney's cases
  stage ID         Score one litigation stage
  escalations      Derive the escalation list
  case ID          Heuristic score of a single case

Data:
  offices          List offices in the snapshot
  import FILE      Load a JSON fixture into the case store
  catalog          Export or validate the metric catalog

Scores are computed from the live snapshot in --db, or by a running
lci-server when --remote is set.`,
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.dbPath, "db", "", "SQLite case store (default $LCI_DB or lci.db)")
	pf.StringVar(&opts.catalogPath, "catalog", "", "YAML metric catalog (default $LCI_CATALOG or built-in)")
	pf.StringVar(&opts.asOf, "as-of", "", "Reference date YYYY-MM-DD (default $LCI_AS_OF or today)")
	pf.StringVar(&opts.remote, "remote", "", "Score through an lci-server gRPC address instead of --db")
	pf.BoolVar(&opts.jsonOut, "json", false, "Print JSON instead of a table")
	pf.BoolVar(&opts.noLog, "no-log", false, "Do not record runs in the run log")

	root.AddCommand(
		newScoreCmd(opts, lci.GranularityPortfolio),
		newScoreCmd(opts, lci.GranularityOffice),
		newScoreCmd(opts, lci.GranularityAttorney),
		newScoreCmd(opts, lci.GranularityStage),
		newEscalationsCmd(opts),
		newCaseCmd(opts),
		newOfficesCmd(opts),
		newImportCmd(opts),
		newCatalogCmd(opts),
	)
	return root
}

// #region config
// resolve merges flags over the environment.
func (o *options) resolve() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if o.dbPath != "" {
		cfg.DBPath = o.dbPath
	}
	if o.catalogPath != "" {
		cfg.CatalogPath = o.catalogPath
	}
	if o.asOf != "" {
		asOf, err := config.ParseAsOf(o.asOf)
		if err != nil {
			return config.Config{}, err
		}
		cfg.AsOf = asOf
	}
	return cfg, nil
}

// #endregion config

// #region backend
// backend is where scores come from: the local store or a remote server.
type backend interface {
	Score(ctx context.Context, g lci.Granularity, id string) (lci.Result, error)
	Escalations(ctx context.Context) ([]escalation.Item, error)
	ScoreCase(ctx context.Context, id string) (service.CaseScore, error)
	Offices(ctx context.Context) ([]string, error)
	Close() error
}

func (o *options) open() (backend, error) {
	cfg, err := o.resolve()
	if err != nil {
		return nil, err
	}
	if o.remote != "" {
		client, err := rpc.NewScoringClient(o.remote)
		if err != nil {
			return nil, err
		}
		return remoteBackend{client}, nil
	}

	cat, err := catalog.LoadOrDefault(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	engine, err := lci.NewEngine(cat, cfg.AsOf)
	if err != nil {
		return nil, err
	}
	st, err := store.NewStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", cfg.DBPath, err)
	}
	esc := escalation.DefaultConfig()
	esc.Cap = cfg.EscalationCap
	esc.Seed = cfg.EscalationSeed
	svc := service.New(st, engine, esc)
	svc.Log = slog.New(slog.NewTextHandler(io.Discard, nil))
	if !o.noLog {
		svc.RunLog = st.DB()
	}
	return localBackend{svc: svc, st: st}, nil
}

type localBackend struct {
	svc *service.Service
	st  *store.Store
}

func (b localBackend) Score(_ context.Context, g lci.Granularity, id string) (lci.Result, error) {
	return b.svc.Score(g, id)
}

func (b localBackend) Escalations(context.Context) ([]escalation.Item, error) {
	return b.svc.Escalations()
}

func (b localBackend) ScoreCase(_ context.Context, id string) (service.CaseScore, error) {
	return b.svc.ScoreCase(id)
}

func (b localBackend) Offices(context.Context) ([]string, error) {
	return b.svc.Offices()
}

func (b localBackend) Close() error {
	return b.st.Close()
}

type remoteBackend struct {
	client *rpc.ScoringClient
}

func (b remoteBackend) Score(ctx context.Context, g lci.Granularity, id string) (lci.Result, error) {
	reply, err := b.client.ComputeLCI(ctx, g, id)
	return reply.Result, err
}

func (b remoteBackend) Escalations(ctx context.Context) ([]escalation.Item, error) {
	return b.client.DeriveEscalations(ctx)
}

func (b remoteBackend) ScoreCase(ctx context.Context, id string) (service.CaseScore, error) {
	return b.client.ScoreCase(ctx, id)
}

func (b remoteBackend) Offices(ctx context.Context) ([]string, error) {
	return b.client.ListOffices(ctx)
}

func (b remoteBackend) Close() error {
	return b.client.Close()
}

// withBackend opens a backend for the duration of fn.
func (o *options) withBackend(cmd *cobra.Command, fn func(ctx context.Context, b backend) error) error {
	b, err := o.open()
	if err != nil {
		return err
	}
	defer b.Close()
	return fn(cmd.Context(), b)
}

// #endregion backend
