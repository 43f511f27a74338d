package service

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/casescore"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/catalog"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/escalation"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/lci"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/logging"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/observability"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/records"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/store"
)

// #region source
// Source supplies the live case snapshot and attorney directory.
// *store.Store satisfies it.
type Source interface {
	Snapshot() ([]records.Record, []records.Attorney, error)
}

// CaseGetter is implemented by sources that can read one case without a full
// snapshot. A missing id must wrap store.ErrNotFound.
type CaseGetter interface {
	GetCase(id string) (records.Record, error)
}

// StaticSource serves a fixed in-memory snapshot.
type StaticSource struct {
	Cases     []records.Record
	Attorneys []records.Attorney
}

func (s StaticSource) Snapshot() ([]records.Record, []records.Attorney, error) {
	return s.Cases, s.Attorneys, nil
}

// #endregion source

// #region service
// Service binds a snapshot source to the engine and records every run in the
// audit log. RunLog and Metrics are optional.
type Service struct {
	Source  Source
	Engine  *lci.Engine
	Deriver *escalation.Deriver
	Scorer  *casescore.Scorer
	RunLog  *sql.DB
	Metrics *observability.Metrics
	Log     *slog.Logger
}

// New builds a service around engine with the default case scorer and an
// escalation deriver configured by esc.
func New(src Source, engine *lci.Engine, esc escalation.Config) *Service {
	return &Service{
		Source:  src,
		Engine:  engine,
		Deriver: escalation.NewDeriver(esc),
		Scorer:  casescore.NewScorer(casescore.DefaultConfig(), engine.AsOf()),
		Log:     slog.Default(),
	}
}

// CaseScore is the heuristic score of one case.
type CaseScore struct {
	CaseID string `json:"case_id"`
	Score  int    `json:"score"`
	Found  bool   `json:"found"`
}

// #endregion service

// #region operations
// Score computes the LCI for one granularity. id is ignored for the portfolio.
func (s *Service) Score(g lci.Granularity, id string) (lci.Result, error) {
	rs, dir, err := s.snapshot()
	if err != nil {
		return lci.Result{}, err
	}
	start := time.Now()
	res, err := s.Engine.ComputeScope(g, id, rs, dir)
	if err != nil {
		return lci.Result{}, err
	}
	if g == "" || g == lci.GranularityPortfolio {
		g, id = lci.GranularityPortfolio, ""
	}
	s.record(g, id, res, 0, time.Since(start))
	return res, nil
}

// AllOffices scores every office in the snapshot concurrently.
func (s *Service) AllOffices() ([]lci.OfficeResult, error) {
	rs, _, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	start := time.Now()
	out := s.Engine.ComputeAllOffices(rs)
	took := time.Since(start)
	for _, o := range out {
		s.record(lci.GranularityOffice, o.Office, o.Result, 0, took)
	}
	return out, nil
}

// Escalations derives the escalation list from the portfolio result.
func (s *Service) Escalations() ([]escalation.Item, error) {
	rs, dir, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	start := time.Now()
	res := s.Engine.ComputePortfolio(rs)
	items := s.Deriver.Derive(res, rs, dir)
	s.record(lci.GranularityPortfolio, "", res, len(items), time.Since(start))

	byLevel := make(map[string]int)
	for level, n := range escalation.CountByLevel(items) {
		byLevel[string(level)] = n
	}
	s.Metrics.Escalated(byLevel)
	return items, nil
}

// ScoreCase returns the heuristic score of caseID. Unknown ids score the
// neutral value with Found false.
func (s *Service) ScoreCase(caseID string) (CaseScore, error) {
	if cg, ok := s.Source.(CaseGetter); ok {
		r, err := cg.GetCase(caseID)
		switch {
		case errors.Is(err, store.ErrNotFound):
			return CaseScore{CaseID: caseID, Score: s.Scorer.ScoreByID(nil, caseID)}, nil
		case err != nil:
			return CaseScore{}, fmt.Errorf("get case: %w", err)
		}
		return CaseScore{CaseID: caseID, Score: s.Scorer.Score(r), Found: true}, nil
	}

	rs, _, err := s.snapshot()
	if err != nil {
		return CaseScore{}, err
	}
	_, found := records.FindByID(rs, caseID)
	return CaseScore{CaseID: caseID, Score: s.Scorer.ScoreByID(rs, caseID), Found: found}, nil
}

// Offices lists the distinct offices in the snapshot.
func (s *Service) Offices() ([]string, error) {
	rs, _, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return records.ListOffices(rs), nil
}

// Catalog returns the engine's metric catalog.
func (s *Service) Catalog() catalog.Catalog {
	return s.Engine.Catalog()
}

// #endregion operations

// #region helpers
func (s *Service) snapshot() ([]records.Record, []records.Attorney, error) {
	rs, dir, err := s.Source.Snapshot()
	if err != nil {
		return nil, nil, fmt.Errorf("snapshot: %w", err)
	}
	return rs, dir, nil
}

func (s *Service) record(g lci.Granularity, scope string, res lci.Result, escalations int, took time.Duration) {
	// Scopes with no records share one series.
	label := scope
	if scope != "" && res.RecordCount == 0 {
		label = observability.UnknownScope
	}
	s.Metrics.Computed(string(g), label, res.Score, took)
	if s.RunLog == nil {
		return
	}
	entry, err := logging.NewRunEntry(g, scope, s.Engine.AsOf(), res, escalations)
	if err == nil {
		_, err = logging.LogRun(s.RunLog, entry)
	}
	if err != nil {
		s.logger().Warn("run log write failed", "granularity", g, "scope", scope, "err", err)
	}
}

func (s *Service) logger() *slog.Logger {
	if s.Log == nil {
		return slog.Default()
	}
	return s.Log
}

// #endregion helpers
