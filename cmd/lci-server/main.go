package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/api"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/catalog"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/config"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/escalation"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/lci"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/observability"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/records"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/rpc"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/service"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/store"
)

// #region main
func main() {
	fixture := flag.String("fixture", "", "JSON fixture to import into the store before serving")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize case store
	st, err := store.NewStore(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer st.Close()

	if *fixture != "" {
		f, err := records.LoadFixture(*fixture)
		if err != nil {
			log.Fatalf("failed to load fixture: %v", err)
		}
		if err := st.ImportFixture(f); err != nil {
			log.Fatalf("failed to import fixture: %v", err)
		}
		logger.Info("fixture imported", "path", *fixture, "cases", len(f.Cases), "attorneys", len(f.Attorneys))
	}

	cat, err := catalog.LoadOrDefault(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("failed to load catalog: %v", err)
	}
	engine, err := lci.NewEngine(cat, cfg.AsOf)
	if err != nil {
		log.Fatalf("failed to build engine: %v", err)
	}

	esc := escalation.DefaultConfig()
	esc.Cap = cfg.EscalationCap
	esc.Seed = cfg.EscalationSeed
	metrics := observability.NewMetrics()

	svc := service.New(st, engine, esc)
	svc.RunLog = st.DB()
	svc.Metrics = metrics
	svc.Log = logger

	logger.Info("config loaded",
		"db", cfg.DBPath, "http", cfg.HTTPAddr, "grpc", cfg.GRPCAddr,
		"catalog", cfg.CatalogPath, "asOf", cfg.AsOf.Format(time.DateOnly), "escalationCap", cfg.EscalationCap)

	// gRPC scoring service
	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		log.Fatalf("failed to listen on %s: %v", cfg.GRPCAddr, err)
	}
	gs := rpc.NewGRPCServer(svc, logger)
	go func() {
		logger.Info("grpc server starting", "addr", cfg.GRPCAddr)
		if err := gs.Serve(lis); err != nil {
			logger.Error("grpc server error", "err", err)
		}
	}()

	// HTTP JSON API
	h := &api.Handlers{Log: logger, Service: svc}
	srv := api.NewServer(cfg.HTTPAddr, logger, h, metrics, os.Stdout)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "err", err)
		}
	}()
	logger.Info("lci server started")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
	gs.GracefulStop()
	logger.Info("lci server stopped")
}

// #endregion main
