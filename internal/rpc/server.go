package rpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/escalation"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/lci"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/service"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// #region server
// Server implements ScoringServiceServer on top of a scoring service.
type Server struct {
	svc *service.Service
	log *slog.Logger
}

// NewServer creates a gRPC scoring server.
func NewServer(svc *service.Service, log *slog.Logger) *Server {
	return &Server{svc: svc, log: log}
}

// NewGRPCServer builds a grpc.Server with request logging and the scoring
// service registered.
func NewGRPCServer(svc *service.Service, log *slog.Logger) *grpc.Server {
	gs := grpc.NewServer(grpc.UnaryInterceptor(LoggingInterceptor(log)))
	RegisterScoringServiceServer(gs, NewServer(svc, log))
	return gs
}

// #endregion server

// #region methods
func (s *Server) ComputeLCI(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req scoreRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if req.Granularity == "" {
		req.Granularity = lci.GranularityPortfolio
	}
	if req.Granularity != lci.GranularityPortfolio && req.ID == "" {
		return nil, status.Errorf(codes.InvalidArgument, "id is required for %s scope", req.Granularity)
	}

	res, err := s.svc.Score(req.Granularity, req.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	if req.Granularity == lci.GranularityPortfolio {
		req.ID = ""
	}
	return reply(ScoreReply{Granularity: req.Granularity, Scope: req.ID, AsOf: s.asOf(), Result: res})
}

func (s *Server) DeriveEscalations(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	items, err := s.svc.Escalations()
	if err != nil {
		return nil, toStatus(err)
	}
	if items == nil {
		items = []escalation.Item{}
	}
	return reply(EscalationsReply{AsOf: s.asOf(), Count: len(items), Items: items})
}

func (s *Server) ScoreCase(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req caseRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if req.CaseID == "" {
		return nil, status.Error(codes.InvalidArgument, "case_id is required")
	}
	cs, err := s.svc.ScoreCase(req.CaseID)
	if err != nil {
		return nil, toStatus(err)
	}
	return reply(cs)
}

func (s *Server) ListOffices(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	offices, err := s.svc.Offices()
	if err != nil {
		return nil, toStatus(err)
	}
	if offices == nil {
		offices = []string{}
	}
	return reply(OfficesReply{Offices: offices})
}

// #endregion methods

// #region interceptor
// LoggingInterceptor logs every unary call with its status code and duration.
func LoggingInterceptor(log *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := next(ctx, req)
		code := status.Code(err)
		if err != nil && code != codes.InvalidArgument {
			log.Error("rpc failed", "method", info.FullMethod, "code", code.String(), "duration", time.Since(start), "err", err)
		} else {
			log.Info("rpc", "method", info.FullMethod, "code", code.String(), "duration", time.Since(start))
		}
		return resp, err
	}
}

// #endregion interceptor

// #region helpers
func (s *Server) asOf() string {
	return s.svc.Engine.AsOf().Format(time.DateOnly)
}

func reply(v any) (*structpb.Struct, error) {
	st, err := toStruct(v)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return st, nil
}

func toStatus(err error) error {
	if errors.Is(err, lci.ErrUnknownGranularity) {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}

// #endregion helpers
