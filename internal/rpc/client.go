package rpc

import (
	"context"
	"fmt"

	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/escalation"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/lci"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/service"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"
)

// #region client-struct
// ScoringClient wraps the gRPC connection to a scoring server.
type ScoringClient struct {
	conn   *grpc.ClientConn
	client ScoringServiceClient
}

// #endregion client-struct

// #region constructor
// NewScoringClient connects to the scoring gRPC server at addr.
func NewScoringClient(addr string, opts ...grpc.DialOption) (*ScoringClient, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", addr, err)
	}
	return &ScoringClient{
		conn:   conn,
		client: NewScoringServiceClient(conn),
	}, nil
}

// NewScoringClientWithService creates a ScoringClient with an injected service
// implementation, for tests that need no connection.
func NewScoringClientWithService(svc ScoringServiceClient) *ScoringClient {
	return &ScoringClient{client: svc}
}

// #endregion constructor

// #region close
// Close shuts down the gRPC connection, if there is one.
func (c *ScoringClient) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// #endregion close

// #region compute
// ComputeLCI scores one granularity on the server. id is ignored for the
// portfolio.
func (c *ScoringClient) ComputeLCI(ctx context.Context, g lci.Granularity, id string) (ScoreReply, error) {
	in, err := toStruct(scoreRequest{Granularity: g, ID: id})
	if err != nil {
		return ScoreReply{}, err
	}
	resp, err := c.client.ComputeLCI(ctx, in)
	if err != nil {
		return ScoreReply{}, fmt.Errorf("compute lci rpc: %w", err)
	}
	var out ScoreReply
	if err := fromStruct(resp, &out); err != nil {
		return ScoreReply{}, err
	}
	return out, nil
}

// #endregion compute

// #region escalations
// DeriveEscalations fetches the portfolio escalation list.
func (c *ScoringClient) DeriveEscalations(ctx context.Context) ([]escalation.Item, error) {
	resp, err := c.client.DeriveEscalations(ctx, &structpb.Struct{})
	if err != nil {
		return nil, fmt.Errorf("derive escalations rpc: %w", err)
	}
	var out EscalationsReply
	if err := fromStruct(resp, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// #endregion escalations

// #region score-case
// ScoreCase fetches the heuristic score of one case.
func (c *ScoringClient) ScoreCase(ctx context.Context, caseID string) (service.CaseScore, error) {
	in, err := toStruct(caseRequest{CaseID: caseID})
	if err != nil {
		return service.CaseScore{}, err
	}
	resp, err := c.client.ScoreCase(ctx, in)
	if err != nil {
		return service.CaseScore{}, fmt.Errorf("score case rpc: %w", err)
	}
	var out service.CaseScore
	if err := fromStruct(resp, &out); err != nil {
		return service.CaseScore{}, err
	}
	return out, nil
}

// #endregion score-case

// #region list-offices
// ListOffices fetches the distinct offices in the server's snapshot.
func (c *ScoringClient) ListOffices(ctx context.Context) ([]string, error) {
	resp, err := c.client.ListOffices(ctx, &structpb.Struct{})
	if err != nil {
		return nil, fmt.Errorf("list offices rpc: %w", err)
	}
	var out OfficesReply
	if err := fromStruct(resp, &out); err != nil {
		return nil, err
	}
	return out.Offices, nil
}

// #endregion list-offices
