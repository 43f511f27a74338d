package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name. Every message on the
// wire is a google.protobuf.Struct, so the service needs no generated code.
const ServiceName = "lci.v1.ScoringService"

const (
	methodComputeLCI        = "/" + ServiceName + "/ComputeLCI"
	methodDeriveEscalations = "/" + ServiceName + "/DeriveEscalations"
	methodScoreCase         = "/" + ServiceName + "/ScoreCase"
	methodListOffices       = "/" + ServiceName + "/ListOffices"
)

// #region client-interface
// ScoringServiceClient is the client API for the scoring service.
type ScoringServiceClient interface {
	ComputeLCI(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	DeriveEscalations(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ScoreCase(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListOffices(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type scoringServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewScoringServiceClient(cc grpc.ClientConnInterface) ScoringServiceClient {
	return &scoringServiceClient{cc}
}

func (c *scoringServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *scoringServiceClient) ComputeLCI(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, methodComputeLCI, in, opts...)
}

func (c *scoringServiceClient) DeriveEscalations(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, methodDeriveEscalations, in, opts...)
}

func (c *scoringServiceClient) ScoreCase(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, methodScoreCase, in, opts...)
}

func (c *scoringServiceClient) ListOffices(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, methodListOffices, in, opts...)
}

// #endregion client-interface

// #region server-interface
// ScoringServiceServer is the server API for the scoring service.
type ScoringServiceServer interface {
	ComputeLCI(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeriveEscalations(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ScoreCase(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListOffices(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterScoringServiceServer attaches srv to a gRPC server.
func RegisterScoringServiceServer(s grpc.ServiceRegistrar, srv ScoringServiceServer) {
	s.RegisterService(&ScoringServiceDesc, srv)
}

type unaryMethod func(ScoringServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func handler(fullMethod string, call unaryMethod) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ScoringServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
			return call(srv.(ScoringServiceServer), ctx, req.(*structpb.Struct))
		})
	}
}

// ScoringServiceDesc describes the service to grpc.Server.
var ScoringServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ScoringServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ComputeLCI", Handler: handler(methodComputeLCI, ScoringServiceServer.ComputeLCI)},
		{MethodName: "DeriveEscalations", Handler: handler(methodDeriveEscalations, ScoringServiceServer.DeriveEscalations)},
		{MethodName: "ScoreCase", Handler: handler(methodScoreCase, ScoringServiceServer.ScoreCase)},
		{MethodName: "ListOffices", Handler: handler(methodListOffices, ScoringServiceServer.ListOffices)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "lci/v1/scoring.proto",
}

// #endregion server-interface
