// Package opponentrpc is the wire contract between rps and opponent
// plugins. Messages travel as JSON over gRPC so no generated code is needed.
package opponentrpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey      = "opponent"
	serviceName       = "rps.opponent.v1.Opponent"
	jsonCodecName     = "json"
	methodGetMetadata = "/" + serviceName + "/GetMetadata"
	methodChoose      = "/" + serviceName + "/Choose"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "RPS_OPPONENT_PLUGIN",
	MagicCookieValue: "rps",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string                       { return jsonCodecName }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Metadata struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type ChooseRequest struct{}

type ChooseResponse struct {
	Choice string `json:"choice"`
}

type OpponentServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	Choose(ctx context.Context, in *ChooseRequest) (*ChooseResponse, error)
}

type OpponentClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	Choose(ctx context.Context, in *ChooseRequest) (*ChooseResponse, error)
}

type opponentClient struct {
	conn grpc.ClientConnInterface
}

func NewOpponentClient(conn grpc.ClientConnInterface) OpponentClient {
	return &opponentClient{conn: conn}
}

func (c *opponentClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *opponentClient) Choose(ctx context.Context, in *ChooseRequest) (*ChooseResponse, error) {
	out := &ChooseResponse{}
	if err := c.conn.Invoke(ctx, methodChoose, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterOpponentServer(server grpc.ServiceRegistrar, impl OpponentServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*OpponentServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "GetMetadata",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.GetMetadata(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetMetadata}
					return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.GetMetadata(ctx, empty)
					})
				},
			},
			{
				MethodName: "Choose",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &ChooseRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.Choose(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodChoose}
					return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
						choose, ok := req.(*ChooseRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.Choose(ctx, choose)
					})
				},
			},
		},
		Streams: []grpc.StreamDesc{},
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl OpponentServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterOpponentServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewOpponentClient(conn), nil
}

func PluginMap(impl OpponentServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
