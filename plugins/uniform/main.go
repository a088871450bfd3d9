// Command uniform is an opponent plugin that plays uniformly at random.
package main

import (
	"context"
	"math/rand/v2"

	"github.com/hashicorp/go-plugin"

	"rps/internal/modules/game/adapter/out/opponentrpc"
)

var hands = []string{"r", "p", "s"}

type server struct{}

func (server) GetMetadata(context.Context, *opponentrpc.Empty) (*opponentrpc.Metadata, error) {
	return &opponentrpc.Metadata{Name: "uniform", Version: "1.0.0"}, nil
}

func (server) Choose(context.Context, *opponentrpc.ChooseRequest) (*opponentrpc.ChooseResponse, error) {
	return &opponentrpc.ChooseResponse{Choice: hands[rand.IntN(len(hands))]}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: opponentrpc.HandshakeConfig,
		Plugins:         opponentrpc.PluginMap(server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
