package out

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	"rps/internal/modules/game/adapter/out/opponentrpc"
	"rps/internal/modules/game/domain"
	gameout "rps/internal/modules/game/port/out"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 2 * time.Second
)

// PluginOpponent asks an external plugin process for each hand. The process
// is started once and killed on Close.
type PluginOpponent struct {
	client  opponentrpc.OpponentClient
	kill    func()
	timeout time.Duration
	name    string
}

var _ gameout.Opponent = (*PluginOpponent)(nil)

func NewPluginOpponent(ctx context.Context, binary string, timeout time.Duration) (*PluginOpponent, error) {
	if strings.TrimSpace(binary) == "" {
		return nil, fmt.Errorf("opponent plugin binary is required")
	}
	pc := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  opponentrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          opponentrpc.PluginMap(nil),
		Cmd:              exec.Command(binary),
		Managed:          true,
		StartTimeout:     defaultStartTimeout,
		Logger:           hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.NoLevel}),
	})
	kill := func() { pc.Kill() }

	rpcClient, err := pc.Client()
	if err != nil {
		kill()
		return nil, fmt.Errorf("start opponent plugin: %w", err)
	}
	raw, err := rpcClient.Dispense(opponentrpc.PluginMapKey)
	if err != nil {
		kill()
		return nil, fmt.Errorf("dispense opponent plugin: %w", err)
	}
	typed, ok := raw.(opponentrpc.OpponentClient)
	if !ok {
		kill()
		return nil, fmt.Errorf("opponent plugin client type mismatch")
	}

	opp := newPluginOpponent(typed, kill, timeout)
	if err := opp.handshake(ctx); err != nil {
		kill()
		return nil, err
	}
	return opp, nil
}

func newPluginOpponent(client opponentrpc.OpponentClient, kill func(), timeout time.Duration) *PluginOpponent {
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}
	if kill == nil {
		kill = func() {}
	}
	return &PluginOpponent{client: client, kill: kill, timeout: timeout}
}

func (o *PluginOpponent) handshake(ctx context.Context) error {
	callCtx, cancel := o.callContext(ctx)
	defer cancel()
	meta, err := o.client.GetMetadata(callCtx)
	if err != nil {
		return fmt.Errorf("opponent plugin metadata: %w", err)
	}
	o.name = meta.Name
	return nil
}

func (o *PluginOpponent) Name() string { return o.name }

func (o *PluginOpponent) Choose(ctx context.Context) (domain.Choice, error) {
	callCtx, cancel := o.callContext(ctx)
	defer cancel()
	resp, err := o.client.Choose(callCtx, &opponentrpc.ChooseRequest{})
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return domain.Unset, fmt.Errorf("opponent plugin timed out after %s", o.timeout)
		}
		return domain.Unset, fmt.Errorf("opponent plugin choose: %w", err)
	}
	choice, err := domain.ParseChoice(resp.Choice)
	if err != nil {
		return domain.Unset, fmt.Errorf("opponent plugin answered: %w", err)
	}
	return choice, nil
}

func (o *PluginOpponent) Close() error {
	o.kill()
	return nil
}

func (o *PluginOpponent) callContext(parent context.Context) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, o.timeout)
}
