package out

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	hooksrpc "studychef/internal/modules/hooks/adapter/out/rpc"
	"studychef/internal/modules/hooks/domain"
	hooksout "studychef/internal/modules/hooks/port/out"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 5 * time.Second
)

// GRPCHost launches a hook binary per call through go-plugin and talks to it
// over gRPC with the JSON codec.
type GRPCHost struct {
	logger hclog.Logger
}

func NewGRPCHost(logger hclog.Logger) hooksout.Host {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &GRPCHost{logger: logger}
}

func (h *GRPCHost) CheckLifecycle(ctx context.Context, manifest domain.Manifest) error {
	_, err := h.GetMetadata(ctx, manifest)
	return err
}

func (h *GRPCHost) GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error) {
	client, closeFn, err := h.connect(manifest)
	if err != nil {
		return domain.Metadata{}, err
	}
	defer closeFn()

	callCtx, cancel := callContext(ctx, defaultCallTimeout)
	defer cancel()
	meta, err := client.GetMetadata(callCtx)
	if err != nil {
		return domain.Metadata{}, fmt.Errorf("get metadata: %w", err)
	}
	return domain.Metadata{Name: meta.Name, Version: meta.Version, Events: meta.Events}, nil
}

func (h *GRPCHost) Notify(ctx context.Context, manifest domain.Manifest, note domain.Notification) (domain.Ack, error) {
	client, closeFn, err := h.connect(manifest)
	if err != nil {
		return domain.Ack{}, err
	}
	defer closeFn()

	callCtx, cancel := callContext(ctx, defaultCallTimeout)
	defer cancel()
	response, err := client.Notify(callCtx, &hooksrpc.NotifyRequest{
		Kind:        note.Kind,
		OccurredAt:  note.OccurredAt.UTC().Format(time.RFC3339Nano),
		PayloadJSON: note.PayloadJSON,
	})
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return domain.Ack{}, fmt.Errorf("%w: %s", domain.ErrHookTimeout, manifest.Name)
		}
		return domain.Ack{}, fmt.Errorf("notify: %w", err)
	}
	return domain.Ack{Accepted: response.Accepted, Message: response.Message}, nil
}

func (h *GRPCHost) connect(manifest domain.Manifest) (hooksrpc.HookPluginClient, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  hooksrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          hooksrpc.PluginMap(nil),
		Cmd:              exec.Command(manifest.Binary),
		Managed:          true,
		StartTimeout:     defaultStartTimeout,
		Logger:           h.logger.Named(manifest.Name),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start hook client: %w", err)
	}
	raw, err := rpcClient.Dispense(hooksrpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense hook: %w", err)
	}
	typed, ok := raw.(hooksrpc.HookPluginClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("hook rpc client type mismatch")
	}
	return typed, closeFn, nil
}

func callContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
