package main

import (
	"context"
	"fmt"
	"os"

	hooksrpc "studychef/internal/modules/hooks/adapter/out/rpc"

	"github.com/hashicorp/go-plugin"
)

// chime rings the terminal bell for every notification. When
// STUDYCHEF_CHIME_LOG is set it appends a line per notification to that file
// instead.
type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *hooksrpc.Empty) (*hooksrpc.Metadata, error) {
	return &hooksrpc.Metadata{
		Name:    "chime",
		Version: "1.0.0",
		Events:  []string{"focus_completed", "break_completed", "achievement_earned"},
	}, nil
}

func (s *server) Notify(_ context.Context, in *hooksrpc.NotifyRequest) (*hooksrpc.NotifyResponse, error) {
	if in.Kind == "" {
		return &hooksrpc.NotifyResponse{Accepted: false, Message: "missing kind"}, nil
	}
	if path := os.Getenv("STUDYCHEF_CHIME_LOG"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open chime log: %w", err)
		}
		defer f.Close()
		if _, err := fmt.Fprintf(f, "%s %s %s\n", in.OccurredAt, in.Kind, in.PayloadJSON); err != nil {
			return nil, fmt.Errorf("write chime log: %w", err)
		}
		return &hooksrpc.NotifyResponse{Accepted: true, Message: "logged " + in.Kind}, nil
	}
	if tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0); err == nil {
		_, _ = tty.WriteString("\a")
		_ = tty.Close()
	}
	return &hooksrpc.NotifyResponse{Accepted: true, Message: "chimed " + in.Kind}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: hooksrpc.HandshakeConfig,
		Plugins:         hooksrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
