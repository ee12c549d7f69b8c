package out_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	hooksout "studychef/internal/modules/hooks/adapter/out"
	"studychef/internal/modules/hooks/domain"
)

func TestGRPCHostIntegrationChimePlugin(t *testing.T) {
	if testing.Short() {
		t.Skip("builds a plugin binary")
	}
	binPath, checksum := buildChimePlugin(t)
	logPath := filepath.Join(t.TempDir(), "chime.log")
	t.Setenv("STUDYCHEF_CHIME_LOG", logPath)
	manifest := domain.Manifest{
		Name:    "chime",
		Version: "1.0.0",
		Binary:  binPath,
		SHA256:  checksum,
		Enabled: true,
	}

	host := hooksout.NewGRPCHost(nil)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := host.CheckLifecycle(ctx, manifest); err != nil {
		t.Fatalf("check lifecycle: %v", err)
	}
	metadata, err := host.GetMetadata(ctx, manifest)
	if err != nil {
		t.Fatalf("get metadata: %v", err)
	}
	if metadata.Name != "chime" {
		t.Fatalf("unexpected metadata name: %s", metadata.Name)
	}

	ack, err := host.Notify(ctx, manifest, domain.Notification{
		Kind:        "focus_completed",
		OccurredAt:  time.Date(2026, 3, 2, 9, 25, 0, 0, time.UTC),
		PayloadJSON: `{"minutes":25,"xp_gained":25}`,
	})
	if err != nil {
		t.Fatalf("notify: %v", err)
	}
	if !ack.Accepted {
		t.Fatalf("expected accepted ack, got %+v", ack)
	}
	logged, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read chime log: %v", err)
	}
	if !strings.Contains(string(logged), "focus_completed") {
		t.Fatalf("expected chime log to mention the event, got %q", string(logged))
	}
}

func buildChimePlugin(t *testing.T) (string, string) {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "chime")
	cmd := exec.Command("go", "build", "-o", binPath, "./plugins/chime")
	cmd.Dir = repositoryRoot(t)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build chime plugin: %v\n%s", err, string(out))
	}
	payload, err := os.ReadFile(binPath)
	if err != nil {
		t.Fatalf("read built plugin: %v", err)
	}
	hash := sha256.Sum256(payload)
	return binPath, hex.EncodeToString(hash[:])
}

func repositoryRoot(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller failed")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "../../../../../"))
}
