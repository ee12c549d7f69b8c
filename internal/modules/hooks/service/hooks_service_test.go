package service_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"studychef/internal/modules/hooks/domain"
	"studychef/internal/modules/hooks/dto"
	"studychef/internal/modules/hooks/service"
)

type fakeHost struct {
	notified []string
	reject   map[string]bool
	fail     map[string]error
}

func (f *fakeHost) CheckLifecycle(context.Context, domain.Manifest) error { return nil }

func (f *fakeHost) GetMetadata(_ context.Context, m domain.Manifest) (domain.Metadata, error) {
	return domain.Metadata{Name: m.Name, Version: m.Version}, nil
}

func (f *fakeHost) Notify(_ context.Context, m domain.Manifest, note domain.Notification) (domain.Ack, error) {
	if err := f.fail[m.Name]; err != nil {
		return domain.Ack{}, err
	}
	f.notified = append(f.notified, m.Name+":"+note.Kind)
	if f.reject[m.Name] {
		return domain.Ack{Accepted: false, Message: "busy"}, nil
	}
	return domain.Ack{Accepted: true, Message: "ok"}, nil
}

type fakeStore []domain.Manifest

func (f fakeStore) Load(context.Context) ([]domain.Manifest, error) {
	return append([]domain.Manifest(nil), f...), nil
}

// writeHooks writes a fake binary per manifest and fills in its checksum
// unless one is set.
func writeHooks(t *testing.T, manifests []domain.Manifest) fakeStore {
	t.Helper()
	dir := t.TempDir()
	for i := range manifests {
		bin := filepath.Join(dir, manifests[i].Name)
		payload := []byte("binary-" + manifests[i].Name)
		if err := os.WriteFile(bin, payload, 0o755); err != nil {
			t.Fatalf("write binary: %v", err)
		}
		manifests[i].Binary = bin
		if manifests[i].SHA256 == "" {
			sum := sha256.Sum256(payload)
			manifests[i].SHA256 = hex.EncodeToString(sum[:])
		}
	}
	return fakeStore(manifests)
}

func TestDispatchFiltersBySubscriptionAndEnabled(t *testing.T) {
	t.Parallel()
	store := writeHooks(t, []domain.Manifest{
		{Name: "all", Version: "1", Enabled: true},
		{Name: "cooking", Version: "1", Enabled: true, Events: []string{"recipe_cooked"}},
		{Name: "off", Version: "1", Enabled: false},
	})
	host := &fakeHost{}
	svc := service.NewHooksService(store, host, nil)

	out, err := svc.Dispatch(context.Background(), dto.NotifyInput{Kind: "focus_completed", OccurredAt: time.Now(), PayloadJSON: `{"minutes":25}`})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if len(out.Deliveries) != 1 || out.Deliveries[0].Hook != "all" || !out.Deliveries[0].Accepted {
		t.Fatalf("unexpected deliveries: %+v", out.Deliveries)
	}
	if strings.Join(host.notified, ",") != "all:focus_completed" {
		t.Fatalf("unexpected notifications: %v", host.notified)
	}
}

func TestDispatchCollectsFailuresWithoutStopping(t *testing.T) {
	t.Parallel()
	store := writeHooks(t, []domain.Manifest{
		{Name: "tampered", Version: "1", Enabled: true, SHA256: strings.Repeat("0", 64)},
		{Name: "broken", Version: "1", Enabled: true},
		{Name: "picky", Version: "1", Enabled: true},
		{Name: "fine", Version: "1", Enabled: true},
	})
	host := &fakeHost{fail: map[string]error{"broken": errors.New("boom")}, reject: map[string]bool{"picky": true}}
	svc := service.NewHooksService(store, host, nil)

	out, err := svc.Dispatch(context.Background(), dto.NotifyInput{Kind: "recipe_cooked", OccurredAt: time.Now()})
	if !errors.Is(err, domain.ErrChecksumMismatch) || !errors.Is(err, domain.ErrHookRejected) {
		t.Fatalf("expected joined checksum and rejection errors, got %v", err)
	}
	if len(out.Deliveries) != 4 {
		t.Fatalf("expected every hook attempted, got %+v", out.Deliveries)
	}
	if !out.Deliveries[3].Accepted || out.Deliveries[3].Error != "" {
		t.Fatalf("healthy hook must still be delivered: %+v", out.Deliveries[3])
	}
}

func TestDispatchRejectsInvalidNotification(t *testing.T) {
	t.Parallel()
	svc := service.NewHooksService(fakeStore(nil), &fakeHost{}, nil)
	if _, err := svc.Dispatch(context.Background(), dto.NotifyInput{Kind: "focus_completed", PayloadJSON: "{"}); err == nil {
		t.Fatalf("expected invalid payload error")
	}
}

func TestTestHookIgnoresSubscriptionsButNotDisabled(t *testing.T) {
	t.Parallel()
	store := writeHooks(t, []domain.Manifest{
		{Name: "cooking", Version: "1", Enabled: true, Events: []string{"recipe_cooked"}},
		{Name: "off", Version: "1", Enabled: false},
	})
	host := &fakeHost{}
	svc := service.NewHooksService(store, host, nil)

	result, err := svc.Test(context.Background(), "cooking")
	if err != nil {
		t.Fatalf("test hook: %v", err)
	}
	if !result.Accepted || host.notified[0] != "cooking:hook_test" {
		t.Fatalf("unexpected test delivery: %+v %v", result, host.notified)
	}
	if _, err := svc.Test(context.Background(), "off"); !errors.Is(err, domain.ErrHookDisabled) {
		t.Fatalf("expected disabled error, got %v", err)
	}
	if _, err := svc.Test(context.Background(), "ghost"); !errors.Is(err, domain.ErrHookNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestDoctorDetectsChecksumMismatch(t *testing.T) {
	t.Parallel()
	store := writeHooks(t, []domain.Manifest{{Name: "demo", Version: "1", Enabled: true, SHA256: strings.Repeat("0", 64)}})
	svc := service.NewHooksService(store, nil, nil)
	results, err := svc.Doctor(context.Background())
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if len(results) != 1 || results[0].ChecksumValid || !results[0].BinaryReachable {
		t.Fatalf("unexpected doctor result: %+v", results)
	}
}

func TestUnknownEventSubscriptionIsRejected(t *testing.T) {
	t.Parallel()
	store := writeHooks(t, []domain.Manifest{{Name: "typo", Version: "1", Enabled: true, Events: []string{"focus_complete"}}})
	svc := service.NewHooksService(store, &fakeHost{}, nil).WithEventKinds([]string{"focus_completed", "recipe_cooked"})

	if _, err := svc.List(context.Background()); err == nil || !strings.Contains(err.Error(), "focus_complete") {
		t.Fatalf("expected unknown kind error, got %v", err)
	}
	results, err := svc.Doctor(context.Background())
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if len(results) != 1 || results[0].Error == "" || results[0].BinaryReachable {
		t.Fatalf("doctor must flag the manifest: %+v", results)
	}
}
