package domain_test

import (
	"strings"
	"testing"
	"time"

	"studychef/internal/modules/hooks/domain"
)

func TestManifestValidate(t *testing.T) {
	t.Parallel()
	sha := strings.Repeat("a", 64)
	cases := []struct {
		name      string
		manifest  domain.Manifest
		shouldErr bool
	}{
		{name: "valid all events", manifest: domain.Manifest{Name: "chime", Version: "1", Binary: "/tmp/chime", SHA256: sha, Enabled: true}},
		{name: "valid filtered", manifest: domain.Manifest{Name: "chime", Version: "1", Binary: "/tmp/chime", SHA256: sha, Events: []string{"focus_completed", "recipe_cooked"}}},
		{name: "missing name", manifest: domain.Manifest{Version: "1", Binary: "/tmp/chime", SHA256: sha}, shouldErr: true},
		{name: "missing version", manifest: domain.Manifest{Name: "chime", Binary: "/tmp/chime", SHA256: sha}, shouldErr: true},
		{name: "missing binary", manifest: domain.Manifest{Name: "chime", Version: "1", SHA256: sha}, shouldErr: true},
		{name: "uppercase sha", manifest: domain.Manifest{Name: "chime", Version: "1", Binary: "/tmp/chime", SHA256: strings.Repeat("A", 64)}, shouldErr: true},
		{name: "bad event kind", manifest: domain.Manifest{Name: "chime", Version: "1", Binary: "/tmp/chime", SHA256: sha, Events: []string{"Focus Done"}}, shouldErr: true},
		{name: "duplicate event", manifest: domain.Manifest{Name: "chime", Version: "1", Binary: "/tmp/chime", SHA256: sha, Events: []string{"recipe_cooked", "recipe_cooked"}}, shouldErr: true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := tc.manifest.Validate()
			if tc.shouldErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tc.shouldErr && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

func TestManifestSubscribes(t *testing.T) {
	t.Parallel()
	all := domain.Manifest{}
	if !all.Subscribes("anything") {
		t.Fatalf("empty events must subscribe to everything")
	}
	some := domain.Manifest{Events: []string{"focus_completed"}}
	if !some.Subscribes("focus_completed") || some.Subscribes("recipe_cooked") {
		t.Fatalf("unexpected subscription filter")
	}
}

func TestNotificationValidate(t *testing.T) {
	t.Parallel()
	ok := domain.Notification{Kind: "focus_completed", OccurredAt: time.Now(), PayloadJSON: `{"minutes":25}`}
	if err := ok.Validate(); err != nil {
		t.Fatalf("expected valid notification, got %v", err)
	}
	if err := (domain.Notification{Kind: "focus_completed", PayloadJSON: "{"}).Validate(); err == nil {
		t.Fatalf("expected invalid payload error")
	}
	if err := (domain.Notification{}).Validate(); err == nil {
		t.Fatalf("expected missing kind error")
	}
}

func TestManifestValidateEventsAgainstKnownKinds(t *testing.T) {
	t.Parallel()
	known := []string{"focus_completed", "recipe_cooked"}
	ok := domain.Manifest{Name: "chime", Events: []string{"recipe_cooked"}}
	if err := ok.ValidateEvents(known); err != nil {
		t.Fatalf("expected known kind to pass, got %v", err)
	}
	if err := (domain.Manifest{Name: "all"}).ValidateEvents(known); err != nil {
		t.Fatalf("empty subscription must pass, got %v", err)
	}
	typo := domain.Manifest{Name: "chime", Events: []string{"focus_complete"}}
	if err := typo.ValidateEvents(known); err == nil {
		t.Fatalf("expected unknown kind error")
	}
	if err := typo.ValidateEvents(nil); err != nil {
		t.Fatalf("no known list accepts any kind, got %v", err)
	}
}
