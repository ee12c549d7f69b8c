package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"
)

var (
	ErrHookDisabled     = errors.New("hook is disabled")
	ErrHookNotFound     = errors.New("hook not found")
	ErrChecksumMismatch = errors.New("hook checksum mismatch")
	ErrHookTimeout      = errors.New("hook timeout")
	ErrHookRejected     = errors.New("hook rejected notification")
)

var (
	sha256Pattern    = regexp.MustCompile(`^[a-f0-9]{64}$`)
	eventKindPattern = regexp.MustCompile(`^[a-z][a-z_]*$`)
)

// Manifest registers one hook binary. An empty Events list subscribes to
// every event kind.
type Manifest struct {
	Name    string   `json:"name"`
	Version string   `json:"version"`
	Binary  string   `json:"binary"`
	SHA256  string   `json:"sha256"`
	Enabled bool     `json:"enabled"`
	Events  []string `json:"events"`
}

func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("hook name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("hook version is required")
	}
	if m.Binary == "" {
		return fmt.Errorf("hook binary path is required")
	}
	if !sha256Pattern.MatchString(m.SHA256) {
		return fmt.Errorf("hook sha256 must be lowercase 64-char hex")
	}
	seen := map[string]struct{}{}
	for _, kind := range m.Events {
		if !eventKindPattern.MatchString(kind) {
			return fmt.Errorf("invalid event kind %q", kind)
		}
		if _, ok := seen[kind]; ok {
			return fmt.Errorf("duplicate event kind: %s", kind)
		}
		seen[kind] = struct{}{}
	}
	return nil
}

// ValidateEvents rejects subscriptions to kinds outside known. An empty known
// list accepts any well-formed kind.
func (m Manifest) ValidateEvents(known []string) error {
	if len(known) == 0 {
		return nil
	}
	allowed := make(map[string]struct{}, len(known))
	for _, k := range known {
		allowed[k] = struct{}{}
	}
	for _, kind := range m.Events {
		if _, ok := allowed[kind]; !ok {
			return fmt.Errorf("hook %s subscribes to unknown event kind %q", m.Name, kind)
		}
	}
	return nil
}

func (m Manifest) Subscribes(kind string) bool {
	if len(m.Events) == 0 {
		return true
	}
	for _, k := range m.Events {
		if k == kind {
			return true
		}
	}
	return false
}

type Metadata struct {
	Name    string
	Version string
	Events  []string
}

type Notification struct {
	Kind        string
	OccurredAt  time.Time
	PayloadJSON string
}

func (n Notification) Validate() error {
	if !eventKindPattern.MatchString(n.Kind) {
		return fmt.Errorf("invalid event kind %q", n.Kind)
	}
	if n.PayloadJSON != "" && !json.Valid([]byte(n.PayloadJSON)) {
		return fmt.Errorf("payload must be valid JSON")
	}
	return nil
}

type Ack struct {
	Accepted bool
	Message  string
}
