package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"

	"studychef/internal/modules/hooks/domain"
	"studychef/internal/modules/hooks/dto"
	hooksout "studychef/internal/modules/hooks/port/out"
)

const testEventKind = "hook_test"

type HooksService struct {
	store  hooksout.ManifestStore
	host   hooksout.Host
	logger hclog.Logger
	kinds  []string
}

func NewHooksService(store hooksout.ManifestStore, host hooksout.Host, logger hclog.Logger) *HooksService {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &HooksService{store: store, host: host, logger: logger}
}

// WithEventKinds restricts manifest subscriptions to kinds.
func (s *HooksService) WithEventKinds(kinds []string) *HooksService {
	s.kinds = append([]string(nil), kinds...)
	return s
}

func (s *HooksService) List(ctx context.Context) ([]dto.HookInfo, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.HookInfo, 0, len(manifests))
	for _, m := range manifests {
		out = append(out, dto.HookInfo{Name: m.Name, Version: m.Version, Enabled: m.Enabled, Binary: m.Binary, Events: append([]string(nil), m.Events...)})
	}
	return out, nil
}

func (s *HooksService) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.DoctorResult, 0, len(manifests))
	for _, m := range manifests {
		result := dto.DoctorResult{Name: m.Name}
		if err := validateManifest(m, s.kinds); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		binaryOK := fileExists(m.Binary)
		result.BinaryReachable = binaryOK
		checksumOK := false
		if binaryOK {
			checksumOK = checksumMatches(m.Binary, m.SHA256) == nil
		}
		result.ChecksumValid = checksumOK
		switch {
		case !binaryOK:
			result.Error = fmt.Sprintf("binary does not exist: %s", m.Binary)
		case !checksumOK:
			result.Error = "checksum mismatch"
		case m.Enabled && s.host != nil:
			if err := s.host.CheckLifecycle(ctx, m); err != nil {
				result.Error = err.Error()
			} else {
				result.LifecycleOK = true
			}
		}
		results = append(results, result)
	}
	return results, nil
}

// Dispatch delivers the notification to every enabled hook subscribed to its
// kind. Every hook is attempted; failures are reported per hook and joined
// into the returned error.
func (s *HooksService) Dispatch(ctx context.Context, input dto.NotifyInput) (dto.DispatchOutput, error) {
	note := domain.Notification{Kind: input.Kind, OccurredAt: input.OccurredAt, PayloadJSON: input.PayloadJSON}
	if err := note.Validate(); err != nil {
		return dto.DispatchOutput{}, err
	}
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return dto.DispatchOutput{}, err
	}
	out := dto.DispatchOutput{}
	var errs []error
	for _, m := range manifests {
		if !m.Enabled || !m.Subscribes(note.Kind) {
			continue
		}
		result, err := s.deliver(ctx, m, note)
		if err != nil {
			errs = append(errs, fmt.Errorf("hook %s: %w", m.Name, err))
			s.logger.Warn("hook delivery failed", "hook", m.Name, "kind", note.Kind, "error", err)
		}
		out.Deliveries = append(out.Deliveries, result)
	}
	return out, errors.Join(errs...)
}

// Test sends a synthetic notification to one hook, ignoring its subscription
// filter.
func (s *HooksService) Test(ctx context.Context, hookName string) (dto.DeliveryResult, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return dto.DeliveryResult{}, err
	}
	for _, m := range manifests {
		if m.Name != hookName {
			continue
		}
		if !m.Enabled {
			return dto.DeliveryResult{}, fmt.Errorf("%w: %s", domain.ErrHookDisabled, hookName)
		}
		note := domain.Notification{
			Kind:        testEventKind,
			OccurredAt:  time.Now().UTC(),
			PayloadJSON: `{"message":"hello from studychef"}`,
		}
		return s.deliver(ctx, m, note)
	}
	return dto.DeliveryResult{}, fmt.Errorf("%w: %s", domain.ErrHookNotFound, hookName)
}

func (s *HooksService) deliver(ctx context.Context, m domain.Manifest, note domain.Notification) (dto.DeliveryResult, error) {
	result := dto.DeliveryResult{Hook: m.Name}
	fail := func(err error) (dto.DeliveryResult, error) {
		result.Error = err.Error()
		return result, err
	}
	if err := checksumMatches(m.Binary, m.SHA256); err != nil {
		return fail(err)
	}
	if s.host == nil {
		return fail(fmt.Errorf("hook host is not configured"))
	}
	ack, err := s.host.Notify(ctx, m, note)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fail(fmt.Errorf("%w: %s", domain.ErrHookTimeout, m.Name))
		}
		return fail(err)
	}
	result.Accepted = ack.Accepted
	result.Message = ack.Message
	if !ack.Accepted {
		return fail(fmt.Errorf("%w: %s", domain.ErrHookRejected, ack.Message))
	}
	s.logger.Debug("hook notified", "hook", m.Name, "kind", note.Kind)
	return result, nil
}

func (s *HooksService) loadValidated(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	seenNames := map[string]struct{}{}
	for _, manifest := range manifests {
		if err := validateManifest(manifest, s.kinds); err != nil {
			return nil, err
		}
		if _, ok := seenNames[manifest.Name]; ok {
			return nil, fmt.Errorf("duplicate hook name: %s", manifest.Name)
		}
		seenNames[manifest.Name] = struct{}{}
	}
	return manifests, nil
}

func validateManifest(m domain.Manifest, kinds []string) error {
	if err := m.Validate(); err != nil {
		return err
	}
	return m.ValidateEvents(kinds)
}

func checksumMatches(path string, expected string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read hook binary: %w", err)
	}
	hash := sha256.Sum256(payload)
	if hex.EncodeToString(hash[:]) != expected {
		return fmt.Errorf("%w: %s", domain.ErrChecksumMismatch, filepath.Base(path))
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
