package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"studychef/internal/modules/hooks/domain"
	hooksout "studychef/internal/modules/hooks/port/out"
)

// FileManifestStore reads hooks.json from the hooks directory. Relative
// binary paths resolve against that directory.
type FileManifestStore struct {
	dir  string
	path string
}

func NewFileManifestStore(hooksDir string) hooksout.ManifestStore {
	return &FileManifestStore{dir: hooksDir, path: filepath.Join(hooksDir, "hooks.json")}
}

func (s *FileManifestStore) Load(_ context.Context) ([]domain.Manifest, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Manifest{}, nil
		}
		return nil, fmt.Errorf("read hook manifests: %w", err)
	}
	var manifests []domain.Manifest
	decoder := json.NewDecoder(bytes.NewReader(b))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&manifests); err != nil {
		return nil, fmt.Errorf("decode hook manifests: %w", err)
	}
	for i := range manifests {
		if manifests[i].Binary != "" && !filepath.IsAbs(manifests[i].Binary) {
			manifests[i].Binary = filepath.Clean(filepath.Join(s.dir, manifests[i].Binary))
		}
	}
	return manifests, nil
}
