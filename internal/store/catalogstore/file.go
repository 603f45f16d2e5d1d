package catalogstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"linkscout/internal/catalog"
)

// FileStore reads the catalog from a local JSON file, the default for
// local runs and tests.
type FileStore struct {
	path string
}

func NewFile(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) FetchAll(_ context.Context) ([]catalog.Item, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return decodeCatalog(raw)
}

func decodeCatalog(raw []byte) ([]catalog.Item, error) {
	var items []catalog.Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return items, nil
}

func decodeOSCompat(raw []byte, it *catalog.Item) error {
	if len(raw) == 0 {
		return nil
	}
	m := make(map[catalog.Platform]string)
	if err := json.Unmarshal(raw, &m); err != nil {
		return err
	}
	it.OSCompatibility = m
	return nil
}
