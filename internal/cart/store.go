package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Store persists the full cart snapshot. Every save overwrites the whole
// snapshot; there are no incremental writes.
type Store interface {
	Load() ([]LineItem, error)
	Save(items []LineItem) error
	Clear() error
}

// FileStore keeps the snapshot as a single JSON file, one named entry of
// serialized state per cart.
type FileStore struct {
	Path string
}

func (s *FileStore) Load() ([]LineItem, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read cart snapshot: %w", err)
	}

	var items []LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode cart snapshot: %w", err)
	}
	return items, nil
}

func (s *FileStore) Save(items []LineItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart snapshot: %w", err)
	}
	if err := os.WriteFile(s.Path, data, 0o644); err != nil {
		return fmt.Errorf("write cart snapshot: %w", err)
	}
	return nil
}

func (s *FileStore) Clear() error {
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove cart snapshot: %w", err)
	}
	return nil
}
