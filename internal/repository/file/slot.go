// Package file keeps state slots as JSON files in a local directory
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"wordlearner/internal/repository"
)

// SlotRepo implements repository.StateSlot with one file per key
type SlotRepo struct {
	dir string
}

// NewSlotRepo creates a slot repository rooted at dir, creating it if needed
func NewSlotRepo(dir string) (*SlotRepo, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &SlotRepo{dir: dir}, nil
}

// Path returns the file backing key
func (r *SlotRepo) Path(key string) string {
	name := strings.Map(func(c rune) rune {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_', c == '.':
			return c
		default:
			return '_'
		}
	}, key)
	return filepath.Join(r.dir, name+".json")
}

// Load reads the file saved under key
func (r *SlotRepo) Load(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	payload, err := os.ReadFile(r.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, repository.ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load slot %q: %w", key, err)
	}
	return payload, nil
}

// Save replaces the file under key through a temp file and rename
func (r *SlotRepo) Save(ctx context.Context, key string, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(r.dir, ".slot-*")
	if err != nil {
		return fmt.Errorf("save slot %q: %w", key, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("save slot %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save slot %q: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), r.Path(key)); err != nil {
		return fmt.Errorf("save slot %q: %w", key, err)
	}
	return nil
}
