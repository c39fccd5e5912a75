package serialization

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// EncodeCheckpoint writes ckpt as indented JSON to w.
func EncodeCheckpoint(w io.Writer, ckpt *Checkpoint) error {
	if ckpt == nil {
		return ErrMissingModel
	}
	if err := ValidateSnapshot(ckpt.Model); err != nil {
		return fmt.Errorf("invalid checkpoint: %w", err)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ckpt); err != nil {
		return fmt.Errorf("failed to encode checkpoint: %w", err)
	}
	return nil
}

// WriteCheckpoint saves ckpt to path.
//
// The file is written to a temporary sibling and renamed into place, so a
// crash mid-write never leaves a truncated checkpoint behind.
func WriteCheckpoint(path string, ckpt *Checkpoint) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err := EncodeCheckpoint(tmp, ckpt); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync checkpoint: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close checkpoint: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move checkpoint into place: %w", err)
	}
	return nil
}
