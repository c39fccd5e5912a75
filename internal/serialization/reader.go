package serialization

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// DecodeCheckpoint reads one JSON checkpoint from r and validates its
// structure. At most MaxCheckpointSize bytes are consumed.
func DecodeCheckpoint(r io.Reader) (*Checkpoint, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxCheckpointSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read checkpoint: %w", err)
	}
	if len(data) > MaxCheckpointSize {
		return nil, ErrCheckpointTooLarge
	}

	var ckpt Checkpoint
	if err := json.Unmarshal(data, &ckpt); err != nil {
		return nil, fmt.Errorf("failed to parse checkpoint: %w", err)
	}
	if err := ValidateSnapshot(ckpt.Model); err != nil {
		return nil, fmt.Errorf("invalid checkpoint: %w", err)
	}
	return &ckpt, nil
}

// ReadCheckpoint loads and validates the checkpoint stored at path.
func ReadCheckpoint(path string) (*Checkpoint, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model loading
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open checkpoint: %w", err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat checkpoint: %w", err)
	}
	if info.Size() > MaxCheckpointSize {
		return nil, ErrCheckpointTooLarge
	}

	return DecodeCheckpoint(f)
}
