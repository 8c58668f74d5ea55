package memory

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/petasbytes/personachat/chat"
	"github.com/petasbytes/personachat/internal/fsops"
	"github.com/petasbytes/personachat/persona"
)

// ErrCorruptState is returned when a snapshot file exists but cannot be
// parsed into the expected shape.
var ErrCorruptState = errors.New("corrupt snapshot")

// SnapshotVersion is the version written to new snapshots.
const SnapshotVersion = 1

// Snapshot is the on-disk (and JSON-export) shape of a conversation.
type Snapshot struct {
	Version     int            `json:"version"`
	SavedAt     time.Time      `json:"saved_at,omitzero"`
	Persona     string         `json:"persona"`
	Model       string         `json:"model"`
	Temperature float64        `json:"temperature"`
	MaxTokens   int            `json:"max_tokens,omitempty"`
	History     []chat.Message `json:"history"`
}

// snapshotOf captures the persisted fields of conv.
func snapshotOf(conv *chat.Conversation) Snapshot {
	return Snapshot{
		Version:     SnapshotVersion,
		SavedAt:     time.Now().UTC(),
		Persona:     conv.ActivePersona.Name,
		Model:       conv.Model,
		Temperature: conv.Temperature,
		MaxTokens:   conv.MaxTokens,
		History:     conv.History,
	}
}

// Save writes a full snapshot of conv to path, replacing any previous file.
func Save(path string, conv *chat.Conversation) error {
	b, err := json.MarshalIndent(snapshotOf(conv), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	return fsops.WriteFileAtomic(path, b)
}

// Load restores a conversation from path against reg.
// A missing file returns (nil, nil): the caller starts fresh. A present but
// unparsable file is ErrCorruptState; a persona that no longer exists in the
// registry surfaces as persona.ErrUnknownPersona.
func Load(path string, reg *persona.Registry) (*chat.Conversation, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptState, path, err)
	}
	if snap.Version > SnapshotVersion {
		return nil, fmt.Errorf("%w: %s: unsupported version %d", ErrCorruptState, path, snap.Version)
	}
	if snap.Persona == "" {
		return nil, fmt.Errorf("%w: %s: missing persona", ErrCorruptState, path)
	}

	return chat.Restore(reg, snap.Persona, snap.Model, snap.Temperature, snap.MaxTokens, snap.History)
}

// Remove deletes the snapshot file. A missing file is not an error.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove snapshot: %w", err)
	}
	return nil
}
