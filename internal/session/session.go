package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

const (
	// AppName is the application name used for config directory
	AppName = "studyrec"
	// SnapshotFile is the name of the JSON session snapshot file
	SnapshotFile = "session.json"
)

// Snapshot is the durable state of an in-progress session. It is written
// on start, pause, resume and on the periodic heartbeat, and cleared only
// when the session is committed, so a crashed process can pick up where it
// left off.
type Snapshot struct {
	IsStudying          bool       `json:"isStudying"`
	IsPaused            bool       `json:"isPaused"`
	StartTime           time.Time  `json:"startTime"`
	AccumulatedPausedMs int64      `json:"accumulatedPausedMs"`
	LastPauseTime       *time.Time `json:"lastPauseTime"`
	Category            string     `json:"category"`
	Content             string     `json:"content"`
	Location            string     `json:"location"`
}

// Store persists the single session snapshot slot.
type Store interface {
	// Save overwrites the snapshot.
	Save(s Snapshot) error
	// Load returns the stored snapshot, or nil when none exists.
	Load() (*Snapshot, error)
	// Clear removes the snapshot. Clearing an absent snapshot is a no-op.
	Clear() error
}

// FileStore keeps the snapshot in a JSON file.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore writing to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath returns the snapshot path under the user config directory,
// creating the directory if needed.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	appDir := filepath.Join(configDir, AppName)
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(appDir, SnapshotFile), nil
}

// Save writes the snapshot with an atomic write pattern (write to temp
// file, then rename) so a crash mid-write cannot corrupt the slot.
func (f *FileStore) Save(s Snapshot) error {
	// Snapshot contains only JSON-safe types, so Marshal cannot fail
	data, _ := json.MarshalIndent(s, "", "  ")

	tmpFile := f.path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmpFile, f.path)
}

// Load reads the snapshot, returning nil when the file does not exist.
func (f *FileStore) Load() (*Snapshot, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Clear removes the snapshot file if present.
func (f *FileStore) Clear() error {
	err := os.Remove(f.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
