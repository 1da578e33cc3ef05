package exports

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Sai2211201144/learn-ai-2/internal/constants"
	"github.com/Sai2211201144/learn-ai-2/internal/logger"
	"github.com/Sai2211201144/learn-ai-2/internal/models"
)

var ErrInvalidExport = errors.New("invalid export")

// Bundle is the full-state JSON document written by export and read by import.
type Bundle struct {
	Version    int            `json:"version"`
	ExportedAt time.Time      `json:"exported_at"`
	Profile    models.Profile `json:"profile"`
	Data       models.AppData `json:"data"`
}

// Info describes an export file on disk.
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager writes, lists and rotates exports in a single directory.
type Manager struct {
	dir string
	now func() time.Time
}

// NewManager creates a manager that keeps exports in the exports directory
// under configDir.
func NewManager(configDir string) *Manager {
	return &Manager{
		dir: filepath.Join(configDir, constants.ExportDirName),
		now: time.Now,
	}
}

func (m *Manager) Dir() string {
	return m.dir
}

// NewBundle wraps a snapshot for export.
func NewBundle(profile models.Profile, data models.AppData, now time.Time) Bundle {
	return Bundle{
		Version:    constants.ExportVersion,
		ExportedAt: now.UTC(),
		Profile:    profile,
		Data:       data,
	}
}

// Encode serializes a bundle as indented JSON.
func Encode(b Bundle) ([]byte, error) {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize export: %w", err)
	}
	return data, nil
}

// Decode parses and validates an export. The returned data is normalized.
func Decode(raw []byte) (Bundle, error) {
	var shape map[string]json.RawMessage
	if err := json.Unmarshal(raw, &shape); err != nil {
		return Bundle{}, fmt.Errorf("%w: %v", ErrInvalidExport, err)
	}
	for _, key := range []string{"version", "data"} {
		if _, ok := shape[key]; !ok {
			return Bundle{}, fmt.Errorf("%w: missing %q", ErrInvalidExport, key)
		}
	}

	var b Bundle
	if err := json.Unmarshal(raw, &b); err != nil {
		return Bundle{}, fmt.Errorf("%w: %v", ErrInvalidExport, err)
	}
	if b.Version < 1 || b.Version > constants.ExportVersion {
		return Bundle{}, fmt.Errorf("%w: unsupported version %d", ErrInvalidExport, b.Version)
	}

	b.Data.Normalize()
	return b, nil
}

// Read loads and validates an export file.
func Read(path string) (Bundle, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Bundle{}, fmt.Errorf("failed to read export: %w", err)
	}
	return Decode(raw)
}

// WriteFile writes a bundle to an explicit path.
func WriteFile(path string, b Bundle) error {
	data, err := Encode(b)
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

// Write stores a timestamped export and rotates old ones.
func (m *Manager) Write(b Bundle) (string, error) {
	if err := os.MkdirAll(m.dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create exports directory: %w", err)
	}

	path, err := m.nextPath()
	if err != nil {
		return "", err
	}
	if err := WriteFile(path, b); err != nil {
		return "", err
	}

	if err := m.rotate(); err != nil {
		logger.Warn("Failed to rotate old exports", "error", err)
	}
	return path, nil
}

func fileName(stamp string) string {
	return constants.ExportFilePrefix + stamp + constants.ExportFileSuffix
}

// nextPath returns an unused file name, widening the timestamp to seconds
// and then adding a counter on collision.
func (m *Manager) nextPath() (string, error) {
	now := m.now()
	path := filepath.Join(m.dir, fileName(now.Format("20060102-1504")))
	if !exists(path) {
		return path, nil
	}

	stamp := now.Format("20060102-150405")
	path = filepath.Join(m.dir, fileName(stamp))
	for counter := 1; exists(path); counter++ {
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique export filename")
		}
		path = filepath.Join(m.dir, fileName(fmt.Sprintf("%s-%d", stamp, counter)))
	}
	return path, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// parseStamp extracts the timestamp from an export file name, ignoring a
// trailing collision counter.
func parseStamp(name string) (time.Time, bool) {
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.ExportFilePrefix), constants.ExportFileSuffix)

	parts := strings.Split(stamp, "-")
	if len(parts) > 2 {
		stamp = strings.Join(parts[:2], "-")
	}

	for _, layout := range []string{"20060102-1504", "20060102-150405"} {
		if ts, err := time.Parse(layout, stamp); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// List returns all exports, newest first.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.dir)
	if os.IsNotExist(err) {
		return []Info{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read exports directory: %w", err)
	}

	var exports []Info
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, constants.ExportFilePrefix) || !strings.HasSuffix(name, constants.ExportFileSuffix) {
			continue
		}

		ts, ok := parseStamp(name)
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}

		exports = append(exports, Info{
			Path:      filepath.Join(m.dir, name),
			Timestamp: ts,
			Size:      info.Size(),
		})
	}

	sort.SliceStable(exports, func(i, j int) bool {
		if exports[i].Timestamp.Equal(exports[j].Timestamp) {
			return exports[i].Path > exports[j].Path
		}
		return exports[i].Timestamp.After(exports[j].Timestamp)
	})
	return exports, nil
}

// Latest returns the newest export.
func (m *Manager) Latest() (Info, error) {
	exports, err := m.List()
	if err != nil {
		return Info{}, err
	}
	if len(exports) == 0 {
		return Info{}, fmt.Errorf("no exports found in %s", m.dir)
	}
	return exports[0], nil
}

func (m *Manager) rotate() error {
	exports, err := m.List()
	if err != nil {
		return err
	}

	for i := constants.MaxExports; i < len(exports); i++ {
		if err := os.Remove(exports[i].Path); err != nil {
			return fmt.Errorf("failed to remove old export %s: %w", exports[i].Path, err)
		}
	}
	return nil
}
