package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Sai2211201144/learn-ai-2/internal/models"
)

const jsonStoreVersion = 1

type document struct {
	Version  int                        `json:"version"`
	Profiles map[string]models.Profile  `json:"profiles"`
	Data     map[string]json.RawMessage `json:"data"`
	Settings map[string]string          `json:"settings"`
}

// JSONStore keeps every profile and snapshot in a single JSON file, the
// same shape a browser local-storage adapter would hold.
type JSONStore struct {
	mu   sync.Mutex
	path string
	doc  *document
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path: path,
	}
}

func newDocument() *document {
	return &document{
		Version:  jsonStoreVersion,
		Profiles: make(map[string]models.Profile),
		Data:     make(map[string]json.RawMessage),
		Settings: make(map[string]string),
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = newDocument()
	return s.save()
}

func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := newDocument()
	if err := json.Unmarshal(raw, doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Version > jsonStoreVersion {
		return fmt.Errorf("storage version %d is newer than supported version %d", doc.Version, jsonStoreVersion)
	}

	if doc.Profiles == nil {
		doc.Profiles = make(map[string]models.Profile)
	}
	if doc.Data == nil {
		doc.Data = make(map[string]json.RawMessage)
	}
	if doc.Settings == nil {
		doc.Settings = make(map[string]string)
	}
	s.doc = doc
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// save writes the document atomically. Callers hold s.mu.
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) GetOrCreateProfile(_ context.Context, profile models.Profile) (models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return models.Profile{}, fmt.Errorf("storage not loaded")
	}
	if profile.ID == "" {
		return models.Profile{}, fmt.Errorf("profile id cannot be empty")
	}

	if stored, ok := s.doc.Profiles[profile.ID]; ok {
		if stored.Name == "" {
			stored.Name = models.DefaultProfileName
		}
		return stored, nil
	}

	if profile.Name == "" {
		profile.Name = models.DefaultProfileName
	}
	initial, err := json.Marshal(models.InitialAppData())
	if err != nil {
		return models.Profile{}, err
	}
	s.doc.Profiles[profile.ID] = profile
	s.doc.Data[profile.ID] = initial

	if err := s.save(); err != nil {
		delete(s.doc.Profiles, profile.ID)
		delete(s.doc.Data, profile.ID)
		return models.Profile{}, err
	}
	return profile, nil
}

func (s *JSONStore) LoadAppData(_ context.Context, userID string) (models.AppData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return models.AppData{}, fmt.Errorf("storage not loaded")
	}
	raw, ok := s.doc.Data[userID]
	if !ok {
		return models.InitialAppData(), nil
	}
	return models.ParseAppData(raw)
}

func (s *JSONStore) SaveAppData(_ context.Context, userID string, data models.AppData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to serialize app data: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	if _, ok := s.doc.Profiles[userID]; !ok {
		return fmt.Errorf("user %s: %w", userID, ErrProfileNotFound)
	}

	prev, hadPrev := s.doc.Data[userID]
	s.doc.Data[userID] = raw
	if err := s.save(); err != nil {
		if hadPrev {
			s.doc.Data[userID] = prev
		} else {
			delete(s.doc.Data, userID)
		}
		return fmt.Errorf("failed to save app data: %w", err)
	}
	return nil
}

func (s *JSONStore) GetSetting(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return "", false, fmt.Errorf("storage not loaded")
	}
	value, ok := s.doc.Settings[key]
	return value, ok, nil
}

func (s *JSONStore) SaveSetting(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.doc.Settings[key] = value
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
