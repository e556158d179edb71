package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const settingsVersion = "1.0"

// Settings persists user path overrides to a small JSON file. A missing or
// invalid file is replaced with defaults rather than failing.
type Settings struct {
	Version   string            `json:"version"`
	Paths     map[string]string `json:"paths"`
	CreatedAt string            `json:"created_at"`
	UpdatedAt string            `json:"updated_at"`

	path string
}

// DefaultSettingsPath returns the standard config file location.
func DefaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.json"
	}
	return filepath.Join(home, ".aichat-export", "config.json")
}

// LoadSettings reads the settings file, creating defaults when the file is
// missing or malformed.
func LoadSettings(path string) *Settings {
	s := defaultSettings(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}

	var loaded Settings
	if err := json.Unmarshal(data, &loaded); err != nil || loaded.Paths == nil {
		return s
	}

	s.Version = loaded.Version
	s.CreatedAt = loaded.CreatedAt
	s.UpdatedAt = loaded.UpdatedAt
	for _, spec := range Hosts {
		if p, ok := loaded.Paths[string(spec.ID)]; ok {
			s.Paths[string(spec.ID)] = p
		}
	}
	return s
}

func defaultSettings(path string) *Settings {
	now := time.Now().Format(time.RFC3339)
	paths := make(map[string]string, len(Hosts))
	for _, spec := range Hosts {
		paths[string(spec.ID)] = ""
	}
	return &Settings{
		Version:   settingsVersion,
		Paths:     paths,
		CreatedAt: now,
		UpdatedAt: now,
		path:      path,
	}
}

// PathFor returns the override for a host, empty when unset.
func (s *Settings) PathFor(host HostID) string {
	return s.Paths[string(host)]
}

// SetPath stores an override and persists the file.
func (s *Settings) SetPath(host HostID, path string) error {
	if _, ok := HostByID(string(host)); !ok {
		return fmt.Errorf("unknown source: %s", host)
	}
	s.Paths[string(host)] = path
	return s.save()
}

// Reset clears every override and persists the file.
func (s *Settings) Reset() error {
	for _, spec := range Hosts {
		s.Paths[string(spec.ID)] = ""
	}
	return s.save()
}

// save writes atomically: temp file in the same directory, then rename.
func (s *Settings) save() error {
	s.UpdatedAt = time.Now().Format(time.RFC3339)

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "config-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
