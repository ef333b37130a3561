package config

import (
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Settings is the exposed configuration surface.
type Settings struct {
	// SourceName is the monitored source. Empty means nothing to monitor.
	SourceName string `yaml:"source_name"`

	// PreferHookSignals wires capture-hook signals in addition to the
	// generic activate/show set.
	PreferHookSignals bool `yaml:"prefer_hook_signals"`

	// PlaySoundOnSave enables the saved-segment sound.
	PlaySoundOnSave bool `yaml:"play_sound_on_save"`

	// SoundPath is the local audio file played on save.
	SoundPath string `yaml:"sound_path"`
}

// Default returns the default settings.
func Default() Settings {
	return Settings{
		PreferHookSignals: true,
	}
}

// Store persists settings to a YAML file.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a settings store for the given path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads settings from disk.
// Returns defaults if the file doesn't exist.
func (s *Store) Load() (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Default(), err
	}

	settings := Default()
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Default(), err
	}
	return settings, nil
}

// Save persists settings to disk, creating parent directories as needed.
func (s *Store) Save(settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}
