// Package modelstore persists trained model artifacts as versioned JSON
// files named {name}__{version}.json, plus an explicit CURRENT pointer
// naming the published version.
package modelstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	// ErrNotFound means no artifact exists at the requested (name, version).
	ErrNotFound = errors.New("model artifact not found")

	// ErrVersionExists rejects a save that would overwrite an existing
	// artifact without explicit consent.
	ErrVersionExists = errors.New("model artifact version already exists")
)

const (
	artifactExt        = ".json"
	currentPointerFile = "CURRENT"
)

type Store struct {
	dir string
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

// artifactFile is the on-disk triple. Model is mandatory; Calibrator is
// optional (the EP artifact has none).
type artifactFile struct {
	Model      json.RawMessage    `json:"model"`
	Calibrator json.RawMessage    `json:"calibrator,omitempty"`
	Metadata   map[string]float64 `json:"metadata"`
}

func (s *Store) path(name, version string) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s__%s%s", name, version, artifactExt))
}

// Save persists (model, calibrator, metadata) under (name, version),
// creating the storage directory if absent. An existing artifact at the
// same key is refused unless overwrite is set; republishing a version is
// an explicit decision, never an accident.
func (s *Store) Save(name, version string, model, calibrator any, metadata map[string]float64, overwrite bool) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create models dir: %w", err)
	}

	fpath := s.path(name, version)
	if !overwrite {
		if _, err := os.Stat(fpath); err == nil {
			return "", fmt.Errorf("%w: %s@%s", ErrVersionExists, name, version)
		}
	}

	file := artifactFile{Metadata: metadata}

	rawModel, err := json.Marshal(model)
	if err != nil {
		return "", fmt.Errorf("marshal model %s@%s: %w", name, version, err)
	}
	file.Model = rawModel

	if calibrator != nil {
		rawCal, err := json.Marshal(calibrator)
		if err != nil {
			return "", fmt.Errorf("marshal calibrator %s@%s: %w", name, version, err)
		}
		file.Calibrator = rawCal
	}

	raw, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal artifact %s@%s: %w", name, version, err)
	}

	if err := atomicWrite(fpath, raw); err != nil {
		return "", fmt.Errorf("write artifact %s@%s: %w", name, version, err)
	}
	return fpath, nil
}

// Load decodes the artifact at (name, version) into the given model and
// calibrator pointers. Pass a nil calibrator for artifacts that have none.
// The triple is never returned partially populated: any decode failure,
// or a missing calibrator when one was requested, fails the whole load.
func (s *Store) Load(name, version string, model, calibrator any) (map[string]float64, error) {
	raw, err := os.ReadFile(s.path(name, version))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s@%s", ErrNotFound, name, version)
		}
		return nil, fmt.Errorf("read artifact %s@%s: %w", name, version, err)
	}

	var file artifactFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode artifact %s@%s: %w", name, version, err)
	}

	if len(file.Model) == 0 {
		return nil, fmt.Errorf("artifact %s@%s has no model payload", name, version)
	}
	if model != nil {
		if err := json.Unmarshal(file.Model, model); err != nil {
			return nil, fmt.Errorf("decode model %s@%s: %w", name, version, err)
		}
	}

	if calibrator != nil {
		if len(file.Calibrator) == 0 {
			return nil, fmt.Errorf("artifact %s@%s has no calibrator payload", name, version)
		}
		if err := json.Unmarshal(file.Calibrator, calibrator); err != nil {
			return nil, fmt.Errorf("decode calibrator %s@%s: %w", name, version, err)
		}
	}

	return file.Metadata, nil
}

// SetCurrentVersion atomically publishes the version serving should
// resolve when no explicit version is requested.
func (s *Store) SetCurrentVersion(version string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create models dir: %w", err)
	}
	if err := atomicWrite(filepath.Join(s.dir, currentPointerFile), []byte(version+"\n")); err != nil {
		return fmt.Errorf("write current version pointer: %w", err)
	}
	return nil
}

// CurrentVersion resolves the published version. The CURRENT pointer is
// authoritative; scanning the directory for the lexicographically last
// artifact survives only as a fallback for stores written before the
// pointer existed.
func (s *Store) CurrentVersion() (string, error) {
	raw, err := os.ReadFile(filepath.Join(s.dir, currentPointerFile))
	if err == nil {
		version := strings.TrimSpace(string(raw))
		if version != "" {
			return version, nil
		}
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("read current version pointer: %w", err)
	}

	versions, err := s.Versions()
	if err != nil {
		return "", err
	}
	if len(versions) == 0 {
		return "", fmt.Errorf("%w: no artifacts in %s", ErrNotFound, s.dir)
	}
	return versions[len(versions)-1], nil
}

// Versions lists the distinct version tokens on disk, sorted.
func (s *Store) Versions() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read models dir: %w", err)
	}

	seen := map[string]struct{}{}
	for _, entry := range entries {
		fname := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(fname, artifactExt) {
			continue
		}
		parts := strings.SplitN(strings.TrimSuffix(fname, artifactExt), "__", 2)
		if len(parts) != 2 || parts[1] == "" {
			continue
		}
		seen[parts[1]] = struct{}{}
	}

	versions := make([]string, 0, len(seen))
	for v := range seen {
		versions = append(versions, v)
	}
	sort.Strings(versions)
	return versions, nil
}

func atomicWrite(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
