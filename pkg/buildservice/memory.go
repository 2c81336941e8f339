// Package buildservice implements tasks.BuildService against an in-memory
// catalog or a remote build service.
package buildservice

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sadanandam5592/orca/pkg/models"
	"github.com/sadanandam5592/orca/pkg/store"
)

var ErrBuildNotFound = errors.New("buildservice: build not found")

// Build is one entry of an artifacts catalog file.
type Build struct {
	Master      string            `yaml:"master" validate:"required"`
	Job         string            `yaml:"job" validate:"required"`
	BuildNumber int               `yaml:"buildNumber" validate:"gt=0"`
	Artifacts   []models.Artifact `yaml:"artifacts"`
}

// Memory serves artifacts registered with Add.
type Memory struct {
	builds store.Store[[]models.Artifact]
}

func NewMemory() *Memory {
	return &Memory{builds: store.NewMemStore[[]models.Artifact]()}
}

// LoadMemory reads a YAML list of builds into a new Memory service.
func LoadMemory(path string) (*Memory, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	var builds []Build
	if err := yaml.Unmarshal(contents, &builds); err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", path, err)
	}

	m := NewMemory()
	for i, b := range builds {
		if err := models.Validate(b); err != nil {
			return nil, fmt.Errorf("build %d in %s: %w", i, path, err)
		}
		if err := m.Add(b.Master, b.Job, b.BuildNumber, b.Artifacts); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Memory) Add(master, job string, buildNumber int, artifacts []models.Artifact) error {
	k := buildKey(master, job, buildNumber)
	if err := m.builds.Set(k, artifacts); err != nil {
		return fmt.Errorf("could not register build %s: %w", k, err)
	}
	return nil
}

func (m *Memory) GetArtifacts(_ context.Context, buildNumber int, _, master, job string) ([]models.Artifact, error) {
	k := buildKey(master, job, buildNumber)
	artifacts, err := m.builds.Get(k)
	if errors.Is(err, store.ErrKeyDoesntExist) {
		return nil, fmt.Errorf("%w: %s", ErrBuildNotFound, k)
	}
	return artifacts, err
}

func buildKey(master, job string, buildNumber int) string {
	return fmt.Sprintf("%s/%s/%d", master, job, buildNumber)
}
