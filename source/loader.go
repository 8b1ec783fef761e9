package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"github.com/viant/wasmguard/inspector"
	"github.com/viant/wasmguard/inspector/repository"
)

// Loader discovers and reads source units
type Loader struct {
	fs       afs.Service
	factory  *inspector.Factory
	detector *repository.Detector
	skipDirs map[string]bool
}

// NewLoader creates a loader skipping build output and hidden directories
func NewLoader() *Loader {
	return &Loader{
		fs:       afs.New(),
		factory:  inspector.NewFactory(nil),
		detector: repository.New(),
		skipDirs: map[string]bool{"target": true, "node_modules": true},
	}
}

// Load returns units for a source file or every supported file under a directory, sorted by ID
func (l *Loader) Load(ctx context.Context, location string) ([]*Unit, error) {
	absPath, err := filepath.Abs(location)
	if err != nil {
		return nil, err
	}
	object, err := l.fs.Object(ctx, absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to locate %s: %w", location, err)
	}
	if !object.IsDir() {
		if !l.factory.Supports(location) {
			return nil, fmt.Errorf("unsupported source file: %s", location)
		}
		unit := l.newUnit(ctx, location, nil)
		if unit.Content, err = l.fs.DownloadWithURL(ctx, absPath); err != nil {
			unit.Err = fmt.Errorf("failed to read %s: %w", location, err)
		}
		return []*Unit{unit}, nil
	}

	var units []*Unit
	err = l.fs.Walk(ctx, absPath, func(ctx context.Context, baseURL string, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if info.IsDir() || l.skipped(parent) || !l.factory.Supports(info.Name()) {
			return true, nil
		}
		id := filepath.Join(location, filepath.FromSlash(parent), info.Name())
		unit := l.newUnit(ctx, id, nil)
		unit.Content, unit.Err = l.read(ctx, url.Join(baseURL, parent, info.Name()), reader)
		units = append(units, unit)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(units, func(i, j int) bool {
		return units[i].ID < units[j].ID
	})
	return units, nil
}

// LoadAll loads every location, preserving order and removing duplicates
func (l *Loader) LoadAll(ctx context.Context, locations ...string) ([]*Unit, error) {
	var result []*Unit
	seen := map[string]bool{}
	for _, location := range locations {
		units, err := l.Load(ctx, location)
		if err != nil {
			return nil, err
		}
		for _, unit := range units {
			if seen[unit.ID] {
				continue
			}
			seen[unit.ID] = true
			result = append(result, unit)
		}
	}
	return result, nil
}

func (l *Loader) read(ctx context.Context, URL string, reader io.Reader) ([]byte, error) {
	if reader == nil {
		return l.fs.DownloadWithURL(ctx, URL)
	}
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", URL, err)
	}
	return content, nil
}

func (l *Loader) skipped(parent string) bool {
	for _, segment := range strings.Split(filepath.ToSlash(parent), "/") {
		if l.skipDirs[segment] || (len(segment) > 1 && strings.HasPrefix(segment, ".")) {
			return true
		}
	}
	return false
}

func (l *Loader) newUnit(ctx context.Context, id string, content []byte) *Unit {
	unit := NewUnit(filepath.ToSlash(filepath.Clean(id)), content)
	if project, err := l.detector.DetectProject(ctx, id); err == nil && project.Type == "rust" {
		unit.Crate = project.Name
	}
	return unit
}
