package repository

import (
	"context"
	"os"
	"path/filepath"
	"regexp"

	"github.com/viant/afs"
)

const cargoManifest = "Cargo.toml"

var nameRegex = regexp.MustCompile(`\[package\](?:.|\n)*?name\s*=\s*["']([^"']+)["']`)

// Detector identifies crate root folders
type Detector struct {
	fs afs.Service
}

// New creates a new crate detector instance
func New() *Detector {
	return &Detector{fs: afs.New()}
}

// DetectProject identifies the crate root for the given file path and returns project info
func (d *Detector) DetectProject(ctx context.Context, filePath string) (*Project, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, err
	}

	// If it's a file, start from its parent directory
	startDir := absPath
	fileInfo, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	if !fileInfo.IsDir() {
		startDir = filepath.Dir(absPath)
	}

	info := &Project{
		Type:     "unknown",
		RootPath: startDir,
	}
	if rootPath := d.findProjectRoot(startDir); rootPath != "" {
		info.RootPath = rootPath
		info.Type = "rust"
		info.Name = d.extractCargoProjectName(ctx, filepath.Join(rootPath, cargoManifest))
	}

	relPath, err := filepath.Rel(info.RootPath, absPath)
	if err != nil {
		relPath = filepath.Base(absPath)
	}
	info.RelativePath = filepath.ToSlash(relPath)
	return info, nil
}

// findProjectRoot searches up from the current directory for the crate manifest
func (d *Detector) findProjectRoot(startDir string) string {
	dir := startDir
	for {
		if _, err := os.Stat(filepath.Join(dir, cargoManifest)); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

func (d *Detector) extractCargoProjectName(ctx context.Context, cargoPath string) string {
	data, err := d.fs.DownloadWithURL(ctx, cargoPath)
	if err != nil {
		return filepath.Base(filepath.Dir(cargoPath))
	}
	matches := nameRegex.FindSubmatch(data)
	if len(matches) < 2 {
		return filepath.Base(filepath.Dir(cargoPath))
	}
	return string(matches[1])
}
