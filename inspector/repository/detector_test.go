package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetector_DetectProject(t *testing.T) {
	tests := []struct {
		description string
		manifest    string
		expectName  string
	}{
		{
			description: "package name",
			manifest:    "[package]\nname = \"hello-wasm\"\nversion = \"0.1.0\"\n\n[lib]\ncrate-type = [\"cdylib\"]\n",
			expectName:  "hello-wasm",
		},
		{
			description: "single quoted name",
			manifest:    "[package]\nversion = '0.1.0'\nname = 'bindings'\n",
			expectName:  "bindings",
		},
		{
			description: "workspace manifest falls back to directory",
			manifest:    "[workspace]\nmembers = [\"a\"]\n",
			expectName:  "crate",
		},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			root := filepath.Join(t.TempDir(), "crate")
			src := filepath.Join(root, "src", "bindings")
			require.NoError(t, os.MkdirAll(src, 0o755))
			require.NoError(t, os.WriteFile(filepath.Join(root, cargoManifest), []byte(tc.manifest), 0o644))
			location := filepath.Join(src, "lib.rs")
			require.NoError(t, os.WriteFile(location, []byte("pub fn f() {}\n"), 0o644))

			project, err := New().DetectProject(context.Background(), location)
			require.NoError(t, err)
			assert.Equal(t, "rust", project.Type)
			assert.Equal(t, tc.expectName, project.Name)
			assert.Equal(t, root, project.RootPath)
			assert.Equal(t, "src/bindings/lib.rs", project.RelativePath)
		})
	}
}

func TestDetector_DetectProject_Missing(t *testing.T) {
	_, err := New().DetectProject(context.Background(), filepath.Join(t.TempDir(), "missing.rs"))
	assert.Error(t, err)
}
