package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"reflectc/internal/diag"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"demo\"\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	path, ok, err := FindManifest(nested)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, filepath.Join(root, ManifestName), path)

	dir, ok, err := FindProjectRoot(nested)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, root, dir)
}

func TestFindManifestStopsAtRepository(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"outer\"\n")
	repo := filepath.Join(root, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))
	nested := filepath.Join(repo, "shaders")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	_, ok, err := FindManifest(nested)
	require.NoError(t, err)
	require.False(t, ok)

	writeManifest(t, repo, "[package]\nname = \"inner\"\n")
	path, ok, err := FindManifest(nested)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, filepath.Join(repo, ManifestName), path)
}

func TestLoadDefaults(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"demo\"\n")

	m, ok, err := Load(root)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "demo", m.Config.Package.Name)
	require.Equal(t, []string{"."}, m.Config.Reflect.Sources)
	require.EqualValues(t, 8, m.Config.Reflect.PointerSize)
	require.Equal(t, "pretty", m.Config.Output.Format)
	require.Equal(t, []string{root}, m.SourcePaths())
}

func TestLoadFull(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, `
[package]
name = "shaders"

[reflect]
sources = ["include", "shared", "include"]
extensions = [".hlsli"]
default_register = 2
max_depth = 32
pointer_size = 4

[output]
format = "hlsl-cbuffer"
`)
	m, err := LoadFile(filepath.Join(root, ManifestName))
	require.NoError(t, err)
	require.Equal(t, []string{".hlsli"}, m.Config.Reflect.Extensions)
	require.EqualValues(t, 2, m.Config.Reflect.DefaultRegister)
	require.Equal(t, 32, m.Config.Reflect.MaxDepth)
	require.EqualValues(t, 4, m.Config.Reflect.PointerSize)
	require.Equal(t, "hlsl-cbuffer", m.Config.Output.Format)
	require.Equal(t, []string{filepath.Join(root, "include"), filepath.Join(root, "shared")}, m.SourcePaths())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    diag.Code
	}{
		{"syntax", "[package\n", diag.ProjInvalidManifest},
		{"no package", "[reflect]\nmax_depth = 3\n", diag.ProjMissingName},
		{"empty name", "[package]\nname = \"  \"\n", diag.ProjMissingName},
		{"unknown key", "[package]\nname = \"x\"\nversion = 3\n", diag.ProjInvalidManifest},
		{"pointer size", "[package]\nname = \"x\"\n[reflect]\npointer_size = 2\n", diag.ProjInvalidManifest},
		{"extension", "[package]\nname = \"x\"\n[reflect]\nextensions = [\"h\"]\n", diag.ProjInvalidManifest},
		{"negative depth", "[package]\nname = \"x\"\n[reflect]\nmax_depth = -1\n", diag.ProjInvalidManifest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), tt.content)
			_, err := LoadFile(path)
			require.Error(t, err)
			var merr *ManifestError
			require.True(t, errors.As(err, &merr))
			require.Equal(t, tt.code, merr.Code)
			require.Equal(t, path, merr.Path)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	dir := t.TempDir()
	// .git ограничивает поиск, чужой reflect.toml выше не найдётся
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	m, ok, err := Load(dir)
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, m)
}

func TestInitRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "proj")
	path, err := Init(dir, "proj")
	require.NoError(t, err)

	m, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfig("proj"), m.Config)

	_, err = Init(dir, "proj")
	require.Error(t, err)
}
