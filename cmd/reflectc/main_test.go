package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"reflectc/internal/project"
)

const fooSrc = "struct Foo { float3 position; float2 uv; };\n"

func execCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	code := run(root, append([]string{"--color=off"}, args...))
	return code, stdout.String(), stderr.String()
}

func writeHeader(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReflectFile(t *testing.T) {
	path := writeHeader(t, t.TempDir(), "foo.h", fooSrc)

	code, out, errOut := execCLI(t, "reflect", "--format", "hlsl-structured", path)
	require.Equal(t, 0, code, errOut)
	require.Equal(t, "struct Foo { float3 position; float2 uv; };\n", out)
	require.Empty(t, errOut)
}

func TestReflectBrokenFile(t *testing.T) {
	path := writeHeader(t, t.TempDir(), "broken.h", "struct Broken { float3 a;\n")

	code, _, errOut := execCLI(t, "reflect", path)
	require.Equal(t, 1, code)
	require.Contains(t, errOut, "ERROR")
	require.Contains(t, errOut, "broken.h")
}

func TestReflectDirectoryJSON(t *testing.T) {
	dir := t.TempDir()
	writeHeader(t, dir, "a.h", fooSrc)
	writeHeader(t, dir, "sub/b.hpp", "struct Bar { float4 color; };\n")
	writeHeader(t, dir, "notes.txt", "not a header")

	code, out, errOut := execCLI(t, "reflect", "--format", "json", "--ui", "off", "--jobs", "2", dir)
	require.Equal(t, 0, code, errOut)
	require.Contains(t, out, `"type": "Foo"`)
	require.Contains(t, out, `"type": "Bar"`)
	require.Equal(t, 2, strings.Count(out, `"source":`))
}

func TestReflectUsesManifest(t *testing.T) {
	dir := t.TempDir()
	writeHeader(t, dir, project.ManifestName, `
[package]
name = "demo"

[reflect]
sources = ["include"]
default_register = 4

[output]
format = "hlsl-cbuffer"
`)
	writeHeader(t, dir, "include/foo.h", fooSrc)
	t.Chdir(dir)

	code, out, errOut := execCLI(t, "reflect")
	require.Equal(t, 0, code, errOut)
	require.Equal(t, "cbuffer Foo : register(b4) { float3 position; float2 uv; };\n", out)

	code, out, errOut = execCLI(t, "reflect", "--register", "1")
	require.Equal(t, 0, code, errOut)
	require.Contains(t, out, "register(b1)")
}

func TestReflectWithoutInputs(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, ok, _ := project.FindManifest("."); ok {
		t.Skip("a reflect.toml exists above the temp dir")
	}
	code, _, errOut := execCLI(t, "reflect")
	require.Equal(t, 1, code)
	require.Contains(t, errOut, "no inputs given")
}

func TestReflectCacheDir(t *testing.T) {
	dir := t.TempDir()
	path := writeHeader(t, dir, "foo.h", fooSrc)
	cacheDir := filepath.Join(dir, "cache")

	for range 2 {
		code, out, errOut := execCLI(t, "reflect", "--cache-dir", cacheDir, "--format", "hlsl-struct", path)
		require.Equal(t, 0, code, errOut)
		require.Equal(t, "struct Foo { float3 position : POSITION; float2 uv : UV; };\n", out)
	}
	entries, err := os.ReadDir(filepath.Join(cacheDir, "units"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestReflectInvalidFlags(t *testing.T) {
	path := writeHeader(t, t.TempDir(), "foo.h", fooSrc)

	code, _, errOut := execCLI(t, "reflect", "--format", "yaml", path)
	require.Equal(t, 1, code)
	require.Contains(t, errOut, "invalid output format")

	code, _, errOut = execCLI(t, "reflect", "--ui", "sometimes", path)
	require.Equal(t, 1, code)
	require.Contains(t, errOut, "invalid --ui value")

	code, _, errOut = execCLI(t, "reflect", "--pointer-size", "2", path)
	require.Equal(t, 1, code)
	require.Contains(t, errOut, "invalid --pointer-size")
}

func TestReflectDiagnosticsJSON(t *testing.T) {
	path := writeHeader(t, t.TempDir(), "foo.h", fooSrc)

	code, _, errOut := execCLI(t, "--timings", "--diag-format", "json", "reflect", path)
	require.Equal(t, 0, code)
	require.Contains(t, errOut, "OBS6001")
}

func TestTokenizeJSON(t *testing.T) {
	path := writeHeader(t, t.TempDir(), "foo.h", fooSrc)

	code, out, errOut := execCLI(t, "tokenize", "--format", "json", path)
	require.Equal(t, 0, code, errOut)
	require.Contains(t, out, `"text": "position"`)
}

func TestParseTree(t *testing.T) {
	path := writeHeader(t, t.TempDir(), "foo.h", fooSrc)

	code, out, errOut := execCLI(t, "parse", path)
	require.Equal(t, 0, code, errOut)
	require.Contains(t, out, "Struct")
	require.Contains(t, out, "MemberVariable")

	code, _, _ = execCLI(t, "parse", "--format", "svg", path)
	require.Equal(t, 1, code)
}

func TestInitCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shaders")

	code, out, errOut := execCLI(t, "init", dir)
	require.Equal(t, 0, code, errOut)
	require.Contains(t, out, project.ManifestName)

	m, err := project.LoadFile(filepath.Join(dir, project.ManifestName))
	require.NoError(t, err)
	require.Equal(t, "shaders", m.Config.Package.Name)

	code, _, errOut = execCLI(t, "init", dir)
	require.Equal(t, 1, code)
	require.Contains(t, errOut, "already initialized")
}

func TestVersionJSON(t *testing.T) {
	code, out, _ := execCLI(t, "version", "--format", "json", "--full")
	require.Equal(t, 0, code)
	require.Contains(t, out, `"tool": "reflectc"`)
	require.Contains(t, out, `"git_commit": "unknown"`)
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, "on": uiModeOn, " off ": uiModeOff} {
		got, err := readUIMode(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := readUIMode("maybe")
	require.Error(t, err)
}

func TestDisplayPath(t *testing.T) {
	base := filepath.Join(string(filepath.Separator), "work")
	require.Equal(t, "inc/a.h", displayPath(base, filepath.Join(base, "inc", "a.h")))
	require.Equal(t, "rel/a.h", displayPath(base, filepath.Join("rel", "a.h")))
}

func TestProfilingFlags(t *testing.T) {
	dir := t.TempDir()
	path := writeHeader(t, dir, "foo.h", fooSrc)
	cpu := filepath.Join(dir, "cpu.pprof")
	mem := filepath.Join(dir, "mem.pprof")

	code, _, errOut := execCLI(t, "--cpu-profile", cpu, "--mem-profile", mem, "reflect", path)
	require.Equal(t, 0, code, errOut)
	require.FileExists(t, cpu)
	require.FileExists(t, mem)
}

func TestTraceToFile(t *testing.T) {
	dir := t.TempDir()
	path := writeHeader(t, dir, "foo.h", fooSrc)
	traceOut := filepath.Join(dir, "trace.ndjson")

	code, _, errOut := execCLI(t, "--trace", traceOut, "--trace-level", "detail", "reflect", path)
	require.Equal(t, 0, code, errOut)
	data, err := os.ReadFile(traceOut)
	require.NoError(t, err)
	require.Contains(t, string(data), `"reflect"`)
}
