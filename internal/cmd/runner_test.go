package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := Run(append([]string{"--color", "never"}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunPrintsTokens(t *testing.T) {
	path := writeFile(t, t.TempDir(), "main.mc", "let x = 5;")

	code, stdout, stderr := run(path)
	assert.Equal(t, ExitOK, code)
	assert.Empty(t, stderr)
	assert.Equal(t,
		"1:1\tKEYWORD\t\"let\"\tDefine\n"+
			"1:5\tIDENTIFIER\t\"x\"\t\"x\"\n"+
			"1:7\tOPERATOR\t\"=\"\tAssign\n"+
			"1:9\tNUMBER\t\"5\"\t5\n"+
			"1:10\tOPERATOR\t\";\"\tEndLine\n",
		stdout)
}

func TestRunKeepIgnored(t *testing.T) {
	path := writeFile(t, t.TempDir(), "main.mc", "x // c")

	code, stdout, _ := run("--keep-ignored", path)
	assert.Equal(t, ExitOK, code)
	assert.Equal(t,
		"1:1\tIDENTIFIER\t\"x\"\t\"x\"\n"+
			"1:2\tIGNORE\t\" \"\n"+
			"1:3\tIGNORE\t\"// c\"\n",
		stdout)
}

func TestRunReportsErrors(t *testing.T) {
	path := writeFile(t, t.TempDir(), "main.mc", "fnc add() {}\n")

	code, stdout, stderr := run(path)
	assert.Equal(t, ExitErrors, code)
	assert.Contains(t, stdout, "1:1\tUNKNOWN\t\"fnc\"\n")
	assert.Contains(t, stderr, "error[L0002]: invalid keyword `fnc`")
	assert.Contains(t, stderr, "did you mean `func`?")
	assert.Contains(t, stderr, "Lexing failed with 1 error(s)")
}

func TestRunStrictPrintsNoTokens(t *testing.T) {
	path := writeFile(t, t.TempDir(), "main.mc", "let a = 1 @ 2;")

	code, stdout, stderr := run("--strict", path)
	assert.Equal(t, ExitErrors, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "error[L0003]: unknown token `@`")
}

func TestRunConfigFile(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "main.mc", "let a = 1 @ 2;")
	cfg := writeFile(t, dir, "minic.yaml", "mode: strict\n")

	code, stdout, _ := run("--config", cfg, src)
	assert.Equal(t, ExitErrors, code)
	assert.Empty(t, stdout)

	// an explicit flag overrides the file
	code, stdout, _ = run("--config", cfg, "--strict=false", src)
	assert.Equal(t, ExitErrors, code)
	assert.Contains(t, stdout, "1:11\tUNKNOWN\t\"@\"\n")
}

func TestRunDebugLogs(t *testing.T) {
	path := writeFile(t, t.TempDir(), "main.mc", "let x = 5;")

	code, _, stderr := run("--debug", path)
	assert.Equal(t, ExitOK, code)
	assert.Contains(t, stderr, `"msg":"tokenizing"`)
	assert.Contains(t, stderr, `"logger":"minic"`)
}

func TestRunUsageErrors(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "main.mc", "x")
	badCfg := writeFile(t, dir, "bad.yaml", "max_distance: 42\n")

	tests := []struct {
		Name string
		Args []string
		Want string
	}{
		{Name: "no files", Args: nil, Want: "Usage: minic"},
		{Name: "two files", Args: []string{src, src}, Want: "Usage: minic"},
		{Name: "unknown flag", Args: []string{"--nope", src}, Want: "flag provided but not defined"},
		{Name: "bad config", Args: []string{"--config", badCfg, src}, Want: "max_distance"},
		{Name: "missing config", Args: []string{"--config", filepath.Join(dir, "none.yaml"), src}, Want: "reading config"},
		{Name: "bad color", Args: []string{"--color", "pink", src}, Want: "color"},
	}

	for _, tc := range tests {
		t.Run(tc.Name, func(t *testing.T) {
			code, stdout, stderr := run(tc.Args...)
			assert.Equal(t, ExitUsage, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, tc.Want)
		})
	}
}

func TestRunMissingSource(t *testing.T) {
	code, _, stderr := run(filepath.Join(t.TempDir(), "gone.mc"))
	assert.Equal(t, ExitErrors, code)
	assert.Contains(t, stderr, "error[L0010]: cannot read source file")
}

func TestRunHelp(t *testing.T) {
	code, _, stderr := run("-h")
	assert.Equal(t, ExitOK, code)
	assert.Contains(t, stderr, "-strict")
}
