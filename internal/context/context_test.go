package context

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minic/internal/colors"
	"minic/internal/diagnostics"
	"minic/internal/frontend/lexer"
	"minic/internal/source"
)

const (
	mainFile    = "main.mc"
	mainContent = "func main() {\n\treturn 0;\n}\n"
	badContent  = "fnc add() {\n\treturn 1 => 2;\n}\n"
)

func TestMain(m *testing.M) {
	colors.Configure(colors.NEVER)
	m.Run()
}

// Helper function to create a temporary test file
func createTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func lenientOptions() *CompilerOptions {
	opts := lexer.DefaultOptions()
	opts.Mode = lexer.LENIENT
	return &CompilerOptions{Lexer: opts}
}

func TestAddFileKeepsOrder(t *testing.T) {
	ctx := New(nil)
	ctx.AddFile("b.mc", []byte("let b = 1;"))
	ctx.AddFile("a.mc", []byte("let a = 1;"))
	ctx.AddFile("b.mc", []byte("let b = 2;"))

	files := ctx.GetAllFiles()
	require.Len(t, files, 2)
	assert.Equal(t, "b.mc", files[0].Path)
	assert.Equal(t, "a.mc", files[1].Path)
	assert.Equal(t, []byte("let b = 2;"), ctx.GetFile("b.mc").Content)
	assert.Nil(t, ctx.GetFile("c.mc"))

	line, err := ctx.Sources.GetLine("a.mc", 1)
	require.NoError(t, err)
	assert.Equal(t, "let a = 1;", line)
}

func TestCompileSingleFile(t *testing.T) {
	path := createTestFile(t, t.TempDir(), mainFile, mainContent)

	p := NewPipeline(lenientOptions())
	require.NoError(t, p.Compile(path))

	assert.Equal(t, PhaseComplete, p.Context.CurrentPhase)
	assert.False(t, p.Context.HasErrors())

	file := p.Context.GetFile(path)
	require.NotNil(t, file)
	require.Len(t, file.Tokens, 9)
	assert.Equal(t, lexer.KEYWORD_TOKEN, file.Tokens[0].Kind)
	assert.Equal(t, lexer.FUNCTION, file.Tokens[0].Keyword)
	assert.Empty(t, file.Errors)
}

func TestCompileReportsLexerErrors(t *testing.T) {
	path := createTestFile(t, t.TempDir(), mainFile, badContent)

	p := NewPipeline(lenientOptions())
	err := p.Compile(path)
	require.Error(t, err)
	assert.Equal(t, "lexing failed with 2 error(s)", err.Error())

	diags := p.Context.Diagnostics.Diagnostics()
	require.Len(t, diags, 2)
	assert.Equal(t, diagnostics.ErrInvalidKeyword, diags[0].Code)
	assert.Equal(t, "did you mean `func`?", diags[0].Help)
	assert.Equal(t, diagnostics.ErrInvalidOperator, diags[1].Code)

	file := p.Context.GetFile(path)
	assert.Len(t, file.Errors, 2)
	assert.NotEmpty(t, file.Tokens)
}

func TestCompileStrictReportsFirstError(t *testing.T) {
	path := createTestFile(t, t.TempDir(), mainFile, badContent)

	opts := lenientOptions()
	opts.Lexer.Mode = lexer.STRICT
	p := NewPipeline(opts)
	require.Error(t, p.Compile(path))

	diags := p.Context.Diagnostics.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, diagnostics.ErrInvalidKeyword, diags[0].Code)
	assert.Nil(t, p.Context.GetFile(path).Tokens)
}

func TestCompileFileErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		Name string
		Path string
		Code string
	}{
		{Name: "overflow", Path: createTestFile(t, dir, "b.mc", "let b = 99999999999999999999;"), Code: diagnostics.ErrNumericOverflow},
		{Name: "blank", Path: createTestFile(t, dir, "c.mc", "   \n"), Code: diagnostics.ErrEmptyFile},
		{Name: "missing", Path: filepath.Join(dir, "missing.mc"), Code: diagnostics.ErrReadFailure},
	}

	for _, tc := range tests {
		t.Run(tc.Name, func(t *testing.T) {
			p := NewPipeline(lenientOptions())
			require.Error(t, p.Compile(tc.Path))

			diags := p.Context.Diagnostics.Diagnostics()
			require.Len(t, diags, 1)
			assert.Equal(t, tc.Code, diags[0].Code)
			assert.Equal(t, tc.Path, diags[0].FilePath)
		})
	}
}

func TestCompileMissingFileRegistersNothing(t *testing.T) {
	p := NewPipeline(lenientOptions())
	require.Error(t, p.Compile(filepath.Join(t.TempDir(), "missing.mc")))
	assert.Empty(t, p.Context.GetAllFiles())
	assert.Equal(t, PhaseComplete, p.Context.CurrentPhase)
}

func TestEmitDiagnostics(t *testing.T) {
	path := createTestFile(t, t.TempDir(), mainFile, badContent)

	p := NewPipeline(lenientOptions())
	require.Error(t, p.Compile(path))

	var buf bytes.Buffer
	p.Context.EmitDiagnostics(&buf)

	out := buf.String()
	assert.Contains(t, out, "error[L0002]: invalid keyword `fnc`")
	assert.Contains(t, out, "1 | fnc add() {\n")
	assert.Contains(t, out, "  = help: did you mean `func`?\n")
	assert.Contains(t, out, "error[L0001]: invalid operator `=>`")
	assert.Contains(t, out, "Lexing failed with 2 error(s)\n")
}

func TestToDiagnostic(t *testing.T) {
	start := source.Position{Line: 2, Column: 3, Offset: 10}
	end := source.Position{Line: 2, Column: 6, Offset: 13}

	tests := []struct {
		Err  *lexer.ParsingError
		Code string
	}{
		{Err: &lexer.ParsingError{Kind: lexer.UNKNOWN_LEXEME, Text: "@"}, Code: diagnostics.ErrUnknownToken},
		{Err: &lexer.ParsingError{Kind: lexer.INVALID_OPERATOR, Text: "=>"}, Code: diagnostics.ErrUnknownToken},
		{Err: &lexer.ParsingError{Kind: lexer.INVALID_ESCAPE, Text: `\q`}, Code: diagnostics.ErrInvalidEscape},
		{Err: &lexer.ParsingError{Kind: lexer.UNTERMINATED_STRING}, Code: diagnostics.ErrUnterminatedString},
		{Err: &lexer.ParsingError{Kind: lexer.UNTERMINATED_COMMENT}, Code: diagnostics.ErrUnterminatedComment},
		{Err: &lexer.ParsingError{Kind: lexer.DECODE_ERROR}, Code: diagnostics.ErrInvalidEncoding},
		{Err: &lexer.ParsingError{Kind: lexer.IO_ERROR, Text: "x.mc"}, Code: diagnostics.ErrReadFailure},
	}

	for _, tc := range tests {
		tc.Err.Start, tc.Err.End = start, end
		d := ToDiagnostic(mainFile, tc.Err)
		assert.Equal(t, tc.Code, d.Code, tc.Err.Kind.String())
		assert.Equal(t, mainFile, d.FilePath, tc.Err.Kind.String())
	}
}
