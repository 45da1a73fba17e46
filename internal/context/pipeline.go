package context

import (
	"errors"
	"fmt"

	"minic/internal/diagnostics"
	"minic/internal/frontend/lexer"
	"minic/internal/source"
)

// Pipeline runs load -> lex over one entry file
type Pipeline struct {
	Context *CompilerContext
}

// NewPipeline creates a new pipeline with the given options
func NewPipeline(options *CompilerOptions) *Pipeline {
	return &Pipeline{
		Context: New(options),
	}
}

// Compile loads and lexes the entry file. A file that cannot be read is
// reported as a diagnostic. The returned error is non-nil when any error
// diagnostic exists.
func (p *Pipeline) Compile(entryPoint string) error {
	p.Context.setPhase(PhaseLoading)
	p.addNewFile(entryPoint)

	p.Context.setPhase(PhaseLexing)
	p.runLexerPhase()

	p.Context.setPhase(PhaseComplete)

	if n := p.Context.Diagnostics.ErrorCount(); n > 0 {
		return fmt.Errorf("lexing failed with %d error(s)", n)
	}
	return nil
}

// addNewFile reads a file and registers it in the context
func (p *Pipeline) addNewFile(path string) {
	content, err := lexer.ReadSource(path)
	if err != nil {
		p.Context.Logger.V(1).Info("cannot read source", "file", path, "error", err.Error())
		cause := err
		var perr *lexer.ParsingError
		if errors.As(err, &perr) && perr.Err != nil {
			cause = perr.Err
		}
		p.Context.Diagnostics.Add(diagnostics.ReadFailure(path, cause))
		return
	}

	p.Context.AddFile(path, content)
	p.Context.Logger.V(1).Info("registered", "file", path, "bytes", len(content))
}

// runLexerPhase tokenizes every registered file in order
func (p *Pipeline) runLexerPhase() {
	for _, file := range p.Context.GetAllFiles() {
		p.lexFile(file)
	}
}

// lexFile tokenizes a single source file and reports its errors
func (p *Pipeline) lexFile(file *SourceFile) {
	opts := p.Context.Options.Lexer
	opts.Logger = p.Context.Logger

	l := lexer.New(file.Path, file.Content, opts)
	file.Tokens, _ = l.Tokenize()
	file.Errors = l.Errors

	reported := l.Errors
	if opts.Mode == lexer.STRICT && len(reported) > 1 {
		reported = reported[:1]
	}
	for _, perr := range reported {
		p.Context.Diagnostics.Add(ToDiagnostic(file.Path, perr))
	}
}

// ToDiagnostic converts a lexer error into a renderable diagnostic
func ToDiagnostic(path string, perr *lexer.ParsingError) *diagnostics.Diagnostic {
	loc := source.NewLocation(perr.Start, perr.End)

	switch perr.Kind {
	case lexer.INVALID_KEYWORD, lexer.INVALID_OPERATOR:
		if perr.Mistake == nil {
			return diagnostics.UnknownToken(path, loc, perr.Text)
		}
		m := perr.Mistake
		if perr.Kind == lexer.INVALID_KEYWORD {
			return diagnostics.InvalidKeyword(path, loc, m.Written, m.Potential, m.OtherPotentials)
		}
		return diagnostics.InvalidOperator(path, loc, m.Written, m.Potential, m.OtherPotentials)
	case lexer.NUMERIC_OVERFLOW:
		return diagnostics.NumericOverflow(path, loc, perr.Text)
	case lexer.UNTERMINATED_STRING:
		return diagnostics.UnterminatedString(path, loc)
	case lexer.UNTERMINATED_COMMENT:
		return diagnostics.UnterminatedComment(path, loc)
	case lexer.INVALID_ESCAPE:
		return diagnostics.InvalidEscapeSequence(path, loc, perr.Text)
	case lexer.DECODE_ERROR:
		return diagnostics.InvalidEncoding(path, loc)
	case lexer.EMPTY_FILE:
		return diagnostics.EmptyFile(path)
	case lexer.IO_ERROR:
		if perr.Err != nil {
			return diagnostics.ReadFailure(path, perr.Err)
		}
		return diagnostics.ReadFailure(path, perr)
	default:
		return diagnostics.UnknownToken(path, loc, perr.Text)
	}
}
