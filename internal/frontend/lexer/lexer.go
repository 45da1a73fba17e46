// Package lexer turns source text into classified tokens and reports
// malformed input with near-miss suggestions.
//
// Scanning order: at every position each rule of the Rule Table is tried, the
// longest match wins and ties go to the rule listed first. That makes
// "letter" an identifier rather than "let" + garbage, and "**" a single Power
// rather than two Asterisks.
package lexer

import (
	"bytes"
	"errors"
	"io"
	"os"
	"slices"
	"unicode/utf8"

	"github.com/go-logr/logr"

	"minic/internal/source"
)

// Mode selects how the driver reacts to the first error
type Mode int

const (
	STRICT  Mode = iota // abort at the first error, discard tokens
	LENIENT             // keep scanning, return every error alongside the tokens
)

func (m Mode) String() string {
	if m == LENIENT {
		return "lenient"
	}
	return "strict"
}

// Options configures a Lexer
type Options struct {
	Mode        Mode
	MaxDistance int  // edit distance limit for suggestions, 0 disables them
	KeepIgnored bool // also return whitespace and comment tokens
	Logger      logr.Logger
}

// DefaultOptions are strict with suggestions enabled
func DefaultOptions() Options {
	return Options{Mode: STRICT, MaxDistance: DefaultMaxDistance}
}

// Lexer holds the state of one tokenization run.
type Lexer struct {
	filepath string
	src      []byte
	opts     Options

	// Errors holds every error found by the last Tokenize call, in source order.
	Errors ErrorList
}

func New(filepath string, content []byte, opts Options) *Lexer {
	return &Lexer{
		filepath: filepath,
		src:      content,
		opts:     opts,
	}
}

// Tokenize lexes the whole buffer in one call.
func Tokenize(buf []byte) ([]Token, error) {
	return New("", buf, DefaultOptions()).Tokenize()
}

// TokenizeFile reads path and lexes it.
func TokenizeFile(path string, opts Options) ([]Token, error) {
	content, err := ReadSource(path)
	if err != nil {
		return nil, err
	}
	return New(path, content, opts).Tokenize()
}

// ReadSource loads a whole file. Failures are IO_ERROR ParsingErrors.
func ReadSource(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParsingError{Kind: IO_ERROR, Text: path, Err: err}
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, &ParsingError{Kind: IO_ERROR, Text: path, Err: err}
	}
	return content, nil
}

// Tokenize returns the tokens of the buffer in source order.
//
// In STRICT mode the first error is returned and no tokens are. In LENIENT
// mode every offending span becomes an UNKNOWN_TOKEN and the error, if any, is
// an ErrorList. IGNORE_TOKENs are dropped unless Options.KeepIgnored is set.
func (l *Lexer) Tokenize() ([]Token, error) {
	log := l.opts.Logger.WithValues("file", l.filepath)
	log.V(1).Info("tokenizing", "bytes", len(l.src), "mode", l.opts.Mode.String())

	l.Errors = nil
	if err := l.checkInput(); err != nil {
		l.Errors = ErrorList{err}
		return nil, err
	}

	scanner := NewScanner(l.src, l.opts.MaxDistance)
	var all []Token
	for {
		tok, err := scanner.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		all = append(all, tok)

		var perr *ParsingError
		if errors.As(err, &perr) {
			l.Errors = append(l.Errors, perr)
			if l.opts.Mode == STRICT {
				break
			}
		}
	}

	l.checkKeywordPositions(all)
	slices.SortStableFunc(l.Errors, func(a, b *ParsingError) int {
		return a.Start.Offset - b.Start.Offset
	})

	if l.opts.Mode == STRICT && len(l.Errors) > 0 {
		log.V(1).Info("aborted", "error", l.Errors[0].Error())
		return nil, l.Errors[0]
	}

	tokens := all
	if !l.opts.KeepIgnored {
		tokens = slices.DeleteFunc(all, func(t Token) bool {
			return t.Kind == IGNORE_TOKEN
		})
	}

	log.V(1).Info("tokenized", "tokens", len(tokens), "errors", len(l.Errors))
	return tokens, l.Errors.Err()
}

// checkInput applies the empty-file and UTF-8 policies.
// A buffer holding only white space counts as empty.
func (l *Lexer) checkInput() *ParsingError {
	if len(bytes.TrimSpace(l.src)) == 0 {
		start := source.Start()
		return &ParsingError{Kind: EMPTY_FILE, Text: l.filepath, Start: start, End: start}
	}

	if utf8.Valid(l.src) {
		return nil
	}
	for i := 0; i < len(l.src); {
		r, size := utf8.DecodeRune(l.src[i:])
		if r == utf8.RuneError && size <= 1 {
			start := source.PositionAt(l.src, i)
			end := start
			end.Offset++
			end.Column++
			return &ParsingError{Kind: DECODE_ERROR, Text: string(l.src[i : i+1]), Start: start, End: end}
		}
		i += size
	}
	return &ParsingError{Kind: DECODE_ERROR}
}

// checkKeywordPositions flags identifiers standing where only a keyword can:
// two operands are never adjacent, so an identifier followed by another
// identifier, number, string or keyword is a misspelt keyword when one is close.
func (l *Lexer) checkKeywordPositions(all []Token) {
	if l.opts.MaxDistance <= 0 {
		return
	}

	prev := -1
	for i := range all {
		switch all[i].Kind {
		case IGNORE_TOKEN:
			continue
		case IDENTIFIER_TOKEN, NUMBER_TOKEN, STRING_TOKEN, KEYWORD_TOKEN:
			if prev >= 0 && all[prev].Kind == IDENTIFIER_TOKEN {
				l.flagKeyword(&all[prev])
			}
		}
		prev = i
	}
}

func (l *Lexer) flagKeyword(tok *Token) {
	mistake := misspelledKeyword(tok.Value, l.opts.MaxDistance)
	if mistake == nil {
		return
	}
	l.Errors = append(l.Errors, &ParsingError{
		Kind:    INVALID_KEYWORD,
		Text:    tok.Value,
		Mistake: mistake,
		Start:   tok.Start,
		End:     tok.End,
	})
	tok.Kind = UNKNOWN_TOKEN
	tok.Text = ""
}
