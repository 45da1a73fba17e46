package lexer

import (
	"io"
	"unicode/utf8"

	"minic/internal/source"
)

// Scanner matches one lexeme at a time, left to right, without backtracking.
// The source must be valid UTF-8.
type Scanner struct {
	src         []byte
	offset      int
	rules       RuleTable
	tracker     *source.Tracker
	maxDistance int
	names       map[string]string

	// end of the last symbol run already segmented successfully
	checkedTo int
}

// NewScanner creates a scanner over src using the process-wide Rule Table.
// maxDistance bounds near-miss suggestions; 0 disables them.
func NewScanner(src []byte, maxDistance int) *Scanner {
	return &Scanner{
		src:         src,
		rules:       Rules,
		tracker:     source.NewTracker(),
		maxDistance: maxDistance,
		names:       make(map[string]string),
	}
}

// Pos is the position of the next unscanned byte
func (s *Scanner) Pos() source.Position {
	return s.tracker.Pos()
}

// Next returns the next token, including IGNORE_TOKENs, and io.EOF once the
// input is exhausted. On a *ParsingError the token is the UNKNOWN_TOKEN that
// covers the offending text and the scanner has already moved past it.
func (s *Scanner) Next() (Token, error) {
	if s.offset >= len(s.src) {
		return Token{}, io.EOF
	}
	rest := s.src[s.offset:]

	// a run of operator characters is accepted whole or rejected whole
	if r, _ := utf8.DecodeRune(rest); s.offset >= s.checkedTo && isSymbol(r) {
		run := symbolRun(rest)
		if !s.rules.segments(rest, run) {
			return s.reject(run)
		}
		s.checkedTo = s.offset + run
	}

	rule, n, fault := s.rules.Longest(rest)
	if fault != noFault {
		return s.fail(n, &ParsingError{Kind: fault, Text: string(rest[:n])})
	}
	if rule == nil {
		_, size := utf8.DecodeRune(rest)
		return s.reject(max(symbolRun(rest), size))
	}

	tok, perr := classify(rule.ID, string(rest[:n]))
	if perr != nil {
		return s.fail(n, perr)
	}
	if tok.Kind == IDENTIFIER_TOKEN {
		tok.Text = s.intern(tok.Text)
	}
	tok.Start, tok.End = s.advance(n)
	return tok, nil
}

func (s *Scanner) advance(n int) (start, end source.Position) {
	start = s.tracker.Pos()
	end = s.tracker.Advance(s.src[s.offset : s.offset+n])
	s.offset += n
	return start, end
}

// reject hands n bytes no rule accepts to the Diagnostic Engine
func (s *Scanner) reject(n int) (Token, error) {
	text := string(s.src[s.offset : s.offset+n])
	kind, mistake := diagnose(text, s.maxDistance)
	return s.fail(n, &ParsingError{Kind: kind, Text: text, Mistake: mistake})
}

func (s *Scanner) fail(n int, perr *ParsingError) (Token, error) {
	tok := unknown(string(s.src[s.offset : s.offset+n]))
	tok.Start, tok.End = s.advance(n)
	perr.Start, perr.End = tok.Start, tok.End
	return tok, perr
}

func (s *Scanner) intern(name string) string {
	if v, ok := s.names[name]; ok {
		return v
	}
	s.names[name] = name
	return name
}
