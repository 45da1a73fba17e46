package diagnostics

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"sync"
)

// DiagnosticBag collects diagnostics while lexing
type DiagnosticBag struct {
	diagnostics []*Diagnostic
	filepath    string
	mu          sync.Mutex
	errorCount  int
	warnCount   int
}

// NewDiagnosticBag creates a new diagnostic bag for a file
func NewDiagnosticBag(filepath string) *DiagnosticBag {
	return &DiagnosticBag{
		diagnostics: make([]*Diagnostic, 0),
		filepath:    filepath,
	}
}

// Add adds a diagnostic to the bag
func (db *DiagnosticBag) Add(diag *Diagnostic) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.diagnostics = append(db.diagnostics, diag)

	if db.filepath == "" && diag.FilePath != "" {
		db.filepath = diag.FilePath
	}

	switch diag.Severity {
	case Error:
		db.errorCount++
	case Warning:
		db.warnCount++
	}
}

// HasErrors returns true if there are any errors
func (db *DiagnosticBag) HasErrors() bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.errorCount > 0
}

// ErrorCount returns the number of errors
func (db *DiagnosticBag) ErrorCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.errorCount
}

// WarningCount returns the number of warnings
func (db *DiagnosticBag) WarningCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.warnCount
}

// Diagnostics returns a copy of all diagnostics ordered by file then source position
func (db *DiagnosticBag) Diagnostics() []*Diagnostic {
	db.mu.Lock()
	diagnostics := make([]*Diagnostic, len(db.diagnostics))
	copy(diagnostics, db.diagnostics)
	db.mu.Unlock()

	sort.SliceStable(diagnostics, func(i, j int) bool {
		a, b := diagnostics[i], diagnostics[j]
		if a.FilePath != b.FilePath {
			return a.FilePath < b.FilePath
		}
		return offsetOf(a) < offsetOf(b)
	})
	return diagnostics
}

func offsetOf(d *Diagnostic) int {
	if loc := d.PrimaryLocation(); loc != nil && loc.Start != nil {
		return loc.Start.Offset
	}
	return -1
}

// EmitAll writes every diagnostic followed by a summary line
func (db *DiagnosticBag) EmitAll(w io.Writer, cache *SourceCache) {
	emitter := NewEmitterWithCache(w, cache)

	db.mu.Lock()
	filepath := db.filepath
	db.mu.Unlock()

	for _, diag := range db.Diagnostics() {
		emitter.Emit(filepath, diag)
	}

	db.printSummary(w)
}

// EmitAllToString renders all diagnostics using the given source lines for snippets
func (db *DiagnosticBag) EmitAllToString(sourceLines []string) string {
	var buf bytes.Buffer
	cache := NewSourceCache()
	if sourceLines != nil {
		cache.SetLines(db.filepath, sourceLines)
	}
	db.EmitAll(&buf, cache)
	return buf.String()
}

func (db *DiagnosticBag) printSummary(w io.Writer) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.errorCount > 0 {
		fmt.Fprintf(w, "Lexing failed with %d error(s)", db.errorCount)
		if db.warnCount > 0 {
			fmt.Fprintf(w, " and %d warning(s)", db.warnCount)
		}
		fmt.Fprintln(w)
	} else if db.warnCount > 0 {
		fmt.Fprintf(w, "Lexing succeeded with %d warning(s)\n", db.warnCount)
	}
}

// Clear removes all diagnostics
func (db *DiagnosticBag) Clear() {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.diagnostics = make([]*Diagnostic, 0)
	db.errorCount = 0
	db.warnCount = 0
}
