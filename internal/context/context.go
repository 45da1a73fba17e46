// Package context provides the shared state of a lexing session.
//
// The lexer itself owns nothing beyond one run over one buffer. Everything
// that outlives a run lives here: the registered source files in the order
// they were added, the tokens produced for each, and a single diagnostic bag
// every file reports into.
package context

import (
	"io"
	"sync"

	"github.com/go-logr/logr"

	"minic/internal/diagnostics"
	"minic/internal/frontend/lexer"
)

// Phase tracks how far the session has progressed
type Phase int

const (
	PhaseInitial  Phase = iota // Not started
	PhaseLoading               // Reading source files
	PhaseLexing                // Tokenizing source files
	PhaseComplete              // Every file has been lexed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseLexing:
		return "lexing"
	case PhaseComplete:
		return "complete"
	default:
		return "initial"
	}
}

// CompilerContext is the central hub for session state.
//
// Thread safety: file registration goes through methods that lock. Each
// SourceFile is written by exactly one lexing worker.
type CompilerContext struct {
	// Diagnostics collects every error and warning of the session
	Diagnostics *diagnostics.DiagnosticBag

	// Sources feeds source snippets to the emitter without rereading files
	Sources *diagnostics.SourceCache

	// Files maps path -> SourceFile
	Files map[string]*SourceFile

	// FileOrder tracks the order files were added
	FileOrder []string

	CurrentPhase Phase
	Options      *CompilerOptions
	Logger       logr.Logger

	mu sync.RWMutex
}

// SourceFile is one input and everything the lexer produced for it
type SourceFile struct {
	Path    string
	Content []byte

	Tokens []lexer.Token
	Errors lexer.ErrorList
}

// CompilerOptions holds session configuration.
// Passed to the context at creation time and remains immutable.
type CompilerOptions struct {
	Debug bool
	Lexer lexer.Options
}

// New starts a session. The logger comes from Options.Lexer.Logger.
func New(options *CompilerOptions) *CompilerContext {
	if options == nil {
		options = &CompilerOptions{Lexer: lexer.DefaultOptions()}
	}

	return &CompilerContext{
		Diagnostics:  diagnostics.NewDiagnosticBag(""),
		Sources:      diagnostics.NewSourceCache(),
		Files:        make(map[string]*SourceFile),
		FileOrder:    make([]string, 0),
		CurrentPhase: PhaseInitial,
		Options:      options,
		Logger:       options.Lexer.Logger,
	}
}

// AddFile registers a source file. Adding a path twice replaces its content
// but keeps its original position in FileOrder.
func (ctx *CompilerContext) AddFile(path string, content []byte) *SourceFile {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()

	file := &SourceFile{
		Path:    path,
		Content: content,
	}

	if _, exists := ctx.Files[path]; !exists {
		ctx.FileOrder = append(ctx.FileOrder, path)
	}
	ctx.Files[path] = file
	ctx.Sources.SetSource(path, content)

	return file
}

// GetFile retrieves a source file by path.
// Returns nil if the file hasn't been registered.
func (ctx *CompilerContext) GetFile(path string) *SourceFile {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	return ctx.Files[path]
}

// GetAllFiles returns all registered files in the order they were added.
func (ctx *CompilerContext) GetAllFiles() []*SourceFile {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()

	files := make([]*SourceFile, 0, len(ctx.FileOrder))
	for _, path := range ctx.FileOrder {
		files = append(files, ctx.Files[path])
	}
	return files
}

func (ctx *CompilerContext) setPhase(p Phase) {
	ctx.mu.Lock()
	ctx.CurrentPhase = p
	ctx.mu.Unlock()
	ctx.Logger.V(1).Info("phase", "phase", p.String())
}

// HasErrors returns true if any errors have been reported during the session.
func (ctx *CompilerContext) HasErrors() bool {
	return ctx.Diagnostics.HasErrors()
}

// EmitDiagnostics renders all collected diagnostics to w.
func (ctx *CompilerContext) EmitDiagnostics(w io.Writer) {
	ctx.Diagnostics.EmitAll(w, ctx.Sources)
}
