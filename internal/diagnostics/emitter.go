package diagnostics

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"minic/internal/colors"
)

const (
	STR_MULTIPLIER = "%*d | "
)

// SourceCache caches source file contents for error reporting
type SourceCache struct {
	files map[string][]string
}

func NewSourceCache() *SourceCache {
	return &SourceCache{
		files: make(map[string][]string),
	}
}

// SetSource registers in-memory content so the emitter never reopens the file
func (sc *SourceCache) SetSource(filepath string, content []byte) {
	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	sc.files[filepath] = strings.Split(text, "\n")
}

// SetLines registers already split content
func (sc *SourceCache) SetLines(filepath string, lines []string) {
	sc.files[filepath] = lines
}

// GetLine retrieves a specific line from a source file
func (sc *SourceCache) GetLine(filepath string, line int) (string, error) {
	lines, ok := sc.files[filepath]
	if !ok {
		loaded, err := readLines(filepath)
		if err != nil {
			return "", err
		}
		sc.files[filepath] = loaded
		lines = loaded
	}
	if line > 0 && line <= len(lines) {
		return lines[line-1], nil
	}
	return "", fmt.Errorf("line %d out of range", line)
}

func readLines(filepath string) ([]string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	lines := make([]string, 0)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// Emitter handles the rendering and output of diagnostics
type Emitter struct {
	cache *SourceCache
	w     io.Writer
}

// labelContext groups parameters for printing labels to reduce parameter count
type labelContext struct {
	filepath     string
	startLine    int
	endLine      int
	startCol     int
	endCol       int
	label        Label
	lineNumWidth int
	severity     Severity
}

func NewEmitterWithWriter(w io.Writer) *Emitter {
	return NewEmitterWithCache(w, NewSourceCache())
}

// NewEmitterWithCache shares a source cache between emitters
func NewEmitterWithCache(w io.Writer, cache *SourceCache) *Emitter {
	if cache == nil {
		cache = NewSourceCache()
	}
	return &Emitter{cache: cache, w: w}
}

// SetSourceLines pre-populates the cache for a file
func (e *Emitter) SetSourceLines(filepath string, lines []string) {
	e.cache.SetLines(filepath, lines)
}

// Emit renders a diagnostic
func (e *Emitter) Emit(filepath string, diag *Diagnostic) {
	if diag.FilePath != "" {
		filepath = diag.FilePath
	}

	e.printHeader(diag)

	if len(diag.Labels) == 0 && filepath != "" {
		colors.BLUE.Fprintf(e.w, "  --> %s\n", filepath)
	}

	primaries := 0
	for _, label := range diag.Labels {
		if label.Style == Primary {
			primaries++
		}
	}
	if primaries > 1 {
		colors.BOLD_RED.Fprintln(e.w, "INTERNAL ERROR: Multiple primary labels in diagnostic!")
	}
	for _, label := range diag.Labels {
		e.printLabel(filepath, label, diag.Severity)
	}

	for _, note := range diag.Notes {
		e.printNote(note)
	}

	if diag.Help != "" {
		e.printHelp(diag.Help)
	}

	fmt.Fprintln(e.w)
}

func (e *Emitter) printHeader(diag *Diagnostic) {
	color := e.getHeaderColor(diag.Severity)

	color.Fprint(e.w, diag.Severity.String())
	if diag.Code != "" {
		fmt.Fprintf(e.w, "[%s]", diag.Code)
	}
	fmt.Fprint(e.w, ": ")
	color.Fprintln(e.w, diag.Message)
}

func (e *Emitter) printLabel(filepath string, label Label, severity Severity) {
	if label.Location == nil || label.Location.Start == nil {
		return
	}

	start := label.Location.Start
	end := label.Location.End
	if end == nil {
		end = start
	}

	colors.BLUE.Fprintf(e.w, "  --> %s:%d:%d\n", filepath, start.Line, start.Column)

	lineNumWidth := len(fmt.Sprintf("%d", start.Line))
	if end.Line > start.Line {
		if endWidth := len(fmt.Sprintf("%d", end.Line)); endWidth > lineNumWidth {
			lineNumWidth = endWidth
		}
	}

	e.printSeparator(lineNumWidth)

	ctx := labelContext{
		filepath:     filepath,
		startLine:    start.Line,
		endLine:      end.Line,
		startCol:     start.Column,
		endCol:       end.Column,
		label:        label,
		lineNumWidth: lineNumWidth,
		severity:     severity,
	}

	if start.Line == end.Line {
		e.printSingleLineLabel(ctx)
	} else {
		e.printMultiLineLabel(ctx)
	}

	e.printSeparator(lineNumWidth)
}

func (e *Emitter) printSingleLineLabel(ctx labelContext) {
	if ctx.startLine > 1 {
		prevLine, err := e.cache.GetLine(ctx.filepath, ctx.startLine-1)
		if err == nil && strings.TrimSpace(prevLine) != "" {
			colors.GREY.Fprintf(e.w, STR_MULTIPLIER, ctx.lineNumWidth, ctx.startLine-1)
			colors.GREY.Fprintln(e.w, prevLine)
		}
	}

	sourceLine, err := e.cache.GetLine(ctx.filepath, ctx.startLine)
	if err != nil {
		return
	}

	colors.GREY.Fprintf(e.w, STR_MULTIPLIER, ctx.lineNumWidth, ctx.startLine)
	fmt.Fprintln(e.w, sourceLine)

	colors.GREY.Fprint(e.w, strings.Repeat(" ", ctx.lineNumWidth))
	colors.GREY.Fprint(e.w, " | ")

	length := ctx.endCol - ctx.startCol
	if length <= 0 {
		length = 1
	}

	underlineColor := colors.BLUE
	underlineChar := "-"
	if ctx.label.Style == Primary {
		underlineColor = e.getSeverityColor(ctx.severity)
		underlineChar = "~"
		if length == 1 {
			underlineChar = "^"
		}
	}

	fmt.Fprint(e.w, strings.Repeat(" ", ctx.startCol-1))
	underlineColor.Fprint(e.w, strings.Repeat(underlineChar, length))
	if ctx.label.Message != "" {
		underlineColor.Fprintf(e.w, " %s", ctx.label.Message)
	}
	fmt.Fprintln(e.w)
}

func (e *Emitter) printMultiLineLabel(ctx labelContext) {
	sourceLine, err := e.cache.GetLine(ctx.filepath, ctx.startLine)
	if err != nil {
		return
	}

	underlineColor := colors.BLUE
	if ctx.label.Style == Primary {
		underlineColor = e.getHeaderColor(ctx.severity)
	}

	colors.BLUE.Fprintf(e.w, STR_MULTIPLIER, ctx.lineNumWidth, ctx.startLine)
	fmt.Fprintln(e.w, sourceLine)
	colors.BLUE.Fprint(e.w, strings.Repeat(" ", ctx.lineNumWidth))
	colors.BLUE.Fprint(e.w, " | ")
	fmt.Fprint(e.w, strings.Repeat(" ", ctx.startCol-1))
	underlineColor.Fprintln(e.w, "^--- starts here")

	if ctx.endLine-ctx.startLine > 5 {
		colors.BLUE.Fprint(e.w, strings.Repeat(" ", ctx.lineNumWidth))
		colors.BLUE.Fprintln(e.w, " | ...")
	} else {
		for i := ctx.startLine + 1; i < ctx.endLine; i++ {
			line, err := e.cache.GetLine(ctx.filepath, i)
			if err != nil {
				continue
			}
			colors.BLUE.Fprintf(e.w, STR_MULTIPLIER, ctx.lineNumWidth, i)
			fmt.Fprintln(e.w, line)
		}
	}

	endSourceLine, err := e.cache.GetLine(ctx.filepath, ctx.endLine)
	if err != nil {
		return
	}
	colors.BLUE.Fprintf(e.w, STR_MULTIPLIER, ctx.lineNumWidth, ctx.endLine)
	fmt.Fprintln(e.w, endSourceLine)

	colors.BLUE.Fprint(e.w, strings.Repeat(" ", ctx.lineNumWidth))
	colors.BLUE.Fprint(e.w, " | ")
	endPadding := ctx.endCol - 2
	if endPadding < 0 {
		endPadding = 0
	}
	fmt.Fprint(e.w, strings.Repeat(" ", endPadding))
	underlineColor.Fprint(e.w, "^")
	if ctx.label.Message != "" {
		underlineColor.Fprintf(e.w, " %s", ctx.label.Message)
	}
	fmt.Fprintln(e.w)
}

func (e *Emitter) printSeparator(width int) {
	colors.GREY.Fprint(e.w, strings.Repeat(" ", width))
	colors.GREY.Fprintln(e.w, " |")
}

func (e *Emitter) printNote(note Note) {
	colors.CYAN.Fprint(e.w, "  = note: ")
	fmt.Fprintln(e.w, note.Message)
}

func (e *Emitter) printHelp(help string) {
	colors.GREEN.Fprint(e.w, "  = help: ")
	fmt.Fprintln(e.w, help)
}

func (e *Emitter) getHeaderColor(severity Severity) colors.COLOR {
	switch severity {
	case Warning:
		return colors.BOLD_YELLOW
	case Info:
		return colors.BOLD_CYAN
	case Hint:
		return colors.BOLD_PURPLE
	default:
		return colors.BOLD_RED
	}
}

// getSeverityColor returns the underline color for a given severity
func (e *Emitter) getSeverityColor(severity Severity) colors.COLOR {
	switch severity {
	case Warning:
		return colors.YELLOW
	case Info:
		return colors.BLUE
	case Hint:
		return colors.PURPLE
	default:
		return colors.RED
	}
}
