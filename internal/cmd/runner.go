// Package cmd is the minic command line: flags and config, logger setup,
// the token dump and the exit code.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"minic/internal/colors"
	"minic/internal/config"
	"minic/internal/context"
	"minic/internal/frontend/lexer"
)

// Exit codes
const (
	ExitOK     = 0
	ExitErrors = 1 // at least one error diagnostic
	ExitUsage  = 2 // bad flags, arguments or config
)

// Run executes minic with args (without the program name) and returns the exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("minic", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		configPath  string
		debug       bool
		strict      bool
		keepIgnored bool
		colorMode   string
	)
	fs.StringVar(&configPath, "config", "", "Path to a YAML config file")
	fs.BoolVar(&debug, "debug", false, "Enable debug logging")
	fs.BoolVar(&strict, "strict", false, "Stop at the first error")
	fs.BoolVar(&keepIgnored, "keep-ignored", false, "Also print whitespace and comment tokens")
	fs.StringVar(&colorMode, "color", "", "Colour output: auto, always or never")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: minic [flags] <file>\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitOK
		}
		return ExitUsage
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return ExitUsage
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "minic: %v\n", err)
		return ExitUsage
	}

	// Flags given explicitly win over the file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "debug":
			cfg.Debug = debug
		case "strict":
			cfg.Mode = lexer.LENIENT.String()
			if strict {
				cfg.Mode = lexer.STRICT.String()
			}
		case "keep-ignored":
			cfg.KeepIgnored = keepIgnored
		case "color":
			cfg.Color = colorMode
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "minic: %v\n", err)
		return ExitUsage
	}

	colors.Configure(colors.Mode(cfg.Color))

	zl := newZapLogger(cfg.Debug, stderr)
	defer zl.Sync() //nolint:errcheck
	logger := zapr.NewLogger(zl).WithName("minic")

	pipeline := context.NewPipeline(&context.CompilerOptions{
		Debug: cfg.Debug,
		Lexer: cfg.LexerOptions(logger),
	})
	compileErr := pipeline.Compile(fs.Arg(0))

	for _, file := range pipeline.Context.GetAllFiles() {
		dumpTokens(stdout, file)
	}
	pipeline.Context.EmitDiagnostics(stderr)

	if compileErr != nil {
		logger.V(1).Info("finished with errors", "errors", pipeline.Context.Diagnostics.ErrorCount())
		return ExitErrors
	}
	return ExitOK
}

// newZapLogger builds the production JSON logger writing to w
func newZapLogger(debug bool, w io.Writer) *zap.Logger {
	zapCfg := zap.NewProductionConfig()
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(zapCfg.EncoderConfig), zapcore.AddSync(w), level)
	return zap.New(core)
}

// dumpTokens prints one line per token: position, kind, raw text and payload.
func dumpTokens(w io.Writer, file *context.SourceFile) {
	for _, tok := range file.Tokens {
		fmt.Fprintf(w, "%s\t%s\t%q", tok.Start, kindColor(tok.Kind).Sprint(tok.Kind), tok.Value)
		if p := tok.Payload(); p != "" {
			fmt.Fprintf(w, "\t%s", p)
		}
		fmt.Fprintln(w)
	}
}

func kindColor(kind lexer.TOKEN) colors.COLOR {
	switch kind {
	case lexer.UNKNOWN_TOKEN:
		return colors.BOLD_RED
	case lexer.KEYWORD_TOKEN:
		return colors.PURPLE
	case lexer.OPERATOR_TOKEN:
		return colors.YELLOW
	case lexer.NUMBER_TOKEN, lexer.STRING_TOKEN:
		return colors.GREEN
	case lexer.IGNORE_TOKEN:
		return colors.GREY
	default:
		return colors.WHITE
	}
}
