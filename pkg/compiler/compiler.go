// Package compiler provides the translation pipeline for .int source files.
// It transforms source text into a C++ translation unit through three phases:
// 1. Lexer: Tokenization
// 2. Parser: Segmentation into the global region and functions
// 3. Codegen: C++ text emission
//
// This package provides a unified API over the phases:
// - Compile: Translates source code held in memory
// - CompileFile: Translates a file (handles BOM, UTF-16 and Shift-JIS input)
// - TokenizeFile: Runs only the lexer over a file
// - WriteOutput: Writes a translation unit to disk in one piece
package compiler

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/zurustar/intc/pkg/compiler/codegen"
	"github.com/zurustar/intc/pkg/compiler/lexer"
	"github.com/zurustar/intc/pkg/compiler/parser"
	"github.com/zurustar/intc/pkg/compiler/token"
	"github.com/zurustar/intc/pkg/script"
)

// CompileOptions provides configuration options for compilation.
type CompileOptions struct {
	// Resolver supplies header text for import statements.
	Resolver codegen.HeaderResolver

	// Logger receives per-phase debug records. Nil disables logging.
	Logger *slog.Logger
}

// Result holds every intermediate artifact of one translation.
type Result struct {
	Tokens  []token.Token
	Program *parser.Program
	Output  string

	// TranslateTime is the time spent in the codegen phase only.
	TranslateTime time.Duration
}

// Compile translates source code to C++.
// It chains the lexer → parser → codegen pipeline and stops at the first
// failing phase.
func Compile(source string, opts CompileOptions) (*Result, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	// Phase 1: Lexical analysis
	tokens := lexer.Tokenize(source)
	log.Debug("Tokenized source", "bytes", len(source), "tokens", len(tokens))

	// Phase 2: Segmentation
	program, err := parser.Segment(tokens)
	if err != nil {
		cerr := &CompileError{Phase: PhaseParser, Index: -1, Err: err}
		var serr *parser.StructuralError
		if errors.As(err, &serr) {
			cerr.Index = serr.Index
			cerr.Context = GenerateErrorContext(tokens, serr.Index)
		}
		return nil, cerr
	}
	log.Debug("Segmented program", "functions", len(program.Order), "globals", len(program.Globals))

	// Phase 3: Code generation
	start := time.Now()
	out, err := codegen.New(opts.Resolver).Generate(program)
	if err != nil {
		return nil, &CompileError{Phase: PhaseCodegen, Index: -1, Err: err}
	}
	elapsed := time.Since(start)
	log.Debug("Generated translation unit", "bytes", len(out), "elapsed", elapsed)

	return &Result{
		Tokens:        tokens,
		Program:       program,
		Output:        out,
		TranslateTime: elapsed,
	}, nil
}

// CompileFile reads path, converts it to UTF-8 and translates it.
func CompileFile(path string, opts CompileOptions) (*Result, error) {
	s, err := script.Load(path)
	if err != nil {
		return nil, &CompileError{Phase: PhaseLoad, Index: -1, Err: err}
	}
	if opts.Logger != nil {
		opts.Logger.Debug("Loaded source", "path", s.Path, "size", s.Size, "encoding", s.Encoding)
	}
	return Compile(s.Content, opts)
}

// TokenizeFile reads path, converts it to UTF-8 and returns its tokens.
func TokenizeFile(path string) ([]token.Token, error) {
	s, err := script.Load(path)
	if err != nil {
		return nil, &CompileError{Phase: PhaseLoad, Index: -1, Err: err}
	}
	return lexer.Tokenize(s.Content), nil
}

// WriteOutput writes the translation unit to path, replacing any previous
// contents.
func WriteOutput(path string, output string) error {
	if err := os.WriteFile(path, []byte(output), 0644); err != nil {
		return &CompileError{
			Phase: PhaseWrite,
			Index: -1,
			Err:   fmt.Errorf("failed to write %s: %w", path, err),
		}
	}
	return nil
}
