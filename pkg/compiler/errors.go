// Package compiler provides the translation pipeline for .int source files.
// This file defines the CompileError type for structured error reporting.
package compiler

import (
	"fmt"
	"strings"

	"github.com/zurustar/intc/pkg/compiler/token"
)

// Phases reported in CompileError.Phase.
const (
	PhaseLoad    = "load"
	PhaseParser  = "parser"
	PhaseCodegen = "codegen"
	PhaseWrite   = "write"
)

// CompileError wraps a failure of one pipeline phase.
//
// Index is the offending token index for parser errors and -1 otherwise.
// Context, when set, shows the tokens around Index.
type CompileError struct {
	Phase   string
	Index   int
	Context string
	Err     error
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s error at token %d: %v\n%s", e.Phase, e.Index, e.Err, e.Context)
	}
	return fmt.Sprintf("%s error: %v", e.Phase, e.Err)
}

// Unwrap returns the underlying phase error.
func (e *CompileError) Unwrap() error {
	return e.Err
}

// GenerateErrorContext renders the tokens around index, two on each side,
// with the offending position marked.
//
// Example output:
//
//	  3 | IDENT(f)
//	  4 | OP(()
//	> 5 | end of input
func GenerateErrorContext(tokens []token.Token, index int) string {
	if index < 0 {
		return ""
	}

	start := index - 2
	if start < 0 {
		start = 0
	}
	end := index + 3
	if end > len(tokens)+1 {
		end = len(tokens) + 1
	}
	if start >= end {
		return ""
	}

	width := len(fmt.Sprintf("%d", end-1))

	var buf strings.Builder
	for i := start; i < end; i++ {
		text := "end of input"
		if i < len(tokens) {
			text = tokens[i].String()
		}
		marker := "  "
		if i == index {
			marker = "> "
		}
		fmt.Fprintf(&buf, "%s%*d | %s\n", marker, width, i, text)
	}
	return buf.String()
}
