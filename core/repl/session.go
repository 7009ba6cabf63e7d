/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Truthtab Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package repl reads statements line by line and prints a truth table for
// each. Errors are reported and the session continues with the next line.
package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/google/truthtab/core/expr"
	"github.com/google/truthtab/core/rendering"
	"github.com/google/truthtab/core/truthtable"
	"github.com/peterh/liner"
	"github.com/tevino/abool/v2"
)

// LineReader is the line editor a Session reads from. *liner.State
// satisfies it.
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// Options configures a Session
type Options struct {
	Prompt       string
	Format       rendering.Format
	TableOptions truthtable.Options
	NoColor      bool
}

// Session evaluates statements and writes tables to out and diagnostics to
// errOut.
type Session struct {
	renderer *rendering.TableRenderer
	out      io.Writer
	errOut   io.Writer
	opts     Options
	stopped  *abool.AtomicBool

	errColor  *color.Color
	warnColor *color.Color
}

// NewSession creates a session writing to out and errOut
func NewSession(renderer *rendering.TableRenderer, out, errOut io.Writer, opts Options) *Session {
	errColor := color.New(color.FgRed)
	warnColor := color.New(color.FgYellow)
	if opts.NoColor {
		errColor.DisableColor()
		warnColor.DisableColor()
	}
	return &Session{
		renderer:  renderer,
		out:       out,
		errOut:    errOut,
		opts:      opts,
		stopped:   abool.NewBool(false),
		errColor:  errColor,
		warnColor: warnColor,
	}
}

// Stop ends Run after the current line. It is safe to call from another
// goroutine.
func (s *Session) Stop() {
	s.stopped.Set()
}

// Stopped reports whether the session has been asked to stop
func (s *Session) Stopped() bool {
	return s.stopped.IsSet()
}

func (s *Session) report(message string) {
	s.errColor.Fprintf(s.errOut, "Error: %s\n", message)
}

// warn prints a lexical warning; processing of the line continues
func (s *Session) warn(message string) {
	s.warnColor.Fprintf(s.errOut, "Error: %s\n", message)
}

// isCommand handles :quit and :q. It reports whether line was a command.
func (s *Session) isCommand(line string) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, ":") {
		return false
	}
	switch strings.ToLower(trimmed) {
	case ":quit", ":q":
		s.Stop()
	default:
		fmt.Fprintln(s.errOut, "unknown command. Type :quit to exit.")
	}
	return true
}

// Eval processes one line: it prints the table of the first statement, or
// the error that prevented it. Lexical warnings are printed either way.
// It reports whether a table was printed.
func (s *Session) Eval(line string) bool {
	table, diags, err := truthtable.Build(line, s.opts.TableOptions)
	for _, d := range diags {
		s.warn(d.Message)
	}
	if err != nil {
		s.report(errorMessage(err))
		return false
	}

	if err := s.renderer.Render(s.out, s.opts.Format, table, table.ToDataTable()); err != nil {
		s.report(err.Error())
		return false
	}
	return true
}

// errorMessage returns the user-facing text of a pipeline error
func errorMessage(err error) string {
	var syntaxErr *expr.SyntaxError
	if errors.As(err, &syntaxErr) {
		return syntaxErr.Message
	}
	return err.Error()
}

// Run prompts for lines until EOF, :quit or Stop. Ctrl-C abandons the
// current line only.
func (s *Session) Run(reader LineReader) error {
	for !s.Stopped() {
		line, err := reader.Prompt(s.opts.Prompt)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out)
			return nil
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		if s.isCommand(line) {
			continue
		}
		if s.Eval(line) {
			reader.AppendHistory(line)
		}
	}
	return nil
}

// RunBatch evaluates every non-blank line of r. It returns the number of
// lines that did not produce a table.
func (s *Session) RunBatch(r io.Reader) (int, error) {
	failures := 0
	scanner := bufio.NewScanner(r)
	for scanner.Scan() && !s.Stopped() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !s.Eval(line) {
			failures++
		}
	}
	if err := scanner.Err(); err != nil {
		return failures, fmt.Errorf("failed to read input: %w", err)
	}
	return failures, nil
}
