/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Truthtab Authors
*/

package rendering

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/truthtab/core/protoloader"
	"github.com/google/truthtab/core/truthtable"
	"github.com/google/truthtab/core/views"
)

func newTestRenderer(t *testing.T) *TableRenderer {
	t.Helper()
	loader, err := protoloader.NewDefaultLoader()
	if err != nil {
		t.Fatalf("NewDefaultLoader: %v", err)
	}
	r, err := NewTableRenderer(loader)
	if err != nil {
		t.Fatalf("NewTableRenderer: %v", err)
	}
	return r
}

func buildTable(t *testing.T) *truthtable.Table {
	t.Helper()
	table, _, err := truthtable.Build("c = a * b + a';", truthtable.Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return table
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"ascii", FormatASCII, false},
		{"CSV", FormatCSV, false},
		{" html ", FormatHTML, false},
		{"textproto", FormatTextproto, false},
		{"json", FormatJSON, false},
		{"xml", FormatASCII, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("unexpected error state: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
			if !tt.wantErr && got.String() != strings.ToLower(strings.TrimSpace(tt.input)) {
				t.Errorf("String() = %q does not match %q", got.String(), tt.input)
			}
		})
	}
}

func TestRenderTextFormats(t *testing.T) {
	r := newTestRenderer(t)
	table := buildTable(t)

	tests := []struct {
		format   Format
		contains []string
	}{
		{FormatASCII, []string{"| a | b | c |", "| 1 | 0 | 0 |", "+---+---+---+"}},
		{FormatCSV, []string{"a,b,c\n", "1,0,0\n", "1,1,1\n"}},
		{FormatTextproto, []string{`statement:`, `header:`, `rows:`, `output:`}},
		{FormatJSON, []string{`"header"`, `"rows"`, `"output"`}},
		{FormatHTML, []string{"<table", "Truth table for c", "Σm(0, 1, 3)"}},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			var buf bytes.Buffer
			if err := r.Render(&buf, tt.format, table, table.ToDataTable()); err != nil {
				t.Fatalf("Render: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output does not contain %q:\n%s", want, buf.String())
				}
			}
		})
	}
}

func TestRenderASCIIHeaderStyle(t *testing.T) {
	r := newTestRenderer(t)
	r.HeaderStyle = strings.ToUpper
	table := buildTable(t)

	var buf bytes.Buffer
	if err := r.Render(&buf, FormatASCII, table, table.ToDataTable()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), "| A | B | C |") {
		t.Errorf("header style not applied:\n%s", buf.String())
	}
}

func TestRenderHTMLEscapes(t *testing.T) {
	r := newTestRenderer(t)
	table := buildTable(t)
	vm := views.BuildTableViewModel(table, table.ToDataTable(), nil)
	vm.Warnings = []string{`Unexpected character. '<' at position 3`}

	var buf bytes.Buffer
	if err := r.RenderHTML(&buf, vm); err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	if strings.Contains(buf.String(), "'<'") {
		t.Errorf("warning was not escaped:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), `class="output"`) {
		t.Errorf("output column is not marked")
	}
}

func TestRenderLanding(t *testing.T) {
	r := newTestRenderer(t)

	var buf bytes.Buffer
	if err := r.RenderLanding(&buf, views.BuildLandingViewModel("Expect expression.")); err != nil {
		t.Fatalf("RenderLanding: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `action="/table"`) || !strings.Contains(out, "Error: Expect expression.") {
		t.Errorf("unexpected landing page:\n%s", out)
	}
	if !strings.Contains(out, "/table?statement=") {
		t.Errorf("landing page has no example links:\n%s", out)
	}
}

func TestContentType(t *testing.T) {
	if FormatJSON.ContentType() != "application/json" {
		t.Errorf("unexpected json content type")
	}
	if !strings.HasPrefix(FormatHTML.ContentType(), "text/html") {
		t.Errorf("unexpected html content type")
	}
	if !strings.HasPrefix(FormatTextproto.ContentType(), "text/plain") {
		t.Errorf("unexpected textproto content type")
	}
}
