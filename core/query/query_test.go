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

package query

import (
	"net/url"
	"testing"
)

func TestNewQuery(t *testing.T) {
	u, _ := url.Parse("/table?statement=c+%3D+a+*+b%3B&format=csv&only=1")
	q := NewQuery(u)

	if q.Path != "/table" {
		t.Errorf("expected path /table, got %s", q.Path)
	}
	if q.Statement != "c = a * b;" {
		t.Errorf("unexpected statement %q", q.Statement)
	}
	if q.Format != "csv" || q.Only != "1" {
		t.Errorf("unexpected format/only %q/%q", q.Format, q.Only)
	}
}

// TestLinksRoundTrip checks that generated links parse back to the same state
func TestLinksRoundTrip(t *testing.T) {
	u, _ := url.Parse("/table?statement=c+%3D+a%27%3B")
	q := NewQuery(u)

	t.Run("WithFormat", func(t *testing.T) {
		parsed, err := url.Parse(q.WithFormat("json").String())
		if err != nil {
			t.Fatalf("invalid URL: %v", err)
		}
		next := NewQuery(parsed)
		if next.Format != "json" || next.Statement != q.Statement {
			t.Errorf("unexpected state %+v", next)
		}
		if q.Format != "" {
			t.Errorf("WithFormat mutated the original query")
		}
	})

	t.Run("WithOnly", func(t *testing.T) {
		parsed, _ := url.Parse(q.WithOnly("0").String())
		next := NewQuery(parsed)
		if next.Only != "0" || next.Statement != q.Statement {
			t.Errorf("unexpected state %+v", next)
		}

		parsed, _ = url.Parse(next.WithOnly("").String())
		if NewQuery(parsed).Only != "" {
			t.Errorf("expected the filter to be removed")
		}
	})
}

func TestOnlyFilter(t *testing.T) {
	tests := []struct {
		only    string
		value   bool
		ok      bool
		wantErr bool
	}{
		{"", false, false, false},
		{"1", true, true, false},
		{"0", false, true, false},
		{"true", true, true, false},
		{"maybe", false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.only, func(t *testing.T) {
			q := &Query{Only: tt.only}
			value, ok, err := q.OnlyFilter()
			if (err != nil) != tt.wantErr {
				t.Fatalf("unexpected error state: %v", err)
			}
			if value != tt.value || ok != tt.ok {
				t.Errorf("expected (%v, %v), got (%v, %v)", tt.value, tt.ok, value, ok)
			}
		})
	}
}

func TestToURLOmitsEmpty(t *testing.T) {
	q := &Query{Path: "/table"}
	if got := q.ToURL(); got != "/table" {
		t.Errorf("expected /table, got %s", got)
	}
	if q.CacheKey() != "" {
		t.Errorf("expected empty cache key")
	}
}
