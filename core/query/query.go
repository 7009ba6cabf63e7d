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
	"fmt"
	"net/url"

	"github.com/google/safehtml"
	"github.com/google/truthtab/core/columns"
)

// Query represents the parsed state of a table URL
type Query struct {
	// Base path (e.g., "/table")
	Path string

	Statement string // The statement as typed
	Format    string // Output format name; empty means html
	Only      string // "1" or "0" keeps only rows with that output; empty keeps all
}

// NewQuery creates a Query from a URL
func NewQuery(u *url.URL) *Query {
	q := u.Query()
	return &Query{
		Path:      u.Path,
		Statement: q.Get("statement"),
		Format:    q.Get("format"),
		Only:      q.Get("only"),
	}
}

// Clone creates a copy of the Query
func (s *Query) Clone() *Query {
	clone := *s
	return &clone
}

// OnlyFilter returns the output value rows are filtered to, and whether a
// filter is set at all
func (s *Query) OnlyFilter() (value bool, ok bool, err error) {
	if s.Only == "" {
		return false, false, nil
	}
	v, err := columns.ParseBool(s.Only)
	if err != nil {
		return false, false, fmt.Errorf("invalid only parameter: %w", err)
	}
	return v, true, nil
}

// WithFormat returns a URL selecting a different output format
func (s *Query) WithFormat(format string) safehtml.URL {
	newState := s.Clone()
	newState.Format = format
	return newState.ToSafeURL()
}

// WithOnly returns a URL filtering rows by output; "" removes the filter
func (s *Query) WithOnly(only string) safehtml.URL {
	newState := s.Clone()
	newState.Only = only
	return newState.ToSafeURL()
}

// ToURL converts the Query back to a URL string
func (s *Query) ToURL() string {
	u := &url.URL{
		Path: s.Path,
	}

	q := u.Query()
	if s.Statement != "" {
		q.Set("statement", s.Statement)
	}
	if s.Format != "" {
		q.Set("format", s.Format)
	}
	if s.Only != "" {
		q.Set("only", s.Only)
	}

	u.RawQuery = q.Encode()
	return u.String()
}

// ToSafeURL converts the Query to a safehtml.URL
func (s *Query) ToSafeURL() safehtml.URL {
	urlStr := s.ToURL()
	// URLSanitized sanitizes the input string and returns a URL
	return safehtml.URLSanitized(urlStr)
}

// CacheKey identifies the table this query needs, independent of format
// and filtering
func (s *Query) CacheKey() string {
	return s.Statement
}
