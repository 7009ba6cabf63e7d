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

package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/google/truthtab/core/expr"
	"github.com/google/truthtab/core/query"
	"github.com/google/truthtab/core/rendering"
	"github.com/google/truthtab/core/truthtable"
	"github.com/google/truthtab/core/views"
	"github.com/segmentio/fasthash/fnv1a"
)

// maxCachedTables bounds the table cache; it is emptied when full
const maxCachedTables = 256

type cachedTable struct {
	table *truthtable.Table
	diags []expr.Diagnostic
}

// Server represents the application server with all its dependencies
type Server struct {
	renderer *rendering.TableRenderer
	opts     truthtable.Options

	// Cache of built tables, keyed by statement text
	mu         sync.Mutex
	tableCache map[string]*cachedTable
}

// NewServer creates a server that builds tables with opts
func NewServer(renderer *rendering.TableRenderer, opts truthtable.Options) *Server {
	return &Server{
		renderer:   renderer,
		opts:       opts,
		tableCache: make(map[string]*cachedTable),
	}
}

// TableHandlerResult represents the result of handling a table request
type TableHandlerResult struct {
	Error      error
	StatusCode int
	Message    string
}

// TimingCollector collects timing measurements for various operations
type TimingCollector struct {
	entries []views.TimingEntry
	start   time.Time
}

// NewTimingCollector creates a new timing collector
func NewTimingCollector() *TimingCollector {
	return &TimingCollector{start: time.Now()}
}

// Record records a timing entry
func (tc *TimingCollector) Record(operation string, duration time.Duration) {
	tc.entries = append(tc.entries, views.TimingEntry{
		Name:     operation,
		Duration: views.FormatDuration(duration),
	})
}

// GetEntries returns all timing entries
func (tc *TimingCollector) GetEntries() []views.TimingEntry {
	return tc.entries
}

// Total returns the elapsed time since the collector was created
func (tc *TimingCollector) Total() string {
	return views.FormatDuration(time.Since(tc.start))
}

// getTable returns the cached table for statement, building it on a miss.
// Failed builds are not cached.
func (s *Server) getTable(statement string, timing *TimingCollector) (*cachedTable, error) {
	s.mu.Lock()
	cached, ok := s.tableCache[statement]
	s.mu.Unlock()
	if ok {
		timing.Record("Cache hit", 0)
		return cached, nil
	}

	buildStart := time.Now()
	table, diags, err := truthtable.Build(statement, s.opts)
	timing.Record("Build table", time.Since(buildStart))
	if err != nil {
		return nil, err
	}

	cached = &cachedTable{table: table, diags: diags}
	s.mu.Lock()
	if len(s.tableCache) >= maxCachedTables {
		s.tableCache = make(map[string]*cachedTable)
	}
	s.tableCache[statement] = cached
	s.mu.Unlock()
	return cached, nil
}

// errorMessage returns the user-facing text of a pipeline error
func errorMessage(err error) string {
	var syntaxErr *expr.SyntaxError
	if errors.As(err, &syntaxErr) {
		return syntaxErr.Message
	}
	return err.Error()
}

// ETag returns the entity tag of a response body
func ETag(body []byte) string {
	return `"` + strconv.FormatUint(fnv1a.HashBytes64(body), 16) + `"`
}

// HandleTableRequest builds and renders the table named by requestURL.
// ifNoneMatch is the request's If-None-Match header. Returns a non-nil
// result when the response is not a rendered table.
func (s *Server) HandleTableRequest(w io.Writer, requestURL *url.URL, ifNoneMatch string, setHeader func(key, value string)) *TableHandlerResult {
	timing := NewTimingCollector()

	// Parse URL into Query
	parseStart := time.Now()
	q := query.NewQuery(requestURL)
	timing.Record("Parse query", time.Since(parseStart))

	format := rendering.FormatHTML
	if q.Format != "" {
		f, err := rendering.ParseFormat(q.Format)
		if err != nil {
			return &TableHandlerResult{StatusCode: http.StatusBadRequest, Message: err.Error()}
		}
		format = f
	}
	only, filtered, err := q.OnlyFilter()
	if err != nil {
		return &TableHandlerResult{StatusCode: http.StatusBadRequest, Message: err.Error()}
	}

	cached, err := s.getTable(q.CacheKey(), timing)
	if err != nil {
		return &TableHandlerResult{StatusCode: http.StatusBadRequest, Message: errorMessage(err), Error: err}
	}

	dt := cached.table.ToDataTable()
	if filtered {
		filterStart := time.Now()
		dt = dt.FilterRows(only)
		timing.Record("Filter rows", time.Since(filterStart))
	}

	var body bytes.Buffer
	renderStart := time.Now()
	if format == rendering.FormatHTML {
		vm := views.BuildTableViewModel(cached.table, dt, q)
		for _, d := range cached.diags {
			vm.Warnings = append(vm.Warnings, d.String())
		}
		timing.Record("Build view model", time.Since(renderStart))
		vm.Timing = timing.GetEntries()
		vm.TotalElapsed = timing.Total()
		err = s.renderer.RenderHTML(&body, vm)
	} else {
		err = s.renderer.Render(&body, format, cached.table, dt)
	}
	if err != nil {
		log.Printf("Template rendering error: %v", err)
		return &TableHandlerResult{StatusCode: http.StatusInternalServerError, Message: "rendering failed", Error: err}
	}

	etag := ETag(body.Bytes())
	setHeader("ETag", etag)
	if ifNoneMatch == etag {
		return &TableHandlerResult{StatusCode: http.StatusNotModified}
	}

	setHeader("Content-Type", format.ContentType())
	if _, err := w.Write(body.Bytes()); err != nil {
		return &TableHandlerResult{Error: err}
	}
	return nil
}

// HandleLandingRequest processes the landing page request
func (s *Server) HandleLandingRequest(w io.Writer, errMsg string, setHeader func(key, value string)) error {
	setHeader("Content-Type", "text/html; charset=utf-8")

	if err := s.renderer.RenderLanding(w, views.BuildLandingViewModel(errMsg)); err != nil {
		log.Printf("Landing page rendering error: %v", err)
		return err
	}
	return nil
}

// Handler returns the HTTP routes of the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/table", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		result := s.HandleTableRequest(w, r.URL, r.Header.Get("If-None-Match"), w.Header().Set)
		if result == nil {
			return
		}
		switch {
		case result.StatusCode == http.StatusNotModified:
			w.WriteHeader(http.StatusNotModified)
		case result.StatusCode != 0:
			http.Error(w, fmt.Sprintf("Error: %s", result.Message), result.StatusCode)
		default:
			log.Printf("Failed to write response: %v", result.Error)
		}
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		s.HandleLandingRequest(w, "", w.Header().Set)
	})

	return mux
}

// ListenAndServe serves Handler on addr
func (s *Server) ListenAndServe(addr string) error {
	log.Printf("Listening on http://%s/", addr)
	return http.ListenAndServe(addr, s.Handler())
}
