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

package rendering

import (
	"embed"
	"fmt"
	"io"

	"github.com/google/safehtml/template"
	"github.com/google/truthtab/core/protoloader"
	"github.com/google/truthtab/core/tables"
	"github.com/google/truthtab/core/truthtable"
	"github.com/google/truthtab/core/views"
)

//go:embed templates/*
var templateFS embed.FS

// TableRenderer writes truth tables in every supported format
type TableRenderer struct {
	tableTemplate   *template.Template
	landingTemplate *template.Template
	loader          *protoloader.Loader

	// HeaderStyle decorates ascii header cells, e.g. with terminal colours.
	// nil leaves them plain.
	HeaderStyle func(string) string
}

// NewTableRenderer creates a new table renderer. loader supplies the
// message types for the textproto and json formats.
func NewTableRenderer(loader *protoloader.Loader) (*TableRenderer, error) {
	trustedFS := template.TrustedFSFromEmbed(templateFS)

	// Parse the table template
	tableTemplate, err := template.New("table.html").ParseFS(trustedFS, "templates/table.html")
	if err != nil {
		return nil, err
	}

	// Parse the landing page template
	landingTemplate, err := template.New("landing.html").ParseFS(trustedFS, "templates/landing.html")
	if err != nil {
		return nil, err
	}

	return &TableRenderer{
		tableTemplate:   tableTemplate,
		landingTemplate: landingTemplate,
		loader:          loader,
	}, nil
}

// Render writes table in format f. dt is the columnar form of table,
// possibly filtered; the protobuf formats always carry the full table.
func (r *TableRenderer) Render(w io.Writer, f Format, table *truthtable.Table, dt *tables.DataTable) error {
	switch f {
	case FormatASCII:
		_, err := io.WriteString(w, dt.ToAsciiStyled(r.HeaderStyle))
		return err
	case FormatCSV:
		return dt.WriteCSV(w)
	case FormatHTML:
		return r.RenderHTML(w, views.BuildTableViewModel(table, dt, nil))
	case FormatTextproto:
		data, err := r.loader.MarshalTableText(table)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case FormatJSON:
		data, err := r.loader.MarshalTableJSON(table)
		if err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
		_, err = io.WriteString(w, "\n")
		return err
	}
	return fmt.Errorf("unsupported format %v", f)
}

// RenderHTML renders a TableViewModel to the provided writer
func (r *TableRenderer) RenderHTML(w io.Writer, vm views.TableViewModel) error {
	return r.tableTemplate.Execute(w, vm)
}

// RenderLanding renders a LandingViewModel to the provided writer
func (r *TableRenderer) RenderLanding(w io.Writer, vm views.LandingViewModel) error {
	return r.landingTemplate.Execute(w, vm)
}
