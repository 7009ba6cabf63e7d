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

package repl

import (
	"log"
	"os"

	"github.com/peterh/liner"
)

// Terminal is a liner line editor whose history is persisted to a file
type Terminal struct {
	*liner.State
	historyFile string
}

// OpenTerminal puts the terminal in line-editing mode and loads history from
// historyFile if it exists. An empty historyFile disables persistence.
func OpenTerminal(historyFile string) *Terminal {
	ln := liner.NewLiner()
	ln.SetCtrlCAborts(true)

	t := &Terminal{State: ln, historyFile: historyFile}
	if historyFile == "" {
		return t
	}
	if f, err := os.Open(historyFile); err == nil {
		if _, err := ln.ReadHistory(f); err != nil {
			log.Printf("Failed to read history %s: %v", historyFile, err)
		}
		f.Close()
	}
	return t
}

// Close saves history and restores the terminal
func (t *Terminal) Close() error {
	if t.historyFile != "" {
		if f, err := os.Create(t.historyFile); err == nil {
			if _, err := t.WriteHistory(f); err != nil {
				log.Printf("Failed to write history %s: %v", t.historyFile, err)
			}
			f.Close()
		} else {
			log.Printf("Failed to save history: %v", err)
		}
	}
	return t.State.Close()
}
