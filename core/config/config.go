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

// Package config holds the runtime settings of truthtab. Settings are read
// from a truthtab.Config textproto file; fields absent from the file keep
// their defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/truthtab/core/analysis"
	"github.com/google/truthtab/core/protoloader"
	"github.com/google/truthtab/core/rendering"
	"github.com/google/truthtab/core/truthtable"
	"google.golang.org/protobuf/reflect/protoreflect"
)

const (
	DefaultPrompt        = "$ "
	DefaultHistoryName   = ".truthtab_history"
	DefaultMaxVariables  = 20
	DefaultListenAddress = "127.0.0.1:8098"
)

// Config is the merged configuration
type Config struct {
	Prompt        string
	HistoryFile   string
	Format        rendering.Format
	MaxVariables  int
	SelfReference analysis.SelfReferencePolicy
	NoColor       bool
	ListenAddress string
}

// Default returns the built-in configuration. HistoryFile is placed in the
// user's home directory, or the working directory if that is unknown.
func Default() *Config {
	history := DefaultHistoryName
	if home, err := os.UserHomeDir(); err == nil {
		history = filepath.Join(home, DefaultHistoryName)
	}
	return &Config{
		Prompt:        DefaultPrompt,
		HistoryFile:   history,
		Format:        rendering.FormatASCII,
		MaxVariables:  DefaultMaxVariables,
		SelfReference: analysis.SelfReferencePermit,
		ListenAddress: DefaultListenAddress,
	}
}

// TableOptions returns the pipeline options this configuration selects
func (c *Config) TableOptions() truthtable.Options {
	return truthtable.Options{
		Analysis:     analysis.Options{SelfReference: c.SelfReference},
		MaxVariables: c.MaxVariables,
	}
}

// Load reads the textproto file at path over the defaults
func Load(loader *protoloader.Loader, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(loader, data)
}

// Parse applies textproto content over the defaults
func Parse(loader *protoloader.Loader, data []byte) (*Config, error) {
	msg, err := loader.ParseTextproto(data, protoloader.ConfigMessage)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := cfg.apply(msg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) apply(msg protoreflect.Message) error {
	var err error
	msg.Range(func(fd protoreflect.FieldDescriptor, v protoreflect.Value) bool {
		switch fd.Name() {
		case "prompt":
			c.Prompt = v.String()
		case "history_file":
			c.HistoryFile = expandHome(v.String())
		case "format":
			c.Format, err = rendering.ParseFormat(v.String())
		case "max_variables":
			if v.Uint() > truthtable.HardVariableLimit {
				err = fmt.Errorf("max_variables %d exceeds %d", v.Uint(), truthtable.HardVariableLimit)
				break
			}
			c.MaxVariables = int(v.Uint())
		case "self_reference":
			c.SelfReference, err = analysis.ParseSelfReferencePolicy(v.String())
		case "no_color":
			c.NoColor = v.Bool()
		case "listen_address":
			c.ListenAddress = v.String()
		}
		return err == nil
	})
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
