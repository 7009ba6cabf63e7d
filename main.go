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

package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/fatih/color"
	"github.com/google/truthtab/core/config"
	"github.com/google/truthtab/core/protoloader"
	"github.com/google/truthtab/core/rendering"
	"github.com/google/truthtab/core/repl"
	"github.com/google/truthtab/core/server"
)

func usage() {
	fmt.Fprintf(os.Stderr, `usage: truthtab [options] [file ...]

Prints the truth table of a boolean assignment such as "c = a * b + a';".

options:
  -c FILE       read configuration from a textproto FILE
  -e STATEMENT  print the table of STATEMENT and exit
  -f FORMAT     output format: ascii, csv, html, textproto or json
  -n            disable colored output
  -s ADDR       serve tables over HTTP on ADDR
  -h            show this help

With file arguments every non-blank line is evaluated in turn. Without
arguments statements are read interactively; type :quit to exit.
`)
}

func main() {
	os.Exit(run())
}

func run() int {
	opts, optind, err := getopt.Getopts(os.Args, "c:e:f:ns:h")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		usage()
		return 2
	}
	files := os.Args[optind:]

	var configPath, statement, format, listen string
	var evalMode, serveMode, noColor bool
	for _, opt := range opts {
		switch opt.Option {
		case 'c':
			configPath = opt.Value
		case 'e':
			statement = opt.Value
			evalMode = true
		case 'f':
			format = opt.Value
		case 'n':
			noColor = true
		case 's':
			listen = opt.Value
			serveMode = true
		case 'h':
			usage()
			return 0
		}
	}

	loader, err := protoloader.NewDefaultLoader()
	if err != nil {
		log.Fatalf("Failed to build schema registry: %v", err)
	}

	cfg := config.Default()
	if configPath != "" {
		if cfg, err = config.Load(loader, configPath); err != nil {
			log.Fatalf("Failed to load %s: %v", configPath, err)
		}
	}
	if format != "" {
		if cfg.Format, err = rendering.ParseFormat(format); err != nil {
			log.Fatalf("%v", err)
		}
	}
	if noColor {
		cfg.NoColor = true
	}
	if cfg.NoColor {
		color.NoColor = true
	}
	if listen != "" {
		cfg.ListenAddress = listen
	}

	renderer, err := rendering.NewTableRenderer(loader)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	if !color.NoColor {
		bold := color.New(color.Bold)
		renderer.HeaderStyle = func(s string) string { return bold.Sprint(s) }
	}

	if serveMode {
		srv := server.NewServer(renderer, cfg.TableOptions())
		log.Fatal(srv.ListenAndServe(cfg.ListenAddress))
	}

	session := repl.NewSession(renderer, os.Stdout, os.Stderr, repl.Options{
		Prompt:       cfg.Prompt,
		Format:       cfg.Format,
		TableOptions: cfg.TableOptions(),
		NoColor:      color.NoColor,
	})

	if evalMode {
		if !session.Eval(statement) {
			return 1
		}
		return 0
	}

	if len(files) > 0 {
		return runFiles(session, files)
	}

	term := repl.OpenTerminal(cfg.HistoryFile)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		<-signals
		session.Stop()
		term.Close()
		os.Exit(1)
	}()

	err = session.Run(term)
	signal.Stop(signals)
	term.Close()
	if err != nil {
		log.Printf("%v", err)
		return 1
	}
	return 0
}

// runFiles evaluates every line of every file and returns the exit status
func runFiles(session *repl.Session, files []string) int {
	status := 0
	for _, name := range files {
		f, err := os.Open(name)
		if err != nil {
			log.Printf("Failed to open %s: %v", name, err)
			status = 1
			continue
		}
		failures, err := session.RunBatch(f)
		f.Close()
		if err != nil {
			log.Printf("%s: %v", name, err)
			status = 1
		}
		if failures > 0 {
			status = 1
		}
	}
	return status
}
