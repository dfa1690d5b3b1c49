/*
 * Copyright 2025 The FlowSift Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Command flowsift runs a named traffic-monitoring query over Walts-format
// CSV input files, or over a synthetic packet stream when no input is
// given, dumping results to stdout.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/flowsift/flowsift/condition"
	"github.com/flowsift/flowsift/logger"
	"github.com/flowsift/flowsift/model"
	"github.com/flowsift/flowsift/operator"
	"github.com/flowsift/flowsift/queries"
	"github.com/flowsift/flowsift/sink"
)

func main() {
	var (
		queryName  string
		filterExpr string
		inputs     []string
		eidKey     string
		showReset  bool
		packets    int
		logLevel   string
		list       bool
	)
	pflag.StringVarP(&queryName, "query", "q", "count_pkts", "query to run")
	pflag.StringVarP(&filterExpr, "filter", "f", "", "expression applied to query output, e.g. 'pkts >= 2'")
	pflag.StringSliceVarP(&inputs, "input", "i", nil, "Walts CSV input file, one per query input")
	pflag.StringVar(&eidKey, "eid-key", "eid", "field name carrying the window id")
	pflag.BoolVar(&showReset, "show-reset", false, "dump window boundaries as [reset] markers")
	pflag.IntVar(&packets, "packets", 20, "synthetic packet count when no input files are given")
	pflag.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error, off")
	pflag.BoolVar(&list, "list", false, "list available queries and exit")
	pflag.Parse()

	zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	log := logger.NewZerolog(zl)
	log.SetLevel(parseLevel(logLevel))
	logger.SetDefault(log)

	if list {
		fmt.Println(strings.Join(queries.Names(), "\n"))
		return
	}

	if err := run(os.Stdout, queryName, filterExpr, inputs, eidKey, showReset, packets); err != nil {
		logger.Error("run failed: %v", err)
		os.Exit(1)
	}
}

func run(w io.Writer, queryName, filterExpr string, inputs []string, eidKey string, showReset bool, packets int) error {
	var out operator.Operator = sink.NewDump(w, showReset)
	if filterExpr != "" {
		filtered, err := condition.Filter(filterExpr, out)
		if err != nil {
			return err
		}
		out = filtered
	}

	heads, err := buildHeads(queryName, len(inputs), out)
	if err != nil {
		return err
	}
	logger.Info("running query %s with %d input head(s)", queryName, len(heads))

	if len(inputs) > 0 {
		readers := make([]io.Reader, len(inputs))
		for i, path := range inputs {
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()
			readers[i] = f
		}
		return sink.ReadWaltsCSV(readers, eidKey, heads)
	}

	for _, p := range queries.SamplePackets(packets) {
		for _, head := range heads {
			if err := head.Consume(p); err != nil {
				return err
			}
		}
	}
	// End of stream: flush whatever the windows still hold.
	for _, head := range heads {
		if err := head.Advance(model.Record{}); err != nil {
			return err
		}
	}
	return nil
}

// buildHeads resolves a query name into its input heads. A single-input
// query fed several files gets one independent pipeline per file.
func buildHeads(name string, inputCount int, out operator.Operator) ([]operator.Operator, error) {
	if multi, ok := queries.LookupMulti(name); ok {
		heads := multi(out)
		if inputCount > 0 && inputCount != len(heads) {
			return nil, fmt.Errorf("query %s needs %d input files, got %d", name, len(heads), inputCount)
		}
		return heads, nil
	}
	build, ok := queries.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown query %q (try --list)", name)
	}
	n := inputCount
	if n == 0 {
		n = 1
	}
	heads := make([]operator.Operator, n)
	for i := range heads {
		heads[i] = build(out)
	}
	return heads, nil
}

func parseLevel(s string) logger.Level {
	switch strings.ToLower(s) {
	case "debug":
		return logger.DEBUG
	case "warn":
		return logger.WARN
	case "error":
		return logger.ERROR
	case "off":
		return logger.OFF
	default:
		return logger.INFO
	}
}
