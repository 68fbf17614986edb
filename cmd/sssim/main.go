// Command sssim replays a workload trace against each candidate
// authenticator and writes one resource-usage-annotated output file per
// variant.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/repoauth/sssim/internal/authenticator"
	"github.com/repoauth/sssim/internal/simulator"
	"github.com/repoauth/sssim/internal/workload"
	"github.com/spf13/cobra"
)

type opts struct {
	eventsPath string
	initPath   string
	configPath string
	outputDir  string
}

// registry lists every comparable authenticator by the name its flagged
// config file and output files use.
var registry = map[string]func() authenticator.Authenticator{
	"insecure":          func() authenticator.Authenticator { return authenticator.NewInsecure() },
	"hackage":           func() authenticator.Authenticator { return authenticator.NewHackage() },
	"mercury_diff":      func() authenticator.Authenticator { return authenticator.NewMercuryDiff() },
	"mercury_hash":      func() authenticator.Authenticator { return authenticator.NewMercuryHash() },
	"mercury_hash_diff": func() authenticator.Authenticator { return authenticator.NewMercuryHashDiff() },
	"sparse_merkle":     func() authenticator.Authenticator { return authenticator.NewSparseMerkle() },
	"rsa":               func() authenticator.Authenticator { return authenticator.NewRSA() },
	"rsa_cached":        func() authenticator.Authenticator { return authenticator.NewRSACached() },
	"vanilla_tuf":       func() authenticator.Authenticator { return authenticator.NewVanillaTUF() },
}

// allNames is registry's keys in a fixed, readable order, used whenever no
// config file narrows the selection.
var allNames = []string{
	"insecure", "hackage", "mercury_diff", "mercury_hash", "mercury_hash_diff",
	"sparse_merkle", "rsa", "rsa_cached", "vanilla_tuf",
}

func main() {
	var o opts

	root := &cobra.Command{
		Use:   "sssim",
		Short: "Benchmark authenticators for a secure software-package repository",
		Long: `sssim replays a recorded workload trace against each candidate
authenticator (insecure, hackage, mercury-diff, mercury-hash,
mercury-hash-diff, sparse-merkle, rsa, rsa-cached, vanilla-tuf),
measuring server compute time, client compute time, snapshot bandwidth,
and server storage per request.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(o)
		},
		SilenceUsage: true,
	}

	root.Flags().StringVar(&o.eventsPath, "events-path", "", "path to the newline-delimited JSON workload file (required)")
	root.Flags().StringVar(&o.initPath, "init-path", "", "path to an optional initial-state file, replayed before timing starts")
	root.Flags().StringVar(&o.configPath, "authenticator-config-path", "", "path to an optional file listing one authenticator name per line; absent runs all")
	root.Flags().StringVar(&o.outputDir, "output-directory", "", "directory to write <authenticator-name>.json result files into (required)")
	_ = root.MarkFlagRequired("events-path")
	_ = root.MarkFlagRequired("output-directory")

	if err := root.Execute(); err != nil {
		log.Printf("sssim: %v", err)
		os.Exit(1)
	}
}

func run(o opts) error {
	events, err := readEntries(o.eventsPath)
	if err != nil {
		return fmt.Errorf("reading events: %w", err)
	}

	var initEntries []workload.Entry
	if o.initPath != "" {
		initEntries, err = readEntries(o.initPath)
		if err != nil {
			return fmt.Errorf("reading init state: %w", err)
		}
	}

	names, err := selectedNames(o.configPath)
	if err != nil {
		return fmt.Errorf("reading authenticator config: %w", err)
	}

	if err := os.MkdirAll(o.outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, name := range names {
		build, ok := registry[name]
		if !ok {
			return fmt.Errorf("unknown authenticator %q", name)
		}

		log.Printf("sssim: running %s (%d events, %d init entries)", name, len(events), len(initEntries))
		sim := simulator.New(build())
		if len(initEntries) > 0 {
			sim.Import(initEntries)
		}
		records := sim.Run(events)

		outPath := filepath.Join(o.outputDir, name+".json")
		if err := writeRecords(outPath, records); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}
	}

	return nil
}

func readEntries(path string) ([]workload.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return workload.ReadEntries(f)
}

// selectedNames reads one authenticator name per line from path, skipping
// blank lines. An empty path selects every registered authenticator.
func selectedNames(path string) ([]string, error) {
	if path == "" {
		return allNames, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			continue
		}
		if _, ok := registry[name]; !ok {
			return nil, fmt.Errorf("unrecognized authenticator name %q", name)
		}
		names = append(names, name)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

func writeRecords(path string, records []workload.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, r := range records {
		data, err := r.MarshalJSON()
		if err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return w.Flush()
}
