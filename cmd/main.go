// Copyright Zero-Trust Redactor Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/HersonAlmeida/Zero-Trust-Redactor/internal/audit"
	"github.com/HersonAlmeida/Zero-Trust-Redactor/internal/config"
	"github.com/HersonAlmeida/Zero-Trust-Redactor/internal/formatters"
	jsonformatter "github.com/HersonAlmeida/Zero-Trust-Redactor/internal/formatters/json"
	textformatter "github.com/HersonAlmeida/Zero-Trust-Redactor/internal/formatters/text"
	"github.com/HersonAlmeida/Zero-Trust-Redactor/internal/fusion"
	"github.com/HersonAlmeida/Zero-Trust-Redactor/internal/observability"
	"github.com/HersonAlmeida/Zero-Trust-Redactor/internal/pagetext"
	"github.com/HersonAlmeida/Zero-Trust-Redactor/internal/patterns"
	"github.com/HersonAlmeida/Zero-Trust-Redactor/internal/redactor"
	"github.com/HersonAlmeida/Zero-Trust-Redactor/internal/scanner"
	"github.com/HersonAlmeida/Zero-Trust-Redactor/internal/version"
	"github.com/HersonAlmeida/Zero-Trust-Redactor/internal/web"
)

func main() {
	// Optional .env for local overrides; absence is not an error.
	_ = godotenv.Load()

	var (
		filePath    = flag.String("file", "", "Document to scan (text or PDF)")
		presetList  = flag.String("presets", "", "Comma-separated preset ids to apply")
		keywordList = flag.String("keywords", "", "Comma-separated custom keywords to redact verbatim")
		manualList  = flag.String("manual", "", "Comma-separated entities to add manually")
		format      = flag.String("format", "", "Output format: text or json")
		showText    = flag.Bool("show-text", false, "Print entity text verbatim instead of masked")
		verbose     = flag.Bool("verbose", false, "Include provenance details per entity")
		doRedact    = flag.Bool("redact", false, "Produce a redacted copy of the PDF")
		outputDir   = flag.String("output", "", "Output directory for redacted copies")
		configPath  = flag.String("config", "", "Config file path")
		webMode     = flag.Bool("web", false, "Run the local web server")
		addr        = flag.String("addr", "", "Web server listen address")
		debug       = flag.Bool("debug", false, "Enable debug event logging")
		noColor     = flag.Bool("no-color", false, "Disable colored output")
		listPresets = flag.Bool("list-presets", false, "List available presets and exit")
		showVersion = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		return
	}

	cfg := loadConfig(*configPath)
	lib := patterns.NewLibrary()
	for _, warning := range cfg.MergePresets(lib) {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
	}

	if *listPresets {
		for _, id := range lib.PresetIDs() {
			p, _ := lib.Preset(id)
			fmt.Printf("%-20s %s\n", id, p.Name)
		}
		return
	}

	level := observability.LevelOff
	if *webMode {
		level = observability.LevelMetrics
	}
	if *debug || cfg.Defaults.Debug {
		level = observability.LevelDebug
	}
	observer := observability.New(level, os.Stderr)
	auditLog := audit.New(cfg.Redaction.AuditLog)

	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *webMode {
		fmt.Printf("Zero-Trust Redactor %s listening on http://%s\n", version.Short(), cfg.Server.Addr)
		srv := web.NewServer(cfg, lib, observer, auditLog)
		if err := srv.ListenAndServe(); err != nil {
			fatal("server failed: %v", err)
		}
		return
	}

	if *filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	presets := splitList(*presetList)
	if len(presets) == 0 {
		presets = cfg.Defaults.Presets
	}
	keywords := splitList(*keywordList)
	if len(keywords) == 0 {
		keywords = cfg.Defaults.Keywords
	}

	text, doc, err := readDocument(*filePath)
	if err != nil {
		fatal("reading %s: %v", *filePath, err)
	}

	sc := scanner.New(lib)
	entities := fusion.Fuse(
		sc.Scan(text, presets, keywords),
		fusion.Manual(splitList(*manualList)),
	)

	report := formatters.Report{
		Document: *filePath,
		Entities: entities,
	}
	options := formatters.Options{
		NoColor:  *noColor || cfg.Defaults.NoColor || !term.IsTerminal(int(os.Stdout.Fd())),
		Verbose:  *verbose,
		ShowText: *showText,
	}

	registry := formatters.NewRegistry()
	registry.Register(textformatter.NewFormatter())
	registry.Register(jsonformatter.NewFormatter())

	name := *format
	if name == "" {
		name = cfg.Defaults.Format
	}
	formatter, ok := registry.Get(name)
	if !ok {
		fatal("unknown format %q (available: %s)", name, strings.Join(registry.List(), ", "))
	}

	out, err := formatter.Format(report, options)
	if err != nil {
		fatal("formatting failed: %v", err)
	}
	fmt.Print(out)

	if *doRedact {
		if doc == nil {
			fatal("redaction requires a PDF input")
		}
		dir := *outputDir
		if dir == "" {
			dir = cfg.Redaction.OutputDir
		}
		red := redactor.New(observer, auditLog, nil)
		result, err := red.RedactFile(*filePath, dir, entities)
		if err != nil {
			fatal("redaction failed: %v", err)
		}
		fmt.Printf("Redacted copy: %s (%d regions across %d pages)\n",
			result.OutputPath, result.RegionCount, result.PageCount)
		if result.UnmatchedCount > 0 {
			fmt.Fprintf(os.Stderr,
				"warning: %d entities could not be located on any page\n",
				result.UnmatchedCount)
		}
	}
}

// readDocument loads a file's text; PDFs go through positioned extraction
// so the same text is used for detection and, later, matching.
func readDocument(path string) (string, *pagetext.Document, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		doc, err := pagetext.Extract(path)
		if err != nil {
			return "", nil, err
		}
		return doc.PlainText, doc, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	return string(data), nil, nil
}

func loadConfig(path string) *config.Config {
	if path == "" {
		path = os.Getenv("ZTREDACTOR_CONFIG")
	}
	if path == "" {
		path = config.FindConfigFile()
	}
	if path == "" {
		return config.Default()
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v, using defaults\n", err)
		return config.Default()
	}
	return cfg
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
