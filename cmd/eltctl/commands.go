package main

import (
	"context"
	"fmt"
	"os"
	"time"

	goflags "github.com/jessevdk/go-flags"

	"go-elt-dashboard/internal/analysis"
	"go-elt-dashboard/internal/config"
	"go-elt-dashboard/internal/elt"
	"go-elt-dashboard/internal/model"
	"go-elt-dashboard/internal/source"
)

// GlobalFlags are shared by all eltctl subcommands.
type GlobalFlags struct {
	Config string `long:"config" description:"Path to YAML config file"`
}

// SourceFlags bind a one-shot run to a feed.
type SourceFlags struct {
	Kind            string `long:"kind" default:"quake" description:"Source kind: quake, csv, covid"`
	URL             string `long:"url" description:"Feed URL (defaults to the configured quake feed)"`
	Window          string `long:"window" default:"hour" description:"Quake feed window: hour or day"`
	PopulationField string `long:"population-field" description:"Population column for per-capita rates (covid only)"`
}

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Fetch   *FetchCommand
	Analyze *AnalyzeCommand
	Export  *ExportCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser() (*goflags.Parser, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "eltctl"
	parser.LongDescription = "One-shot ELT runs against a public feed without the dashboard server."

	cmds := &commands{
		Fetch:   &FetchCommand{globals: &globals},
		Analyze: &AnalyzeCommand{globals: &globals},
		Export:  &ExportCommand{globals: &globals},
	}

	parser.AddCommand("fetch", "Fetch a feed and print a summary", "Fetch a feed, merge with keep-last dedup, and print store size.", cmds.Fetch)
	parser.AddCommand("analyze", "Fetch, transform, and analyze a feed", "Run the full fetch, transform, analysis and strategy steps and print the trace.", cmds.Analyze)
	parser.AddCommand("export", "Fetch, transform, and write the store as CSV", "Run fetch and transform, then write the store as CSV to a file or stdout.", cmds.Export)

	return parser, cmds
}

// runPipeline does the shared fetch-and-merge for all subcommands.
func runPipeline(globals *GlobalFlags, src SourceFlags, withTransform bool) (*elt.Store, model.SourceSpec, error) {
	cfg, err := config.Load(globals.Config)
	if err != nil {
		return nil, model.SourceSpec{}, err
	}

	spec := model.SourceSpec{
		Kind:            model.SourceKind(src.Kind),
		URL:             src.URL,
		Window:          src.Window,
		PopulationField: src.PopulationField,
	}
	if !spec.Kind.Valid() {
		return nil, spec, fmt.Errorf("unknown source kind: %s", src.Kind)
	}

	url := spec.URL
	if url == "" {
		if spec.Kind != model.SourceQuake {
			return nil, spec, fmt.Errorf("--url is required for kind %s", spec.Kind)
		}
		if spec.Window == "day" {
			url = cfg.Feeds.QuakeDayURL
		} else {
			url = cfg.Feeds.QuakeHourURL
		}
	}

	client := source.NewClient(time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Duration(cfg.Fetch.TimeoutSeconds)*time.Second)
	defer cancel()

	var rows []model.Record
	switch spec.Kind {
	case model.SourceQuake:
		rows, err = client.FetchQuakes(ctx, url)
	case model.SourceCovid:
		rows, err = client.FetchCovid(ctx, url)
	default:
		rows, err = client.FetchCSV(ctx, url)
	}
	if err != nil {
		return nil, spec, err
	}

	store := elt.NewStore()
	added, total := store.Merge(rows, spec.DedupField())
	fmt.Printf("Fetched %d rows; store size %d (%d new)\n", len(rows), total, added)

	if withTransform {
		result, err := elt.Transform(store, spec)
		if err != nil {
			return nil, spec, err
		}
		fmt.Printf("Transform done. Rows: %d. Derived: %v\n", result.Rows, result.DerivedColumns)
	}

	return store, spec, nil
}

// FetchCommand fetches a feed and prints the store summary.
type FetchCommand struct {
	globals *GlobalFlags
	SourceFlags
}

func (c *FetchCommand) Execute(args []string) error {
	_, _, err := runPipeline(c.globals, c.SourceFlags, false)
	return err
}

// AnalyzeCommand runs the full pipeline and prints the analysis trace.
type AnalyzeCommand struct {
	globals *GlobalFlags
	SourceFlags
	Threshold float64 `long:"threshold" default:"5.0" description:"Strong event threshold"`
}

func (c *AnalyzeCommand) Execute(args []string) error {
	store, spec, err := runPipeline(c.globals, c.SourceFlags, true)
	if err != nil {
		return err
	}

	metric, label := analysis.MetricField(spec.Kind)
	a := analysis.Analyze(store.Rows(), metric, c.Threshold)
	for _, t := range a.Thoughts {
		fmt.Println("- " + t)
	}

	strat := analysis.Recommend(a.Strong, metric, label)
	for _, t := range strat.Thoughts {
		fmt.Println("- " + t)
	}
	fmt.Printf("Recommended action: %s\n", strat.Action)
	return nil
}

// ExportCommand runs fetch+transform and writes the store as CSV.
type ExportCommand struct {
	globals *GlobalFlags
	SourceFlags
	Out string `long:"out" short:"o" description:"Output file (default stdout)"`
}

func (c *ExportCommand) Execute(args []string) error {
	store, spec, err := runPipeline(c.globals, c.SourceFlags, true)
	if err != nil {
		return err
	}

	out := os.Stdout
	if c.Out != "" {
		f, err := os.Create(c.Out)
		if err != nil {
			return fmt.Errorf("create %s: %w", c.Out, err)
		}
		defer f.Close()
		out = f
	}

	return store.WriteCSV(out, spec.DedupField())
}
