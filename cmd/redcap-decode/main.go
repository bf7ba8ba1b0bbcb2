package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	redcap "github.com/botandrose/red-cap"
	"github.com/botandrose/red-cap/internal/config"
	"github.com/botandrose/red-cap/pkg/dictionary"
	"github.com/botandrose/red-cap/pkg/form"
	"github.com/botandrose/red-cap/pkg/logging"
	"github.com/botandrose/red-cap/pkg/metrics"
	"github.com/botandrose/red-cap/pkg/openapi"
	"github.com/botandrose/red-cap/pkg/prompt"
	"github.com/botandrose/red-cap/pkg/record"
	"github.com/botandrose/red-cap/pkg/report"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, prompt.NewSurveyDriver()); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatalf("redcap-decode: %v", err)
	}
}

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"dictionary":  "dictionary",
	"records":     "records",
	"fields":      "fields",
	"format":      "format",
	"id-field":    "id_field",
	"interactive": "interactive",
	"log-level":   "log.level",
	"log-format":  "log.format",
	"metrics":     "metrics.enabled",
}

func run(ctx context.Context, args []string, stdout io.Writer, driver prompt.Driver) error {
	flags := flag.NewFlagSet("redcap-decode", flag.ContinueOnError)
	configPath := flags.String("config", "", "configuration file (default ./redcap.yaml when present)")
	flags.String("dictionary", "", "metadata export (JSON or YAML)")
	flags.String("records", "", "record export (JSON or YAML)")
	flags.String("fields", "", "comma-separated field names to decode (default all)")
	flags.String("format", config.FormatJSON, "output format: json, text or openapi")
	flags.String("id-field", "record_id", "field identifying each record")
	flags.Bool("interactive", false, "pick the record and fields in the terminal")
	flags.String("log-level", "warn", "log level: debug, info, warn or error")
	flags.String("log-format", "console", "log format: console or json")
	flags.Bool("metrics", false, "log decode counters when done")
	if err := flags.Parse(args); err != nil {
		return err
	}

	overrides := make(map[string]any)
	flags.Visit(func(f *flag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok {
			return
		}
		if getter, ok := f.Value.(flag.Getter); ok {
			overrides[key] = getter.Get()
		}
	})

	cfg, err := config.Load(*configPath, overrides)
	if err != nil {
		return err
	}

	logger := logging.NewStructured(cfg.Log.Level, cfg.Log.Format)
	options := []form.Option{form.WithLogger(logger)}

	var registry *prometheus.Registry
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		options = append(options, form.WithMetrics(metrics.New(registry)))
		defer logMetrics(logger, registry)
	}

	loader := redcap.NewLoader()
	f, err := redcap.LoadForm(ctx, loader, dictionary.SourceFromFile(cfg.Dictionary), options...)
	if err != nil {
		return err
	}

	if cfg.Format == config.FormatOpenAPI {
		doc, err := openapi.Document(ctx, f, "", "")
		if err != nil {
			return err
		}
		return writeJSON(stdout, doc)
	}

	records, err := redcap.LoadRecords(ctx, loader, dictionary.SourceFromFile(cfg.Records))
	if err != nil {
		return err
	}

	names := cfg.Fields
	if cfg.Interactive {
		idx, err := prompt.PickRecord(ctx, driver, records, cfg.IDField)
		if err != nil {
			return err
		}
		records = records[idx : idx+1]
		if len(names) == 0 {
			if names, err = prompt.PickFields(ctx, driver, f); err != nil {
				return err
			}
		}
	}

	results := make([]form.Result, 0, len(records))
	for _, r := range records {
		result, err := f.Decode(r, names...)
		if err != nil {
			return err
		}
		results = append(results, result)
	}

	if cfg.Format == config.FormatText {
		return writeReports(stdout, f, records, results, cfg.IDField)
	}
	return writeJSON(stdout, results)
}

func writeJSON(w io.Writer, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	buf.WriteByte('\n')
	_, err = buf.WriteTo(w)
	return err
}

func writeReports(w io.Writer, f *form.Form, records []record.Record, results []form.Result, idField string) error {
	for i, result := range results {
		id := records[i].Value(idField)
		if id == "" {
			id = fmt.Sprintf("#%d", i+1)
		}
		renderer, err := report.New(report.WithTitle("Record " + id))
		if err != nil {
			return err
		}
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := renderer.Render(f, result, w); err != nil {
			return err
		}
	}
	return nil
}

func logMetrics(logger logging.Logger, registry *prometheus.Registry) {
	families, err := registry.Gather()
	if err != nil {
		logger.Error("gather metrics", map[string]any{"error": err.Error()})
		return
	}
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			fields := map[string]any{"metric": family.GetName()}
			for _, label := range metric.GetLabel() {
				fields[label.GetName()] = label.GetValue()
			}
			switch {
			case metric.GetCounter() != nil:
				fields["value"] = metric.GetCounter().GetValue()
			case metric.GetHistogram() != nil:
				fields["count"] = metric.GetHistogram().GetSampleCount()
				fields["sum"] = metric.GetHistogram().GetSampleSum()
			}
			logger.Info("metric", fields)
		}
	}
}
