package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"testkind/internal/config"
	"testkind/internal/constants"
	"testkind/internal/logger"
	"testkind/pkg/cel"
	"testkind/pkg/errors"
	"testkind/pkg/metrics"
	"testkind/pkg/testkind"
)

type Options struct {
	ConfigFile  string
	LogLevel    string
	MetricsFile string
	// Now is the reference date; zero means today.
	Now time.Time
}

type App struct {
	opts     Options
	resolver *config.Resolver
	checker  *testkind.Checker
	registry *prometheus.Registry
	logger   logger.Logger
}

type Result struct {
	Attribute   string
	Disposition testkind.Disposition
	Err         error
}

func NewApp(opts Options) (*App, error) {
	cfg, warnings := config.LoadConfig(opts.ConfigFile)
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}

	registry := prometheus.NewRegistry()
	if err := metrics.Register(registry); err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	resolver := config.NewResolver(*cfg, log, warnings...)
	checker := testkind.New(resolver)
	if !opts.Now.IsZero() {
		now := opts.Now
		checker = checker.WithClock(func() time.Time { return now })
	}

	return &App{
		opts:     opts,
		resolver: resolver,
		checker:  checker,
		registry: registry,
		logger:   log,
	}, nil
}

// Evaluate decides every attribute concurrently. Results keep input order.
// Invalid attributes are reported in their Result, not as the returned error.
func (a *App) Evaluate(ctx context.Context, attrs []string) ([]Result, error) {
	results := make([]Result, len(attrs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, attr := range attrs {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					results[i] = Result{Attribute: attr, Err: errors.RecoverPanicWithAttribute(r, attr)}
				}
			}()

			if err := ctx.Err(); err != nil {
				return err
			}
			d, err := a.checker.Decide(ctx, attr)
			results[i] = Result{Attribute: attr, Disposition: d, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (a *App) PrintConfig(w io.Writer) error {
	out := struct {
		Config   config.Config     `yaml:"config"`
		Warnings []string          `yaml:"warnings,omitempty"`
		Examples map[string]string `yaml:"exclude_when_examples"`
	}{
		Config:   a.resolver.Config(),
		Examples: cel.RuleExpressionExamples,
	}
	for _, warning := range a.resolver.Warnings() {
		out.Warnings = append(out.Warnings, warning.Error())
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return enc.Close()
}

// Close flushes the logger and writes the metrics file, if requested.
func (a *App) Close() error {
	_ = a.logger.Sync()
	if a.opts.MetricsFile == "" {
		return nil
	}
	return prometheus.WriteToTextfile(a.opts.MetricsFile, a.registry)
}

// WriteResults prints one tab separated line per result and returns the
// number of failed attributes. Malformed attributes are reported as "error",
// anything else that went wrong while deciding as "internal".
func WriteResults(w io.Writer, results []Result, explain bool) int {
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			status := "internal"
			if errors.IsParseError(r.Err) {
				status = "error"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", r.Attribute, status, r.Err)
			continue
		}
		if !explain {
			fmt.Fprintf(w, "%s\tok\n", r.Attribute)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.Attribute, r.Disposition.Action, r.Disposition.Reason)
	}
	return failed
}

func parseNow(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	now, err := time.Parse(constants.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --now %q, expected YYYY-MM-DD", value)
	}
	return now, nil
}

// collectAttributes merges args with the lines of file. Blank lines and
// lines starting with '#' are skipped.
func collectAttributes(stdin io.Reader, args []string, file string) ([]string, error) {
	attrs := append([]string{}, args...)
	if file == "" {
		return attrs, nil
	}

	var r io.Reader = stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", file, err)
		}
		defer f.Close()
		r = f
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		attrs = append(attrs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}
	return attrs, nil
}
