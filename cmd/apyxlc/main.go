// Command apyxlc is the reference CLI driver: it
// globs source chunks, runs them through a named parser into a
// Builder, builds and validates the merged model, then runs a named
// generator over a View of the result. It exists to exercise the core
// pipeline end to end, not as a production cross-compiler front end.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/nswarm/apyxl/apyxlerr"
	"github.com/nswarm/apyxl/builder"
	"github.com/nswarm/apyxl/generator"
	"github.com/nswarm/apyxl/internal/gendebug"
	"github.com/nswarm/apyxl/internal/genjson"
	"github.com/nswarm/apyxl/internal/logx"
	"github.com/nswarm/apyxl/internal/textidl"
	"github.com/nswarm/apyxl/model"
	"github.com/nswarm/apyxl/parser"
	"github.com/nswarm/apyxl/view"
)

// Exit codes.
const (
	exitOK             = 0
	exitParseError     = 1
	exitValidationErr  = 2
	exitGeneratorError = 3
)

func parserRegistry() map[string]parser.Parser {
	return map[string]parser.Parser{
		"textidl": textidl.New(),
	}
}

func generatorRegistry() map[string]generator.Generator {
	return map[string]generator.Generator{
		"debug": gendebug.Generator{},
		"json":  genjson.Generator{},
	}
}

// driverConfig is the `--config` TOML file: it pins
// the flag surface so CI invocations don't need long flag lists. Flags
// passed on the command line override values loaded from here.
type driverConfig struct {
	Input      []string          `toml:"input"`
	Parser     string            `toml:"parser"`
	Generator  string            `toml:"generator"`
	OutputRoot string            `toml:"output_root"`
	Output     map[string]string `toml:"output"`
	Stdout     []string          `toml:"stdout"`
}

// sourceConfig is the shared parser/builder config JSON of ,
// loaded from --parser-config.
type sourceConfig struct {
	UserTypes          []model.UserType `json:"user_types"`
	EnableParsePrivate bool             `json:"enable_parse_private"`
	PreValidationPrint bool             `json:"pre_validation_print"`
}

type runOptions struct {
	inputs       []string
	parserName   string
	parserConfig string
	genName      string
	outputRoot   string
	outputRoutes map[string]string
	stdoutNames  map[string]bool
	configPath   string
}

func main() {
	opts := &runOptions{outputRoutes: map[string]string{}, stdoutNames: map[string]bool{}}
	var outputFlags, stdoutFlags []string

	root := &cobra.Command{Use: "apyxlc", Short: "API model pipeline reference driver"}
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Parse, build, validate, and generate from one or more source chunks",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyOutputFlags(opts, outputFlags, stdoutFlags); err != nil {
				return err
			}
			if opts.configPath != "" {
				if err := loadDriverConfig(opts); err != nil {
					return err
				}
			}
			return run(cmd.Context(), opts)
		},
	}
	runCmd.Flags().StringArrayVar(&opts.inputs, "input", nil, "glob of source files to parse (repeatable, supports **)")
	runCmd.Flags().StringVar(&opts.parserName, "parser", "", "registered parser name")
	runCmd.Flags().StringVar(&opts.parserConfig, "parser-config", "", "path to shared parser/builder JSON config")
	runCmd.Flags().StringVar(&opts.genName, "generator", "", "registered generator name")
	runCmd.Flags().StringVar(&opts.outputRoot, "output-root", ".", "root directory generated chunks are written under")
	runCmd.Flags().StringArrayVar(&outputFlags, "output", nil, "name=subdir route (repeatable)")
	runCmd.Flags().StringArrayVar(&stdoutFlags, "stdout", nil, "output name to write to stdout instead of a file (repeatable)")
	runCmd.Flags().StringVar(&opts.configPath, "config", "", "TOML driver config pinning the flags above")

	root.AddCommand(runCmd)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, "1 error(s)")
		os.Exit(exitParseError)
	}
}

func applyOutputFlags(opts *runOptions, outputFlags, stdoutFlags []string) error {
	for _, o := range outputFlags {
		name, subdir, ok := strings.Cut(o, "=")
		if !ok {
			return errors.Errorf("--output %q: expected name=subdir", o)
		}
		opts.outputRoutes[name] = subdir
	}
	for _, s := range stdoutFlags {
		opts.stdoutNames[s] = true
	}
	return nil
}

func loadDriverConfig(opts *runOptions) error {
	var cfg driverConfig
	if _, err := toml.DecodeFile(opts.configPath, &cfg); err != nil {
		return errors.Wrapf(err, "loading driver config %s", opts.configPath)
	}
	if len(opts.inputs) == 0 {
		opts.inputs = cfg.Input
	}
	if opts.parserName == "" {
		opts.parserName = cfg.Parser
	}
	if opts.genName == "" {
		opts.genName = cfg.Generator
	}
	if opts.outputRoot == "." && cfg.OutputRoot != "" {
		opts.outputRoot = cfg.OutputRoot
	}
	for name, subdir := range cfg.Output {
		if _, overridden := opts.outputRoutes[name]; !overridden {
			opts.outputRoutes[name] = subdir
		}
	}
	for _, name := range cfg.Stdout {
		opts.stdoutNames[name] = true
	}
	return nil
}

func run(ctx context.Context, opts *runOptions) error {
	log := logx.From(ctx)

	p, ok := parserRegistry()[opts.parserName]
	if !ok {
		return errors.Errorf("unknown parser %q", opts.parserName)
	}
	gen, ok := generatorRegistry()[opts.genName]
	if !ok {
		return errors.Errorf("unknown generator %q", opts.genName)
	}

	var srcCfg sourceConfig
	if opts.parserConfig != "" {
		f, err := os.Open(opts.parserConfig)
		if err != nil {
			return errors.Wrap(err, "opening parser config")
		}
		defer f.Close()
		if err := json.NewDecoder(f).Decode(&srcCfg); err != nil {
			return errors.Wrap(err, "decoding parser config")
		}
	}

	files, err := expandGlobs(opts.inputs)
	if err != nil {
		return errors.Wrap(err, "expanding --input globs")
	}

	b := builder.New()
	var parseErrs apyxlerr.List
	for _, path := range files {
		src, err := os.ReadFile(path)
		if err != nil {
			parseErrs.Add(errors.Wrapf(err, "reading %s", path))
			continue
		}
		pcfg := parser.Config{UserTypes: srcCfg.UserTypes, EnableParsePrivate: srcCfg.EnableParsePrivate}
		if err := p.Parse(src, path, pcfg, b); err != nil {
			parseErrs.Add(err)
		}
	}
	if len(parseErrs) > 0 {
		return reportAndExit(parseErrs, exitParseError)
	}

	m, err := builder.Build(ctx, b, builder.Config{PreValidationPrint: srcCfg.PreValidationPrint, UserTypes: srcCfg.UserTypes})
	if err != nil {
		if list, ok := err.(apyxlerr.List); ok {
			return reportAndExit(list, exitValidationErr)
		}
		return reportAndExit(apyxlerr.List{err}, exitValidationErr)
	}
	log.Logf(logx.Info, "built model from %d chunk(s)", len(files))

	v := view.New(m)
	sink := &cliSink{outputRoot: opts.outputRoot, routes: opts.outputRoutes, stdoutNames: opts.stdoutNames, stdout: os.Stdout}
	if err := gen.Generate(v, sink); err != nil {
		wrapped := &apyxlerr.GeneratorError{Generator: opts.genName, Cause: err}
		return reportAndExit(apyxlerr.List{wrapped}, exitGeneratorError)
	}
	return nil
}

// reportAndExit prints every accumulated error plus a summary line to
// stderr and terminates the process with the given exit code.
func reportAndExit(errs apyxlerr.List, code int) error {
	errs.SortDeterministic()
	for _, e := range errs {
		fmt.Fprintln(os.Stderr, e.Error())
	}
	fmt.Fprintf(os.Stderr, "%d error(s)\n", len(errs))
	os.Exit(code)
	return nil
}

func expandGlobs(patterns []string) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid glob %q", pattern)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out, nil
}

// cliSink implements generator.Sink: it routes each named output chunk
// either to stdout or to a file under outputRoot (optionally nested
// under a --output-configured subdirectory).
type cliSink struct {
	outputRoot  string
	routes      map[string]string
	stdoutNames map[string]bool
	stdout      *os.File
}

func (s *cliSink) WriteChunk(path string) (io.WriteCloser, error) {
	if s.stdoutNames[path] {
		return nopCloser{s.stdout}, nil
	}
	dir := s.outputRoot
	if subdir, ok := s.routes[path]; ok {
		dir = filepath.Join(s.outputRoot, subdir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating output dir %s", dir)
	}
	f, err := os.Create(filepath.Join(dir, path))
	if err != nil {
		return nil, errors.Wrapf(err, "creating output file %s", path)
	}
	return f, nil
}

type nopCloser struct{ w *os.File }

func (n nopCloser) Write(p []byte) (int, error) { return n.w.Write(p) }
func (n nopCloser) Close() error                { return nil }
