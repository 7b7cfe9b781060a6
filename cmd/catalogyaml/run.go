package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	slog "github.com/sagikazarmark/slog-shim"
	"github.com/spf13/afero"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"

	"github.com/lingokit/catalogyaml"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2

	envPermittedClasses = "CATALOGYAML_PERMITTED_CLASSES"
)

var errNotCanonical = errors.New("not in canonical form")

type cli struct {
	fs     afero.Fs
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger

	flags      *pflag.FlagSet
	configPath string
	permit     []string
	lineWidth  int
	indent     int
	sortKeys   bool
	write      bool
	check      bool
	watch      bool
	logLevel   string
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, fs afero.Fs) int {
	c := &cli{fs: fs, stdin: stdin, stdout: stdout, stderr: stderr}

	files, err := c.parseFlags(args)
	if errors.Is(err, pflag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "catalogyaml: %v\n", err)
		return exitUsage
	}

	opts, err := c.options()
	if err != nil {
		fmt.Fprintf(stderr, "catalogyaml: %v\n", err)
		return exitFailure
	}

	a, err := catalogyaml.New(opts...)
	if err != nil {
		fmt.Fprintf(stderr, "catalogyaml: %v\n", err)
		return exitUsage
	}

	code := c.processAll(a, files)
	if !c.watch {
		return code
	}

	err = c.watchFiles(ctx, files, func(name string) {
		if err := c.process(a, name); err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", name, err)
		}
	})
	if err != nil {
		fmt.Fprintf(stderr, "catalogyaml: watch: %v\n", err)
		return exitFailure
	}

	return exitOK
}

func (c *cli) parseFlags(args []string) ([]string, error) {
	fl := pflag.NewFlagSet("catalogyaml", pflag.ContinueOnError)
	fl.SetOutput(c.stderr)
	fl.Usage = func() {
		fmt.Fprintln(c.stderr, "Usage: catalogyaml [flags] [file ...]")
		fl.PrintDefaults()
	}

	fl.StringVarP(&c.configPath, "config", "c", "", "settings file (yaml, json, toml, hcl, ini or properties) with a data.yaml section")
	fl.StringSliceVarP(&c.permit, "permit", "p", nil, "permit a tag, as tag or tag=kind (repeatable)")
	fl.IntVar(&c.lineWidth, "line-width", 0, "fold long plain values at this width, 0 never folds")
	fl.IntVar(&c.indent, "indent", 0, "spaces per nesting level (1-9)")
	fl.BoolVar(&c.sortKeys, "sort-keys", false, "write mapping keys in sorted order")
	fl.BoolVarP(&c.write, "write", "w", false, "rewrite files in place")
	fl.BoolVar(&c.check, "check", false, "fail when a file is not in canonical form")
	fl.BoolVar(&c.watch, "watch", false, "process files again whenever they change")
	fl.StringVar(&c.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	if err := fl.Parse(args); err != nil {
		return nil, err
	}
	c.flags = fl

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.logLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", c.logLevel)
	}
	c.logger = slog.New(slog.NewTextHandler(c.stderr, &slog.HandlerOptions{Level: level}))

	files := fl.Args()
	stdin := len(files) == 0 || (len(files) == 1 && files[0] == "-")

	switch {
	case c.write && c.check:
		return nil, errors.New("--write and --check are mutually exclusive")
	case c.write && stdin:
		return nil, errors.New("--write needs files")
	case c.watch && stdin:
		return nil, errors.New("--watch needs files")
	}

	if len(files) == 0 {
		files = []string{"-"}
	}

	return files, nil
}

// options builds adapter options from the settings file, the environment and
// the flags, in increasing order of precedence.
func (c *cli) options() ([]catalogyaml.Option, error) {
	var opts []catalogyaml.Option

	if c.configPath != "" {
		cfg, err := catalogyaml.ReadConfig(c.fs, c.configPath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, cfg.Options()...)
	}

	if env := os.Getenv(envPermittedClasses); env != "" {
		opts = append(opts, catalogyaml.WithPermittedClasses(cast.ToStringSlice(strings.ReplaceAll(env, ",", " "))...))
	}

	if len(c.permit) > 0 {
		opts = append(opts, catalogyaml.WithPermittedClasses(c.permit...))
	}
	if c.flags.Changed("line-width") {
		opts = append(opts, catalogyaml.WithLineWidth(c.lineWidth))
	}
	if c.flags.Changed("indent") {
		opts = append(opts, catalogyaml.WithIndent(c.indent))
	}
	if c.sortKeys {
		opts = append(opts, catalogyaml.WithKeyOrder(catalogyaml.KeyOrderSorted))
	}

	return append(opts, catalogyaml.WithLogger(c.logger)), nil
}

func (c *cli) processAll(a *catalogyaml.Adapter, files []string) int {
	code := exitOK
	for _, name := range files {
		if err := c.process(a, name); err != nil {
			fmt.Fprintf(c.stderr, "%s: %v\n", name, err)
			code = exitFailure
		}
	}

	return code
}

func (c *cli) process(a *catalogyaml.Adapter, name string) error {
	src, err := c.read(name)
	if err != nil {
		return err
	}

	t, err := a.Parse(src)
	if err != nil {
		return err
	}

	out, err := a.Dump(t)
	if err != nil {
		return err
	}

	switch {
	case c.check:
		if !bytes.Equal(src, out) {
			return errNotCanonical
		}
		c.logger.Info("file is canonical", slog.String("file", name))

	case c.write:
		if bytes.Equal(src, out) {
			c.logger.Debug("file unchanged", slog.String("file", name))
			return nil
		}
		info, err := c.fs.Stat(name)
		if err != nil {
			return err
		}
		if err := afero.WriteFile(c.fs, name, out, info.Mode().Perm()); err != nil {
			return err
		}
		c.logger.Info("file rewritten", slog.String("file", name))

	default:
		if _, err := c.stdout.Write(out); err != nil {
			return err
		}
	}

	return nil
}

func (c *cli) read(name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(c.stdin)
	}

	return afero.ReadFile(c.fs, name)
}
