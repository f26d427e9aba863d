package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/joeshaw/envdecode"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bobcob7/builder-gen/internal/codegen"
	"github.com/bobcob7/builder-gen/internal/codegen/buildergen"
	"github.com/bobcob7/builder-gen/internal/codegen/inspect"
)

const generatorName = "builder-gen"

// environment is what go generate exports to the generator process.
type environment struct {
	File    string `env:"GOFILE"`
	Package string `env:"GOPACKAGE"`
	Line    int    `env:"GOLINE"`
}

func loadEnvironment() (environment, error) {
	var env environment
	if err := envdecode.Decode(&env); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return environment{}, fmt.Errorf("reading go generate environment: %w", err)
	}
	return env, nil
}

type options struct {
	typeName        string
	file            string
	outputDir       string
	pkgName         string
	optionalWrapper string
	sequenceWrapper string
	stdout          bool
	logLevel        string
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:           generatorName,
		Short:         "Generate fluent builder types for Go structs",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(*cobra.Command, []string) error {
			logger := log.NewWithOptions(stderr, log.Options{Prefix: generatorName})
			err := run(opts, logger, stdout)
			if err != nil {
				logger.Error("generation failed", "err", err)
			}
			return err
		},
	}
	registerFlags(cmd.Flags(), &opts)
	return cmd
}

func registerFlags(flags *pflag.FlagSet, opts *options) {
	flags.StringVar(&opts.typeName, "type", "", "Name of the struct type (inferred if directive is above the type)")
	flags.StringVar(&opts.file, "file", "", "Source file (default: $GOFILE)")
	flags.StringVar(&opts.outputDir, "output", "", "Output directory for generated files (default: same as source)")
	flags.StringVar(&opts.pkgName, "package", "", "Package name for generated files (default: same as source)")
	flags.StringVar(&opts.optionalWrapper, "optional-wrapper", inspect.DefaultOptionalWrapper, "Type name recognised as an optional wrapper; its package must declare Some(T)")
	flags.StringVar(&opts.sequenceWrapper, "sequence-wrapper", inspect.DefaultSequenceWrapper, "Type name recognised as a sequence wrapper")
	flags.BoolVar(&opts.stdout, "stdout", false, "Print the generated code instead of writing a file")
	flags.StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn or error")
}

func run(opts options, logger *log.Logger, stdout io.Writer) error {
	level, err := log.ParseLevel(opts.logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", opts.logLevel, err)
	}
	logger.SetLevel(level)
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	cfg, err := resolveConfig(opts, env)
	if err != nil {
		return err
	}
	logger.Debug("resolved configuration", "type", cfg.TypeName, "file", cfg.SourceFile, "dir", cfg.SourceDir)
	tool := &buildergen.Subtool{
		Wrappers: inspect.Wrappers{Optional: opts.optionalWrapper, Sequence: opts.sequenceWrapper},
		Logger:   logger,
		Stdout:   stdout,
	}
	return tool.Run(cfg)
}

func resolveConfig(opts options, env environment) (codegen.GeneratorConfig, error) {
	sourcePath := opts.file
	line := 0
	if sourcePath == "" {
		sourcePath = env.File
		line = env.Line
	}
	if sourcePath == "" {
		return codegen.GeneratorConfig{}, errors.New("no source file: GOFILE is not set (are you running via go generate?) and --file is empty")
	}
	cwd, err := os.Getwd()
	if err != nil {
		return codegen.GeneratorConfig{}, fmt.Errorf("getting working directory: %w", err)
	}
	if !filepath.IsAbs(sourcePath) {
		sourcePath = filepath.Join(cwd, sourcePath)
	}
	sourceDir, sourceFile := filepath.Split(sourcePath)
	typeName := opts.typeName
	if typeName == "" {
		typeName, err = detectTypeName(sourceDir, sourceFile, line)
		if err != nil {
			return codegen.GeneratorConfig{}, fmt.Errorf("%w (hint: use --type=TypeName or place the directive directly above the struct)", err)
		}
	}
	pkgName := opts.pkgName
	if pkgName == "" {
		pkgName = env.Package
	}
	return codegen.GeneratorConfig{
		TypeName:   typeName,
		SourceFile: sourceFile,
		SourceDir:  filepath.Clean(sourceDir),
		SourcePkg:  env.Package,
		OutputDir:  opts.outputDir,
		OutputPkg:  pkgName,
		Stdout:     opts.stdout,
	}, nil
}

// detectTypeName picks the struct below the go:generate line that invoked us.
// GOLINE is only meaningful for GOFILE, so goLine is zero when --file is used.
func detectTypeName(sourceDir, sourceFile string, goLine int) (string, error) {
	if goLine > 0 {
		return codegen.FindTypeAfterLine(filepath.Join(sourceDir, sourceFile), goLine)
	}
	return codegen.FindTypeAfterGenerateDirective(sourceDir, sourceFile, generatorName)
}
