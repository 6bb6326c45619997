package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kelsos/threadcopy/internal/config"
	"github.com/kelsos/threadcopy/internal/filelist"
	"github.com/kelsos/threadcopy/internal/logger"
	"github.com/kelsos/threadcopy/internal/models"
	"github.com/kelsos/threadcopy/internal/services"
	"github.com/kelsos/threadcopy/internal/tui"
	"github.com/kelsos/threadcopy/internal/utils"
)

const progTitle = "threadcopy v0.16"

// exitError carries the process exit code for failures outside the copy tasks.
type exitError struct {
	result models.Result
	err    error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func argError(err error) error {
	return &exitError{result: models.ResultArgError, err: err}
}

type options struct {
	input      string
	output     string
	manifest   string
	configFile string
	tui        bool
}

// applyFlags copies explicitly set flags over file and environment values.
func applyFlags(cmd *cobra.Command, cfg, flagCfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("verify") {
		cfg.Verify = flagCfg.Verify
	}
	if flags.Changed("quiet") {
		cfg.Quiet = flagCfg.Quiet
	}
	if flags.Changed("debug") {
		cfg.Debug = flagCfg.Debug
	}
	if flags.Changed("buffer-size") {
		cfg.BufferSize = flagCfg.BufferSize
	}
	if flags.Changed("max-workers") {
		cfg.MaxWorkers = flagCfg.MaxWorkers
	}
	if flags.Changed("delimiter") {
		cfg.Delimiter = flagCfg.Delimiter
	}
	if flags.Changed("report") {
		cfg.ReportPath = flagCfg.ReportPath
	}
}

func loadConfig(cmd *cobra.Command, opts *options, flagCfg *config.Config) (*config.Config, error) {
	utils.LoadEnvironment(utils.EnvFiles()...)

	cfg := config.NewConfig()
	if opts.configFile != "" {
		if err := cfg.LoadFile(opts.configFile); err != nil {
			return nil, argError(err)
		}
	} else if err := cfg.LoadFromEnvironment(); err != nil {
		return nil, argError(err)
	}

	applyFlags(cmd, cfg, flagCfg)

	if err := cfg.Validate(); err != nil {
		return nil, argError(err)
	}
	return cfg, nil
}

func filePairs(opts *options, cfg *config.Config) ([]string, []string, error) {
	if opts.manifest != "" {
		inputs, outputs, err := filelist.LoadManifest(opts.manifest)
		if err != nil {
			return nil, nil, argError(err)
		}
		return inputs, outputs, nil
	}

	if opts.input == "" || opts.output == "" {
		return nil, nil, argError(errors.New("both -i and -o are required"))
	}

	logger.Debug("File arguments: -i %s -o %s", opts.input, opts.output)
	inputs, outputs, err := filelist.Pairs(opts.input, opts.output, cfg.Delimiter)
	if err != nil {
		return nil, nil, argError(err)
	}
	return inputs, outputs, nil
}

func runCopy(cmd *cobra.Command, args []string, opts *options, flagCfg *config.Config) (models.Result, error) {
	cfg, err := loadConfig(cmd, opts, flagCfg)
	if err != nil {
		return models.ResultArgError, err
	}

	logger.Init(cfg.Quiet, cfg.Debug)
	logger.Info(progTitle)

	for _, arg := range args {
		logger.Info("Ignoring non-option argument: %s", arg)
	}

	inputs, outputs, err := filePairs(opts, cfg)
	if err != nil {
		return models.ResultArgError, err
	}

	service := services.NewCopyService(cfg)
	copyFiles := func() (models.Result, error) {
		report, err := service.Run(inputs, outputs)
		if err != nil {
			return models.ResultReadError, err
		}
		return report.Result, nil
	}

	if !opts.tui {
		return copyFiles()
	}

	logPath, err := logger.InitFileOnly(cfg.LogDir, cfg.Quiet, cfg.Debug)
	if err != nil {
		return models.ResultWriteError, err
	}
	defer logger.Close()

	monitor := tui.NewCopyMonitor(len(inputs), cfg.Verify)
	service.SetObserver(monitor)
	result, err := monitor.Run(copyFiles)

	// The alternate screen is gone by now, print the summary to the terminal.
	logger.Init(cfg.Quiet, cfg.Debug)
	logger.Info("Run finished with result %d (%s), log: %s", result, result, logPath)
	return result, err
}

func main() {
	var (
		opts    options
		flagCfg = config.NewConfig()
		result  models.Result
	)

	rootCmd := &cobra.Command{
		Use:   "threadcopy -i <in1|in2|...> -o <out1|out2|...>",
		Short: "Copy input files to given output files concurrently",
		Long: `threadcopy copies every input file to the output file at the same position,
one concurrent worker per file pair, optionally verifying each copy byte for byte.

Result: 0 = ok, 1 = read error, 2 = write error, 3 = verify error, 4 = arg error.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			result, err = runCopy(cmd, args, &opts, flagCfg)
			if err != nil {
				return &exitError{result: result, err: err}
			}
			return nil
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the program version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(progTitle)
		},
	}

	// Add flags
	flags := rootCmd.Flags()
	flags.StringVarP(&opts.input, "input", "i", "", "Input file(s) in order related to output files, separated by the delimiter")
	flags.StringVarP(&opts.output, "output", "o", "", "Output file(s) in order related to input files, separated by the delimiter")
	flags.BoolVarP(&flagCfg.Debug, "debug", "d", false, "Enable debug output")
	flags.BoolVarP(&flagCfg.Quiet, "quiet", "q", false, "Quiet, only errors reported")
	flags.BoolVarP(&flagCfg.Verify, "verify", "v", false, "Verify each copy using byte-for-byte comparison")
	flags.StringVarP(&opts.manifest, "manifest", "m", "", "YAML manifest with input/output pairs, instead of -i/-o")
	flags.IntVarP(&flagCfg.MaxWorkers, "max-workers", "w", 0, "Maximum concurrent copies (0 = one worker per file pair)")
	flags.IntVarP(&flagCfg.BufferSize, "buffer-size", "b", flagCfg.BufferSize, "Transfer buffer size in bytes")
	flags.StringVar(&flagCfg.Delimiter, "delimiter", flagCfg.Delimiter, "Separator between file names in -i/-o")
	flags.StringVar(&flagCfg.ReportPath, "report", "", "Write a JSON run report to this path")
	flags.StringVarP(&opts.configFile, "config", "c", "", "YAML config file")
	flags.BoolVar(&opts.tui, "tui", false, "Show a live terminal monitor, logs go to a file")

	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			result = exitErr.result
		} else {
			// flag parsing errors
			result = models.ResultArgError
			fmt.Fprintf(os.Stderr, "Usage: %s\n", rootCmd.UseLine())
		}
		logger.Error("%v", err)
		if result == models.ResultArgError {
			fmt.Fprintf(os.Stderr, "Try '%s -h' for more information.\n", rootCmd.Name())
		}
	}

	os.Exit(result.ExitCode())
}
