package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/gccscope/internal/config"
	"github.com/crimson-sun/gccscope/internal/logging"
	"github.com/crimson-sun/gccscope/pkg/gccscope"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gccscope",
		Short:         "Reconstruct GCC bandwidth-estimation decisions from sender logs",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(analyzeCmd())
	return root
}

func analyzeCmd() *cobra.Command {
	var (
		configPath    string
		jsonPath      string
		textPath      string
		pretty        bool
		joinTolerance int64
		logLevel      string
	)

	cmd := &cobra.Command{
		Use:   "analyze <logfile>",
		Short: "Parse a sender log and emit the decision-analysis report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if configPath != "" {
				if err := cfg.ApplyFile(configPath); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("json") {
				cfg.Output.JSONPath = jsonPath
			}
			if cmd.Flags().Changed("text") {
				cfg.Output.TextPath = textPath
			}
			if cmd.Flags().Changed("pretty") {
				cfg.Output.Pretty = pretty
			}
			if cmd.Flags().Changed("join-tolerance") {
				cfg.Analysis.JoinToleranceMs = joinTolerance
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}

			logger := logging.Init(cfg.Output.JSONPath == "-", logging.ParseLevel(cfg.LogLevel))
			return runAnalyze(args[0], cfg, logger)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "yaml config file (thresholds, join tolerance)")
	cmd.Flags().StringVar(&jsonPath, "json", "-", "JSON report destination ('-' for stdout, empty to skip)")
	cmd.Flags().StringVar(&textPath, "text", "", "text report destination (empty to skip)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent the JSON report")
	cmd.Flags().Int64Var(&joinTolerance, "join-tolerance", 0, "constraint join tolerance in ms")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "debug, info, warn, or error")
	return cmd
}

func runAnalyze(logPath string, cfg config.Config, logger *slog.Logger) error {
	log := logging.ForSource(logger, logPath)
	analyzer := gccscope.New(
		gccscope.WithJoinTolerance(cfg.Analysis.JoinToleranceMs),
		gccscope.WithThresholds(cfg.Analysis.Thresholds),
	)

	rep, err := analyzer.AnalyzeFile(logPath)
	if err != nil {
		log.Error("analysis failed", "error", err)
		return err
	}

	counts := rep.Series.Counts()
	log.Info("parse completed",
		"trendline", counts["trendline"],
		"rtt", counts["rtt"],
		"loss", counts["loss"],
		"probe", counts["probe"],
		"decisions", counts["decisions"],
		"constraints", counts["constraints"],
		"pushbacks", counts["pushbacks"],
	)

	if cfg.Output.JSONPath != "" {
		if err := writeReport(log, cfg.Output.JSONPath, func(f *os.File) error {
			return rep.WriteJSON(f, cfg.Output.Pretty)
		}); err != nil {
			return err
		}
	}
	if cfg.Output.TextPath != "" {
		if err := writeReport(log, cfg.Output.TextPath, func(f *os.File) error {
			return rep.WriteText(f)
		}); err != nil {
			return err
		}
	}
	return nil
}

func writeReport(log *slog.Logger, path string, write func(*os.File) error) error {
	if path == "-" {
		return write(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close report %s: %w", path, err)
	}
	log.Info("report written", "path", path)
	return nil
}
