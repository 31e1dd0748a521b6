package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/go-chi/chi"
	"github.com/hako/durafmt"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/pitwallhq/pitwall/internal/analysis"
	"github.com/pitwallhq/pitwall/internal/sources"
)

var configPath string

func init() {
	flag.StringVar(&configPath, "c", "./config.yml", "config path")
	flag.Parse()
}

type RunConfig struct {
	Analysis  analysis.Config `json:"analysis" yaml:"analysis"`
	DataDir   string          `json:"data_dir" yaml:"data_dir"`
	OutputDir string          `json:"output_dir" yaml:"output_dir"`
	OpsAddr   string          `json:"ops_addr" yaml:"ops_addr"`
	Units     []analysis.Unit `json:"units" yaml:"units"`
}

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	logger.SetLevel(logrus.DebugLevel)

	logger.Infof("Starting pitwall race analytics")

	config, err := readConfig()

	if err != nil {
		logger.WithError(err).Fatalf("Could not read config at %s", configPath)
	}

	if len(config.Units) == 0 {
		logger.Fatal("No analysis units configured")
	}

	if config.OpsAddr != "" {
		go serveOps(config.OpsAddr, logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	source := sources.NewFileSource(config.DataDir, logger)
	orchestrator := analysis.NewOrchestrator(source, config.Analysis, logger)

	result := orchestrator.Run(ctx, config.Units)

	if err := writeResults(config.OutputDir, result); err != nil {
		logger.WithError(err).Fatal("Could not write analysis results")
	}

	printSummary(result)

	if len(result.Failures) > 0 {
		os.Exit(1)
	}
}

func serveOps(addr string, logger *logrus.Logger) {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Handle("/metrics", promhttp.Handler())

	logger.Infof("Ops endpoints listening on %s", addr)

	if err := http.ListenAndServe(addr, r); err != nil {
		logger.WithError(err).Error("Ops listener stopped")
	}
}

func readConfig() (*RunConfig, error) {
	var conf *RunConfig

	f, err := os.Open(configPath)

	if err != nil {
		return nil, err
	}

	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&conf); err != nil {
		return nil, err
	}

	return conf, nil
}

func writeResults(outputDir string, result *analysis.BatchResult) error {
	if outputDir == "" {
		outputDir = "."
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	for key, driverAnalysis := range result.Results {
		path := filepath.Join(outputDir, key+".json")

		data, err := json.MarshalIndent(driverAnalysis, "", "  ")

		if err != nil {
			return err
		}

		if err := os.WriteFile(path, data, 0644); err != nil {
			return err
		}
	}

	return nil
}

func printSummary(result *analysis.BatchResult) {
	elapsed := durafmt.Parse(result.Duration).LimitFirstN(2)

	fmt.Printf("\nBatch %s finished in %s\n", result.RunID, elapsed)
	fmt.Println(color.GreenString("  %d units completed", len(result.Results)))

	if len(result.Failures) > 0 {
		fmt.Println(color.RedString("  %d units failed:", len(result.Failures)))

		for _, failure := range result.Failures {
			fmt.Println(color.RedString("    %s: %s", failure.Unit.Key(), failure.Message))
		}
	}
}
