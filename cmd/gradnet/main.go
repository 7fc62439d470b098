package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"gradnet/internal/config"
	"gradnet/internal/trainer"
)

func main() {
	cfgPath := flag.String("config", "configs/demo.yaml", "Path to YAML config")
	dataPath := flag.String("data", "", "Override CSV dataset path")
	hidden := flag.String("hidden", "", "Override hidden layer widths, e.g. 5,4")
	learningRate := flag.Float64("learning-rate", 0, "Override learning rate")
	iterations := flag.Int("iterations", 0, "Override number of training iterations")
	epsilon := flag.Float64("epsilon", 0, "Override finite-difference step")
	seed := flag.Int64("seed", 0, "PRNG seed")
	logEvery := flag.Int("log-every", 0, "Log every N iterations")

	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var hiddenWidths []int
	if *hidden != "" {
		hiddenWidths, err = config.ParseWidths(*hidden)
		if err != nil {
			log.Fatalf("invalid -hidden: %v", err)
		}
	}

	cfg.ApplyOverrides(config.Overrides{
		DataPath:     *dataPath,
		Hidden:       hiddenWidths,
		LearningRate: *learningRate,
		Iterations:   *iterations,
		Epsilon:      *epsilon,
		Seed:         *seed,
		LogEvery:     *logEvery,
	})

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := trainer.Run(ctx, trainer.RunConfig{
		DataPath:     cfg.DataPath,
		Hidden:       cfg.Hidden,
		LearningRate: cfg.LearningRate,
		Iterations:   cfg.Iterations,
		Epsilon:      cfg.Epsilon,
		Seed:         cfg.Seed,
		LogEvery:     cfg.LogEvery,
	}); err != nil {
		log.Fatalf("training failed: %v", err)
	}
}
