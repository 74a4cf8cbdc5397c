package main

import (
	"context"
	"errors"

	"github.com/agenthands/carelens/internal/config"
	"github.com/agenthands/carelens/internal/core"
	"github.com/agenthands/carelens/internal/core/analysis"
	"github.com/agenthands/carelens/internal/core/enrichment"
	"github.com/agenthands/carelens/internal/core/summary"
	"github.com/agenthands/carelens/internal/llm"
	"github.com/agenthands/carelens/internal/store"
	"go.uber.org/zap"
)

// app holds the wired services shared by the subcommands.
type app struct {
	llm       llm.LLMClient
	store     store.Store
	clients   *core.Clients
	notes     *core.Notes
	analytics *core.Analytics
}

func newPipeline(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*enrichment.Pipeline, llm.LLMClient, error) {
	client, err := llm.NewClient(ctx, cfg.LLM, logger)
	if err != nil {
		return nil, nil, err
	}
	analyzer := analysis.NewAnalyzer(client, cfg.Analysis, cfg.Sampling.AnalysisTemperature, logger)
	return enrichment.NewPipeline(analyzer, cfg.Concurrency.ParallelEnrichment), client, nil
}

func newApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*app, error) {
	pipeline, client, err := newPipeline(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(ctx, cfg, logger)
	if err != nil {
		llm.Close(client)
		return nil, err
	}

	summarizer := summary.NewSummarizer(client, cfg.Summary, cfg.Sampling, logger)
	a := &app{
		llm:       client,
		store:     st,
		clients:   core.NewClients(st),
		notes:     core.NewNotes(st, pipeline, logger),
		analytics: core.NewAnalytics(st, summarizer, logger),
	}

	if cfg.Storage.SeedPath != "" {
		if err := a.seed(ctx, cfg.Storage.SeedPath, logger); err != nil {
			a.Close()
			return nil, err
		}
	}
	return a, nil
}

// seed loads fixture clients and notes; clients already present are skipped.
func (a *app) seed(ctx context.Context, path string, logger *zap.Logger) error {
	seed, err := store.LoadSeed(path)
	if err != nil {
		return err
	}
	n, err := core.ApplySeed(ctx, a.clients, a.notes, seed)
	if err != nil {
		return err
	}
	logger.Info("Seed applied", zap.String("path", path), zap.Int("clients", n))
	return nil
}

func (a *app) Close() error {
	return errors.Join(a.store.Close(), llm.Close(a.llm))
}
