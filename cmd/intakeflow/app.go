package main

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/tbxark/intakeflow/catalog"
	"github.com/tbxark/intakeflow/intake"
	"github.com/tbxark/intakeflow/internal/config"
	"github.com/tbxark/intakeflow/internal/logging"
	"github.com/tbxark/intakeflow/triage"
	"github.com/tbxark/intakeflow/types"
	"go.uber.org/zap"
)

type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	catalog   *catalog.Catalog
	store     *intake.Store
	chatModel model.ToolCallingChatModel
}

func loadApp(ctx context.Context, onEffect func(types.Effect)) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	if err != nil {
		return nil, err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}

	var recognizer triage.Recognizer = triage.NewLocalRecognizer()
	var cm model.ToolCallingChatModel
	if cfg.LLM.Enabled() {
		cm, err = openai.NewChatModel(ctx, &openai.ChatModelConfig{
			APIKey:  cfg.LLM.APIKey,
			Model:   cfg.LLM.Model,
			BaseURL: cfg.LLM.BaseURL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create chat model: %w", err)
		}
		llm, err := triage.NewToolBasedRecognizer(cm, triage.WithRecognizerLogger(logger))
		if err != nil {
			return nil, err
		}
		recognizer = triage.NewFailbackRecognizer(recognizer, llm)
	}

	store := intake.NewStore(
		intake.StoreConfig{
			TTL:             cfg.Session.TTL,
			CleanupInterval: cfg.Session.CleanupInterval,
			Logger:          logger,
		},
		intake.WithCatalog(cat),
		intake.WithRecognizer(recognizer),
		intake.WithLogger(logger),
		intake.WithAckDelay(cfg.Submission.AckDelay),
		intake.WithReentryPolicy(cfg.Policy()),
		intake.WithEffectHandler(onEffect),
	)
	return &app{cfg: cfg, logger: logger, catalog: cat, store: store, chatModel: cm}, nil
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.Catalog.Path == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(cfg.Catalog.Path)
}

func (a *app) Close() {
	a.store.Close()
	_ = a.logger.Sync()
}
