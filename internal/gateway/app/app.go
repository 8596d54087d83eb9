// Package app assembles the gateway: it picks stores based on config and
// wires the services, handlers and HTTP server together.
package app

import (
	"context"
	"fmt"
	"log"

	"atelier/internal/gateway/config"
	"atelier/internal/gateway/handler"
	settingsrepo "atelier/internal/gateway/repository/settings"
	"atelier/internal/gateway/server"
	conversationsvc "atelier/internal/gateway/service/conversation"
	tasksvc "atelier/internal/gateway/service/task"
	"atelier/internal/llm"
)

type App struct {
	cfg    *config.Config
	server *server.Server
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	stores, err := buildStores(cfg)
	if err != nil {
		return nil, err
	}

	var responder llm.Responder = llm.HeuristicResponder{}
	if cfg.LLM.Enabled {
		if g, err := llm.NewGeminiResponder(context.Background(), cfg.LLM.APIKey, cfg.LLM.Model); err != nil {
			log.Printf("llm disabled, falling back to templates: %v", err)
		} else {
			responder = g
		}
	}

	conversations := conversationsvc.New(stores.Drafts, stores.Collections, responder)
	tasks := tasksvc.New(stores.Tasks, stores.Deliverables)
	settings := settingsrepo.New(cfg.Files.SettingsPath)

	svc := handler.NewService(conversations, tasks, settings)
	srv := server.New(cfg.Port, server.NewMux(svc))

	return &App{cfg: cfg, server: srv}, nil
}

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	return a.server.Shutdown(ctx)
}
