package main

import (
	"context"
	"net/http"
	"os"

	httpadapter "github.com/finnmcm/philo-ai/internal/adapters/http"
	"github.com/finnmcm/philo-ai/internal/adapters/llm"
	"github.com/finnmcm/philo-ai/internal/adapters/storage/blob"
	"github.com/finnmcm/philo-ai/internal/app/dialogue"
	"github.com/finnmcm/philo-ai/internal/app/discussion"
	"github.com/finnmcm/philo-ai/internal/app/gate"
	"github.com/finnmcm/philo-ai/internal/app/match"
	"github.com/finnmcm/philo-ai/internal/config"
	"github.com/finnmcm/philo-ai/internal/domain"
	"github.com/finnmcm/philo-ai/internal/observability"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()
	log := observability.Logger()

	var (
		chatLLM domain.TextGenerator
		gateLLM domain.TextGenerator
	)

	if cfg.UseMockLLM {
		log.Info("using mock LLM client")
		mock := llm.NewMockLLM()
		chatLLM, gateLLM = mock, mock
	} else {
		log.Info("using Gemini LLM client",
			"model", cfg.ModelName,
			"gate_model", cfg.GateModelName)
		client, err := llm.NewGeminiClient(ctx, cfg.GCPProjectID, cfg.GCPLocation, cfg.ModelName)
		if err != nil {
			log.Error("error initializing Gemini client", "error", err)
			os.Exit(1)
		}
		chatLLM = client
		gateLLM = client.WithModel(cfg.GateModelName)
	}

	log.Info("using blob storage", "url", cfg.StorageURL)
	store := blob.NewStore(cfg.StorageURL)

	g := gate.New(gateLLM, gate.Policy(cfg.GatePolicy))
	svc := discussion.NewService(
		g,
		match.NewSelector(chatLLM),
		dialogue.NewEngine(chatLLM, g),
		store,
	)

	handler := httpadapter.NewServer(svc)

	addr := ":" + cfg.Port
	log.Info("philo-ai API listening", "addr", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
