// File: cmd/diagnostic/llm_diagnostic.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/iyunix/go-chatbot/internal/config"
	"github.com/iyunix/go-chatbot/internal/services/ai"
	chatservice "github.com/iyunix/go-chatbot/internal/services/chat"
)

func main() {
	prompt := flag.String("prompt", "What is the answer to life, universe and everything?", "user message to send")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config Error: %v", err)
	}
	if cfg.LLMAPIKey == "" {
		log.Fatal("LLM_API_KEY not set in environment")
	}

	aiConfig := ai.DefaultConfig()
	aiConfig.APIKey = cfg.LLMAPIKey
	aiConfig.BaseURL = cfg.LLMBaseURL
	aiConfig.Model = cfg.LLMModel
	aiConfig.Timeout = cfg.LLMTimeout

	provider, err := ai.NewOpenAIProvider(aiConfig)
	if err != nil {
		log.Fatalf("Provider Error: %v", err)
	}

	fmt.Printf("Testing %s at %s\n", provider.Model(), cfg.LLMBaseURL)

	turns := []ai.Turn{
		{Role: ai.RoleSystem, Content: chatservice.DefaultSystemPrompt},
		{Role: ai.RoleAssistant, Content: chatservice.DefaultGreeting},
		{Role: ai.RoleUser, Content: *prompt},
	}

	start := time.Now()
	reply, err := provider.GenerateReply(context.Background(), turns)
	if err != nil {
		log.Fatalf("Chat completion failed after %v: %v", time.Since(start), err)
	}

	fmt.Printf("Reply (%v):\n%s\n", time.Since(start).Round(time.Millisecond), reply)
}
