package config

import (
	"os"
	"sync"
)

type OllamaConfig struct {
	BaseURL string
}

var (
	ollamaConfig *OllamaConfig
	ollamaOnce   sync.Once
)

func LoadOllamaConfig() *OllamaConfig {
	ollamaOnce.Do(func() {
		ollamaConfig = &OllamaConfig{
			BaseURL: os.Getenv("OLLAMA_BASE_URL"),
		}
	})
	return ollamaConfig
}
