package llm

import (
	"context"
	"time"

	"github.com/banna-commits/winnow/internal/config"
)

// Client is the interface to the summarization service.
type Client interface {
	Complete(ctx context.Context, prompt string) (*Response, error)
}

// Response holds the result of a completion.
type Response struct {
	Content  string
	Provider string
}

// NewClient creates a summarization client from config.
func NewClient(cfg config.LLMConfig) Client {
	o := NewOllama(cfg.OllamaURL, cfg.Model)
	o.Temperature = cfg.Temperature
	o.NumPredict = cfg.NumPredict
	o.Stream = cfg.Stream
	if cfg.TimeoutSecs > 0 {
		o.client.Timeout = time.Duration(cfg.TimeoutSecs) * time.Second
	}
	return o
}
