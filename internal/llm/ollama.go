package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Ollama calls a local Ollama instance's generate endpoint.
type Ollama struct {
	url   string
	model string

	Temperature float64
	NumPredict  int
	Stream      bool

	client *http.Client
}

// NewOllama creates a new Ollama client with default generation options.
func NewOllama(url, model string) *Ollama {
	return &Ollama{
		url:         url,
		model:       model,
		Temperature: 0.3,
		NumPredict:  1024,
		client:      &http.Client{Timeout: 120 * time.Second},
	}
}

// Complete sends a prompt to /api/generate and returns the full response
// text. The endpoint answers either with a single JSON object or, when
// streaming, with newline-delimited partial objects. Both framings end
// with a done:true marker; a response without one is treated as truncated
// and returned as an error so callers never persist partial output.
func (o *Ollama) Complete(ctx context.Context, prompt string) (*Response, error) {
	reqBody := map[string]any{
		"model":  o.model,
		"prompt": prompt,
		"stream": o.Stream,
		"options": map[string]any{
			"temperature": o.Temperature,
			"num_predict": o.NumPredict,
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", o.url+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := bufio.NewReader(resp.Body).ReadString('\n')
		return nil, fmt.Errorf("ollama api status %d: %s", resp.StatusCode, strings.TrimSpace(msg))
	}

	content, err := collectResponse(resp)
	if err != nil {
		return nil, err
	}

	return &Response{
		Content:  strings.TrimSpace(content),
		Provider: "ollama",
	}, nil
}

// collectResponse concatenates response fragments from either framing.
// Undecodable lines are skipped; the terminal done marker is mandatory.
func collectResponse(resp *http.Response) (string, error) {
	var sb strings.Builder
	done := false

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var obj struct {
			Response string `json:"response"`
			Done     bool   `json:"done"`
			Error    string `json:"error"`
		}
		if err := json.Unmarshal(line, &obj); err != nil {
			continue
		}
		if obj.Error != "" {
			return "", fmt.Errorf("ollama error: %s", obj.Error)
		}
		sb.WriteString(obj.Response)
		if obj.Done {
			done = true
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if !done {
		return "", fmt.Errorf("ollama response ended without done marker")
	}
	return sb.String(), nil
}
