package insight

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/profitlens/backend-go/internal/config"
)

// Generator is the boundary to the text-generation service. Responses are
// opaque and non-deterministic; callers own retries and staleness.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	// GenerateJSON asks for a JSON-only response; the raw text still needs
	// parsing because the model may wrap it in a code fence.
	GenerateJSON(ctx context.Context, prompt string) (string, error)
	// Stream yields response chunks as they arrive. The channel closes when
	// the response ends or ctx is cancelled; a terminal failure arrives on
	// the error channel.
	Stream(ctx context.Context, prompt string) (<-chan string, <-chan error)
}

// GeminiClient implements Generator against the Gemini REST API.
type GeminiClient struct {
	cfg    config.GeminiConfig
	client *http.Client
}

// NewGeminiClient builds a Gemini-backed Generator.
func NewGeminiClient(cfg config.GeminiConfig) *GeminiClient {
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = "https://generativelanguage.googleapis.com/v1beta/models"
	}

	return &GeminiClient{
		cfg: cfg,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type geminiRequest struct {
	Contents         []geminiContent   `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	return g.call(ctx, prompt, nil)
}

func (g *GeminiClient) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	return g.call(ctx, prompt, &generationConfig{ResponseMimeType: "application/json"})
}

func (g *GeminiClient) call(ctx context.Context, prompt string, genCfg *generationConfig) (string, error) {
	url := fmt.Sprintf("%s/%s:generateContent?key=%s", g.cfg.Endpoint, g.cfg.Model, g.cfg.APIKey)

	body, err := json.Marshal(geminiRequest{
		Contents:         []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: genCfg,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API returned %d: %s", resp.StatusCode, truncate(string(payload), 200))
	}

	var decoded geminiResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return "", fmt.Errorf("failed to parse gemini response: %w", err)
	}

	if decoded.Error != nil {
		return "", fmt.Errorf("gemini error %d: %s", decoded.Error.Code, decoded.Error.Message)
	}

	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned empty response")
	}

	return decoded.Candidates[0].Content.Parts[0].Text, nil
}

// Stream calls streamGenerateContent with SSE framing and forwards each
// chunk's text.
func (g *GeminiClient) Stream(ctx context.Context, prompt string) (<-chan string, <-chan error) {
	chunks := make(chan string)
	errs := make(chan error, 1)

	go func() {
		defer close(chunks)
		defer close(errs)

		url := fmt.Sprintf("%s/%s:streamGenerateContent?alt=sse&key=%s", g.cfg.Endpoint, g.cfg.Model, g.cfg.APIKey)

		body, err := json.Marshal(geminiRequest{
			Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		})
		if err != nil {
			errs <- fmt.Errorf("failed to marshal request: %w", err)
			return
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			errs <- fmt.Errorf("failed to build request: %w", err)
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := g.client.Do(req)
		if err != nil {
			errs <- fmt.Errorf("gemini stream request failed: %w", err)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			payload, _ := io.ReadAll(resp.Body)
			errs <- fmt.Errorf("gemini API returned %d: %s", resp.StatusCode, truncate(string(payload), 200))
			return
		}

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := scanner.Text()
			if !strings.HasPrefix(line, "data: ") {
				continue
			}

			var decoded geminiResponse
			if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &decoded); err != nil {
				continue // keep-alives and non-JSON frames
			}
			if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
				continue
			}

			select {
			case chunks <- decoded.Candidates[0].Content.Parts[0].Text:
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil && ctx.Err() == nil {
			errs <- fmt.Errorf("gemini stream read failed: %w", err)
		}
	}()

	return chunks, errs
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
