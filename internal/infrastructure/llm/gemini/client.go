package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/finadvisor/assessment-api/internal/core/domain"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-2.0-flash"
	defaultTimeout = 30 * time.Second

	maxResponseBytes = 4 << 20
)

// Config holds the Gemini REST settings.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Client implements ports.AdviceGateway against the Gemini generateContent
// endpoint. Each call is a single round trip; nothing is retried.
type Client struct {
	cfg  Config
	http *http.Client
	log  zerolog.Logger
}

func NewClient(cfg Config, log zerolog.Logger) *Client {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  log.With().Str("component", "gemini").Logger(),
	}
}

func (c *Client) InvestmentAdvice(ctx context.Context, snapshot domain.ProfileFields, category domain.InvestmentCategory) (*domain.AdviceResult, error) {
	prompt, err := advicePrompt(snapshot, category)
	if err != nil {
		return nil, err
	}
	text, err := c.generate(ctx, prompt, adviceSchema())
	if err != nil {
		return nil, err
	}
	advice, err := parseAdvice(text)
	if err != nil {
		c.log.Warn().Err(err).Str("category", string(category)).Msg("advice response rejected")
		return nil, err
	}
	return advice, nil
}

func (c *Client) GoalCompletion(ctx context.Context, snapshot domain.ProfileFields) (*domain.GoalAnalysis, error) {
	prompt, err := goalPrompt(snapshot)
	if err != nil {
		return nil, err
	}
	text, err := c.generate(ctx, prompt, goalSchema())
	if err != nil {
		return nil, err
	}
	analysis, err := parseGoal(text)
	if err != nil {
		c.log.Warn().Err(err).Msg("goal analysis response rejected")
		return nil, err
	}
	return analysis, nil
}

func upstreamError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrUpstream, fmt.Sprintf(format, args...))
}

// generate performs one generateContent call and returns the candidate text.
func (c *Client) generate(ctx context.Context, prompt string, responseSchema *schema) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	body := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:      0.6,
			TopP:             0.95,
			TopK:             40,
			MaxOutputTokens:  8192,
			ResponseMimeType: "application/json",
			ResponseSchema:   responseSchema,
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encode generate request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.cfg.BaseURL, url.PathEscape(c.cfg.Model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return "", upstreamError("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", upstreamError("read response: %v", err)
	}

	c.log.Debug().
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Int("bytes", len(raw)).
		Msg("generateContent completed")

	if resp.StatusCode/100 != 2 {
		return "", upstreamError("status %d: %s", resp.StatusCode, truncate(string(raw), 200))
	}

	var out generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", upstreamError("decode envelope: %v", err)
	}
	if out.PromptFeedback != nil && out.PromptFeedback.BlockReason != "" {
		return "", upstreamError("prompt blocked: %s", out.PromptFeedback.BlockReason)
	}
	text := out.text()
	if strings.TrimSpace(text) == "" {
		return "", upstreamError("no candidates returned")
	}
	return text, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
