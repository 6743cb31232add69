// Package gateway is the outbound message dispatcher: it composes quiz
// messages and delivers them through the chat gateway's HTTP API.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	coreconfig "github.com/m3rciful/flagbot/core/config"
	"github.com/m3rciful/flagbot/core/logger"
	"github.com/m3rciful/flagbot/quiz"
)

const defaultSendTimeout = 10 * time.Second

// Client sends composed messages through the chat gateway. It implements
// quiz.Dispatcher. Every call is bounded by the configured timeout so a slow
// gateway cannot stall a session.
type Client struct {
	baseURL    string
	botID      string
	apiKey     string
	flagCDNURL string
	timeout    time.Duration
	http       *http.Client
}

// New validates the gateway credentials and constructs a client.
// Missing credentials fail fast with a ConfigurationError.
func New(cfg coreconfig.GatewayConfig, flagCDNURL string) (*Client, error) {
	if strings.TrimSpace(cfg.BotID) == "" {
		return nil, &coreconfig.ConfigurationError{Field: "gateway.bot_id", Reason: "required"}
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, &coreconfig.ConfigurationError{Field: "gateway.api_key", Reason: "required"}
	}
	timeout := defaultSendTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		botID:      cfg.BotID,
		apiKey:     cfg.APIKey,
		flagCDNURL: strings.TrimRight(flagCDNURL, "/"),
		timeout:    timeout,
		http:       buildHTTPClient(),
	}, nil
}

// SendDifficultyPrompt asks the user to choose a difficulty.
func (c *Client) SendDifficultyPrompt(ctx context.Context, to string) error {
	return c.send(ctx, "send.difficulty_prompt", difficultyPromptMessage(to))
}

// SendInvalidDifficulty notifies the user their difficulty choice was not recognized.
func (c *Client) SendInvalidDifficulty(ctx context.Context, to string) error {
	return c.send(ctx, "send.invalid_difficulty", invalidDifficultyMessage(to))
}

// SendFlagQuestion sends the flag image with the four option buttons.
func (c *Client) SendFlagQuestion(ctx context.Context, to string, q quiz.Question) error {
	return c.send(ctx, "send.question", questionMessage(to, c.FlagImageURL(q.Country), q))
}

// SendFeedback reports whether the answer was correct, with optional enrichment text.
func (c *Client) SendFeedback(ctx context.Context, to string, wasCorrect bool, countryName, enrichment string) error {
	return c.send(ctx, "send.feedback", feedbackMessage(to, wasCorrect, countryName, enrichment))
}

// SendGameOver sends the final score summary.
func (c *Client) SendGameOver(ctx context.Context, to string, score, total int) error {
	return c.send(ctx, "send.game_over", gameOverMessage(to, score, total))
}

// FlagImageURL builds the public CDN URL for a country's flag image.
func (c *Client) FlagImageURL(code string) string {
	return fmt.Sprintf("%s/w320/%s.png", c.flagCDNURL, strings.ToLower(code))
}

func (c *Client) send(ctx context.Context, action string, msg outboundMessage) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := json.Marshal(msg)
	if err != nil {
		return &DispatchError{Action: action, Err: err}
	}

	url := fmt.Sprintf("%s/bots/%s/messages", c.baseURL, c.botID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return &DispatchError{Action: action, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logFailure(ctx, action, err, time.Since(start))
		return &DispatchError{Action: action, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		statusErr := &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
		c.logFailure(ctx, action, statusErr, time.Since(start))
		return &DispatchError{Action: action, Err: statusErr}
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	if logger.ShouldSampleDebug() {
		logger.Debug(ctx, "gw", "send.success",
			slog.String("action", action),
			slog.Duration("duration", logger.Took(start)),
		)
	}
	return nil
}

func (c *Client) logFailure(ctx context.Context, action string, err error, elapsed time.Duration) {
	logger.Error(ctx, "gw", "send.fail",
		slog.String("action", action),
		slog.String("err", redactSecret(err.Error(), c.apiKey)),
		slog.String("err_code", classifyError(err)),
		slog.Duration("duration", logger.RoundMS(elapsed)),
	)
}
