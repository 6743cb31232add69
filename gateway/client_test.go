package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	coreconfig "github.com/m3rciful/flagbot/core/config"
	"github.com/m3rciful/flagbot/quiz"
)

func testConfig(baseURL string) coreconfig.GatewayConfig {
	return coreconfig.GatewayConfig{
		BaseURL: baseURL,
		BotID:   "bot-42",
		APIKey:  "secret-key",
	}
}

func TestNewRejectsMissingCredentials(t *testing.T) {
	cases := []struct {
		name string
		cfg  coreconfig.GatewayConfig
	}{
		{"missing bot id", coreconfig.GatewayConfig{BaseURL: "http://gw", APIKey: "k"}},
		{"missing api key", coreconfig.GatewayConfig{BaseURL: "http://gw", BotID: "b"}},
		{"blank bot id", coreconfig.GatewayConfig{BaseURL: "http://gw", BotID: "  ", APIKey: "k"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.cfg, "http://cdn")
			var cfgErr *coreconfig.ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("err = %v, want ConfigurationError", err)
			}
		})
	}
}

func TestSendDifficultyPrompt(t *testing.T) {
	var gotPath, gotKey string
	var gotMsg outboundMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("apikey")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotMsg)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, err := New(testConfig(srv.URL), "http://cdn")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := c.SendDifficultyPrompt(context.Background(), "15551234567"); err != nil {
		t.Fatalf("send: %v", err)
	}

	if gotPath != "/bots/bot-42/messages" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotKey != "secret-key" {
		t.Fatalf("apikey header = %q", gotKey)
	}
	if gotMsg.To != "15551234567" || gotMsg.Type != "buttons" {
		t.Fatalf("message = %+v", gotMsg)
	}
	if len(gotMsg.Buttons) != 2 || gotMsg.Buttons[0].Body != quiz.LabelBeginner {
		t.Fatalf("buttons = %+v", gotMsg.Buttons)
	}
}

func TestSendFlagQuestionCarriesImageAndOptions(t *testing.T) {
	var gotMsg outboundMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotMsg)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c, err := New(testConfig(srv.URL), "https://cdn.example.com/")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	q := quiz.Question{
		Country:     "ua",
		CountryName: "Ukraine",
		Options:     []string{"Ukraine", "France", "Japan", "Brazil"},
	}
	if err := c.SendFlagQuestion(context.Background(), "1555", q); err != nil {
		t.Fatalf("send: %v", err)
	}

	if gotMsg.Image != "https://cdn.example.com/w320/ua.png" {
		t.Fatalf("image = %q", gotMsg.Image)
	}
	if len(gotMsg.Buttons) != 4 {
		t.Fatalf("buttons = %+v", gotMsg.Buttons)
	}
}

func TestSendServerErrorReturnsDispatchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, err := New(testConfig(srv.URL), "http://cdn")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	err = c.SendGameOver(context.Background(), "1555", 3, 5)

	var dispErr *DispatchError
	if !errors.As(err, &dispErr) {
		t.Fatalf("err = %v, want DispatchError", err)
	}
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusInternalServerError {
		t.Fatalf("wrapped err = %v, want StatusError 500", err)
	}
}

func TestFlagImageURL(t *testing.T) {
	c, err := New(testConfig("http://gw"), "https://flagcdn.com")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if got := c.FlagImageURL("UA"); got != "https://flagcdn.com/w320/ua.png" {
		t.Fatalf("url = %q", got)
	}
}

func TestRedactSecret(t *testing.T) {
	msg := redactSecret("post https://gw/bots/b/messages?apikey=secret-key failed", "secret-key")
	if strings.Contains(msg, "secret-key") {
		t.Fatalf("secret leaked: %q", msg)
	}
}
