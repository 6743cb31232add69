package main

import (
	"log"
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/flagbot/core/bootstrap"
	corecmd "github.com/m3rciful/flagbot/core/cmd"
	coreconfig "github.com/m3rciful/flagbot/core/config"
	"github.com/m3rciful/flagbot/core/httpserver"
	"github.com/m3rciful/flagbot/enrichment"
	"github.com/m3rciful/flagbot/flagimg"
	"github.com/m3rciful/flagbot/gateway"
	"github.com/m3rciful/flagbot/quiz"
	"github.com/m3rciful/flagbot/results"
	"github.com/m3rciful/flagbot/webhook"
)

type app struct {
	handler http.Handler
	db      *sqlx.DB
}

func (a *app) Handler() http.Handler { return a.handler }

func (a *app) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

func buildApp(cfg *coreconfig.Config) (corecmd.App, error) {
	boot, err := bootstrap.Run(bootstrap.Options{Config: cfg})
	if err != nil {
		return nil, err
	}

	gw, err := gateway.New(cfg.Gateway, cfg.Flags.CDNBaseURL)
	if err != nil {
		return nil, err
	}

	opts := []quiz.Option{
		quiz.WithEnricher(enrichment.New(cfg.Enrichment.URL)),
	}
	var resultsStore *results.Store
	if boot.DB != nil {
		resultsStore = results.New(boot.DB)
		opts = append(opts, quiz.WithRecorder(resultsStore))
	}
	engine := quiz.NewEngine(quiz.NewStore(), gw, opts...)

	mux := http.NewServeMux()
	handler := webhook.NewHandler(engine, resultsStore, flagimg.NewProxy(cfg.Flags.CDNBaseURL))
	handler.Register(mux)

	return &app{handler: httpserver.Chain(mux), db: boot.DB}, nil
}

func main() {
	err := corecmd.Run(corecmd.Options{
		DefaultConfigPath: "config.yaml",
		Bootstrap:         buildApp,
	})
	if err != nil {
		log.Fatalf("flagbot: %v", err)
	}
}
