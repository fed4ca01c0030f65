package main

import (
	"fmt"

	"github.com/JonMunkholm/alcheck/internal/config"
	"github.com/JonMunkholm/alcheck/internal/core"
	"github.com/JonMunkholm/alcheck/internal/fetch"
	"github.com/JonMunkholm/alcheck/internal/sheet"
)

// app is the wired lookup stack shared by both commands.
type app struct {
	service *core.Service
	loader  *core.Loader
	board   *core.StatusBoard
}

func newApp(cfg *config.Config) (*app, error) {
	schema, err := cfg.Source.ResolveSchema()
	if err != nil {
		return nil, fmt.Errorf("resolve schema: %w", err)
	}

	format, err := sheet.ParseFormat(cfg.Source.Format)
	if err != nil {
		return nil, err
	}
	grammar, err := sheet.ParseGrammar(cfg.Source.Grammar)
	if err != nil {
		return nil, err
	}

	client := fetch.New(&fetch.Options{
		Timeout:   cfg.Source.FetchTimeout,
		UserAgent: fetch.DefaultUserAgent,
	})

	board := core.NewStatusBoard()
	loader, err := core.NewLoader(client, core.LoaderConfig{
		URL:    cfg.Source.URL,
		Schema: schema,
		Read: sheet.ReadOptions{
			Format:   format,
			Text:     sheet.Options{Grammar: grammar, Delimiter: cfg.Source.DelimiterRune()},
			MaxBytes: cfg.Source.MaxBytes,
		},
		Observer: core.MultiObserver{core.LogObserver{}, board},
	})
	if err != nil {
		return nil, err
	}

	return &app{
		service: core.NewService(loader),
		loader:  loader,
		board:   board,
	}, nil
}
