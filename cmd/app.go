package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/gaurav-prasanna/smarturl/core/extract"
	"github.com/gaurav-prasanna/smarturl/core/fetch"
	"github.com/gaurav-prasanna/smarturl/core/output"
	"github.com/gaurav-prasanna/smarturl/core/scan"
	"github.com/gaurav-prasanna/smarturl/core/service"
	"github.com/gaurav-prasanna/smarturl/core/settings"
	"github.com/gaurav-prasanna/smarturl/core/store"
)

// app holds the collaborators of one command invocation.
type app struct {
	db      *store.DB
	fetcher *fetch.HTTPFetcher
	svc     *service.Service
}

// errNoStore is returned by commands that need the store when it could not be opened.
var errNoStore = errors.New("settings store unavailable")

// openApp opens the store, loads the settings once and wires the service.
// A store that cannot be opened is logged and the app runs on default
// settings without history.
func openApp(ctx context.Context) (*app, error) {
	path := viper.GetString("store.path")
	if path == "" {
		path = store.DefaultPath()
	}

	var (
		kv      store.KV
		history output.History
	)
	db, err := store.Open(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("settings store unavailable; using defaults")
		db = nil
	} else {
		log.Debug().Str("path", db.Path()).Msg("opened store")
		kv, history = db, db
		settings.EnsureDefaults(ctx, kv)
	}
	current := settings.Load(ctx, kv)

	fetcher := fetch.New(
		fetch.WithTimeout(viper.GetDuration("fetch.timeout")),
		fetch.WithUserAgent(viper.GetString("fetch.user_agent")),
	)

	downloader, err := output.New(viper.GetString("download.dir"), history)
	if err != nil {
		if db != nil {
			db.Close()
		}
		return nil, fmt.Errorf("initializing downloader: %w", err)
	}

	svc := service.New(service.Config{
		Scanner:     scan.NewHTTPScanner(fetcher, extract.ParseMode(current.AnalysisMode)),
		Downloader:  downloader,
		Store:       kv,
		Notifier:    service.LogNotifier{},
		Settings:    current,
		ScanTimeout: viper.GetDuration("scan.timeout"),
	})

	return &app{db: db, fetcher: fetcher, svc: svc}, nil
}

func (a *app) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
