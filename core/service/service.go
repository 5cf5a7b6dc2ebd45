// Package service dispatches the requests a user can make: analyze a page,
// save a shortcut for it, save a shortcut for a link, and read or write the
// settings. Each request is a distinct type and gets a distinct result type.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gaurav-prasanna/smarturl/core"
	"github.com/gaurav-prasanna/smarturl/core/filename"
	"github.com/gaurav-prasanna/smarturl/core/normalize"
	"github.com/gaurav-prasanna/smarturl/core/output"
	"github.com/gaurav-prasanna/smarturl/core/render"
	"github.com/gaurav-prasanna/smarturl/core/scan"
	"github.com/gaurav-prasanna/smarturl/core/settings"
	"github.com/gaurav-prasanna/smarturl/core/shortcut"
	"github.com/gaurav-prasanna/smarturl/core/store"
)

// DefaultScanTimeout bounds a page scan when Config.ScanTimeout is zero.
const DefaultScanTimeout = 10 * time.Second

var (
	// ErrUnknownRequest is returned by Handle for a nil request.
	ErrUnknownRequest = errors.New("unknown request")
	// ErrEmptyFilename is returned when a shortcut has no usable name.
	ErrEmptyFilename = errors.New("filename is empty")
	// ErrNoTarget is returned when there is no URL to analyze or save.
	ErrNoTarget = errors.New("no target URL")
)

// Request is one of AnalyzePage, GenerateShortcut, CreateFromLink,
// LoadSettings or SaveSettings.
type Request interface {
	isRequest()
}

// AnalyzePage scans the tab's page and proposes a filename.
type AnalyzePage struct {
	Tab core.Tab
}

// GenerateShortcut renders and saves one artifact. Page is optional and
// only used by the report formats.
type GenerateShortcut struct {
	Shortcut core.ShortcutRequest
	Format   string
	Page     *core.PageContent
}

// CreateFromLink saves a shortcut without scanning. With a LinkURL the link
// is the target and Text its title; otherwise the tab itself is saved.
type CreateFromLink struct {
	LinkURL string
	Text    string
	Tab     core.Tab
}

// LoadSettings returns the current settings.
type LoadSettings struct{}

// SaveSettings persists new settings.
type SaveSettings struct {
	Settings settings.Settings
}

func (AnalyzePage) isRequest()      {}
func (GenerateShortcut) isRequest() {}
func (CreateFromLink) isRequest()   {}
func (LoadSettings) isRequest()     {}
func (SaveSettings) isRequest()     {}

// Response is one of *Analysis, *Download or *SettingsResult.
type Response interface {
	isResponse()
}

// Analysis is the answer to AnalyzePage.
type Analysis struct {
	Page     *core.PageContent `json:"page" yaml:"page"`
	Filename string            `json:"filename" yaml:"filename"`
	Fallback bool              `json:"fallback" yaml:"fallback"`
	// Download is set when the settings ask for automatic download.
	Download *Download `json:"download,omitempty" yaml:"download,omitempty"`
}

// Download is the answer to GenerateShortcut and CreateFromLink.
type Download struct {
	ID       int64  `json:"downloadId" yaml:"downloadId"`
	Filename string `json:"filename" yaml:"filename"`
	Message  string `json:"message" yaml:"message"`
}

// SettingsResult is the answer to LoadSettings and SaveSettings.
type SettingsResult struct {
	Settings settings.Settings `json:"settings"`
}

func (*Analysis) isResponse()       {}
func (*Download) isResponse()       {}
func (*SettingsResult) isResponse() {}

// Config wires a Service.
type Config struct {
	Scanner     scan.Scanner
	Downloader  output.Downloader
	Store       store.KV
	Notifier    Notifier
	Settings    settings.Settings
	ScanTimeout time.Duration
	Now         func() time.Time
}

// Service handles requests for one command invocation.
type Service struct {
	scanner     scan.Scanner
	downloader  output.Downloader
	kv          store.KV
	notifier    Notifier
	settings    settings.Settings
	scanTimeout time.Duration
	now         func() time.Time
}

// New creates a Service. The settings in cfg are used for every request
// until SaveSettings replaces them.
func New(cfg Config) *Service {
	s := &Service{
		scanner:     cfg.Scanner,
		downloader:  cfg.Downloader,
		kv:          cfg.Store,
		notifier:    cfg.Notifier,
		settings:    cfg.Settings,
		scanTimeout: cfg.ScanTimeout,
		now:         cfg.Now,
	}
	if s.scanTimeout <= 0 {
		s.scanTimeout = DefaultScanTimeout
	}
	if s.notifier == nil {
		s.notifier = LogNotifier{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Settings returns the settings in effect.
func (s *Service) Settings() settings.Settings {
	return s.settings
}

// Handle dispatches req to its handler.
func (s *Service) Handle(ctx context.Context, req Request) (Response, error) {
	switch r := req.(type) {
	case AnalyzePage:
		return respond(s.Analyze(ctx, r))
	case GenerateShortcut:
		return respond(s.Generate(ctx, r))
	case CreateFromLink:
		return respond(s.CreateFromLink(ctx, r))
	case LoadSettings:
		return &SettingsResult{Settings: s.settings}, nil
	case SaveSettings:
		return respond(s.SaveSettings(ctx, r))
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownRequest, req)
	}
}

// respond keeps a failed request from yielding a non-nil Response that
// wraps a nil pointer.
func respond[T Response](res T, err error) (Response, error) {
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) synthesizer() filename.Synthesizer {
	return filename.Synthesizer{
		MaxParts: s.settings.MaxKeywords,
		Template: s.settings.FilenameTemplate,
		Now:      s.now,
	}
}

// Analyze inspects the tab's page and, when the settings ask for it, saves
// the proposed shortcut right away.
func (s *Service) Analyze(ctx context.Context, req AnalyzePage) (*Analysis, error) {
	result, err := s.Inspect(ctx, req.Tab)
	if err != nil {
		return nil, err
	}
	page := result.Page

	if s.settings.AutoDownload {
		dl, err := s.Generate(ctx, GenerateShortcut{
			Shortcut: core.ShortcutRequest{Filename: result.Filename, URL: req.Tab.URL, Title: page.Title},
			Page:     page,
		})
		if err != nil {
			return result, err
		}
		result.Download = dl
	}
	return result, nil
}

// Inspect scans the tab's page and proposes a filename. A failed or timed
// out scan is not an error: the page is rebuilt from the tab's title and URL.
func (s *Service) Inspect(ctx context.Context, tab core.Tab) (*Analysis, error) {
	if strings.TrimSpace(tab.URL) == "" {
		return nil, ErrNoTarget
	}

	page := s.scan(ctx, tab)
	return &Analysis{
		Page:     page,
		Filename: s.synthesizer().ForPage(page),
		Fallback: page.Fallback,
	}, nil
}

func (s *Service) scan(ctx context.Context, tab core.Tab) *core.PageContent {
	if s.scanner == nil {
		return scan.Fallback(tab)
	}

	scanCtx, cancel := context.WithTimeout(ctx, s.scanTimeout)
	defer cancel()

	resp := s.scanner.Scan(scanCtx, tab.URL)
	if !resp.Success || resp.Data == nil {
		log.Warn().Str("url", tab.URL).Str("error", resp.Error).Msg("page scan failed; using tab data")
		return scan.Fallback(tab)
	}
	return resp.Data
}

// Generate renders the shortcut in the requested format and hands it to the
// downloader as a data URI.
func (s *Service) Generate(ctx context.Context, req GenerateShortcut) (*Download, error) {
	name := strings.TrimSpace(normalize.StripIllegal(req.Shortcut.Filename))
	if name == "" {
		return nil, ErrEmptyFilename
	}
	if strings.TrimSpace(req.Shortcut.URL) == "" {
		return nil, ErrNoTarget
	}

	renderer, err := render.ForFormat(req.Format)
	if err != nil {
		return nil, err
	}
	data, err := renderer.Render(req.Shortcut, req.Page)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", name, err)
	}

	file := name + renderer.Extension()
	id, err := s.downloader.Download(ctx, output.DownloadRequest{
		URL:      shortcut.DataURI(renderer.MediaType(), data),
		Filename: file,
		Folder:   s.settings.DownloadFolder,
		Source:   req.Shortcut.URL,
	})
	if err != nil {
		s.notify(LevelError, "Could not create shortcut")
		return nil, fmt.Errorf("downloading %s: %w", file, err)
	}

	s.notify(LevelSuccess, "Shortcut created: "+file)
	return &Download{ID: id, Filename: file, Message: "download started"}, nil
}

// CreateFromLink saves a .url shortcut named from the link text or the tab
// title, without scanning.
func (s *Service) CreateFromLink(ctx context.Context, req CreateFromLink) (*Download, error) {
	target, title := req.Tab.URL, req.Tab.Title
	if req.LinkURL != "" {
		target = req.LinkURL
		title = req.Text
		if title == "" {
			title = req.LinkURL
		}
	}
	if strings.TrimSpace(target) == "" {
		return nil, ErrNoTarget
	}

	return s.Generate(ctx, GenerateShortcut{
		Shortcut: core.ShortcutRequest{
			Filename: s.synthesizer().Simple(title, target),
			URL:      target,
			Title:    title,
		},
	})
}

// SaveSettings stores the settings and makes them current.
func (s *Service) SaveSettings(ctx context.Context, req SaveSettings) (*SettingsResult, error) {
	if s.kv == nil {
		return nil, errors.New("no settings store configured")
	}
	if err := settings.Save(ctx, s.kv, req.Settings); err != nil {
		return nil, err
	}
	s.settings = req.Settings
	return &SettingsResult{Settings: s.settings}, nil
}

func (s *Service) notify(level Level, msg string) {
	if s.settings.ShowNotifications {
		s.notifier.Notify(level, msg)
	}
}
