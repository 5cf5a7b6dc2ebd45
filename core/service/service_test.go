package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/smarturl/core"
	"github.com/gaurav-prasanna/smarturl/core/output"
	"github.com/gaurav-prasanna/smarturl/core/scan"
	"github.com/gaurav-prasanna/smarturl/core/settings"
	"github.com/gaurav-prasanna/smarturl/core/shortcut"
)

var fixedNow = func() time.Time { return time.UnixMilli(1700000000123).UTC() }

type stubScanner struct {
	resp  scan.Response
	delay time.Duration
	calls int
}

func (s *stubScanner) Scan(ctx context.Context, _ string) scan.Response {
	s.calls++
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return scan.Response{Error: ctx.Err().Error()}
		}
	}
	return s.resp
}

type capturingDownloader struct {
	reqs []output.DownloadRequest
	err  error
}

func (d *capturingDownloader) Download(_ context.Context, req output.DownloadRequest) (int64, error) {
	if d.err != nil {
		return 0, d.err
	}
	d.reqs = append(d.reqs, req)
	return int64(len(d.reqs)), nil
}

type capturingNotifier struct {
	messages []string
	levels   []Level
}

func (n *capturingNotifier) Notify(level Level, message string) {
	n.levels = append(n.levels, level)
	n.messages = append(n.messages, message)
}

type memKV map[string]string

func (m memKV) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}

func (m memKV) Set(_ context.Context, key, value string) error {
	m[key] = value
	return nil
}

func newService(sc scan.Scanner, dl output.Downloader, n Notifier, st settings.Settings) *Service {
	return New(Config{
		Scanner:     sc,
		Downloader:  dl,
		Store:       memKV{},
		Notifier:    n,
		Settings:    st,
		ScanTimeout: 50 * time.Millisecond,
		Now:         fixedNow,
	})
}

func scannedPage() *core.PageContent {
	return &core.PageContent{
		Title:    "Kubernetes Operators Guide",
		URL:      "https://example.com/k8s",
		Keywords: []string{"operators", "kubernetes", "reconcile", "controller", "crd", "webhook"},
	}
}

func TestAnalyze_UsesScan(t *testing.T) {
	sc := &stubScanner{resp: scan.Response{Success: true, Data: scannedPage()}}
	svc := newService(sc, &capturingDownloader{}, nil, settings.Defaults())

	res, err := svc.Handle(context.Background(), AnalyzePage{Tab: core.Tab{URL: "https://example.com/k8s", Title: "ignored"}})
	require.NoError(t, err)

	a, ok := res.(*Analysis)
	require.True(t, ok)
	assert.False(t, a.Fallback)
	assert.Equal(t, "operators_kubernetes_reconcile_controller_crd", a.Filename)
	assert.Nil(t, a.Download)
}

func TestAnalyze_MaxKeywordsSetting(t *testing.T) {
	sc := &stubScanner{resp: scan.Response{Success: true, Data: scannedPage()}}
	st := settings.Defaults()
	st.MaxKeywords = 2
	st.FilenameTemplate = "{domain}_{keywords}"
	svc := newService(sc, &capturingDownloader{}, nil, st)

	a, err := svc.Analyze(context.Background(), AnalyzePage{Tab: core.Tab{URL: "https://example.com/k8s"}})
	require.NoError(t, err)
	assert.Equal(t, "example.com_operators_kubernetes", a.Filename)
}

func TestAnalyze_FallsBackWhenScanFails(t *testing.T) {
	sc := &stubScanner{resp: scan.Response{Error: "connection refused"}}
	svc := newService(sc, &capturingDownloader{}, nil, settings.Defaults())

	a, err := svc.Analyze(context.Background(), AnalyzePage{Tab: core.Tab{
		URL:   "https://www.example.com/news",
		Title: "Breaking News: Economy Update",
	}})
	require.NoError(t, err)
	assert.True(t, a.Fallback)
	assert.True(t, a.Page.Fallback)
	assert.Equal(t, "Breaking_News_Economy_Update", a.Filename)
}

func TestAnalyze_FallsBackOnTimeout(t *testing.T) {
	sc := &stubScanner{resp: scan.Response{Success: true, Data: scannedPage()}, delay: time.Second}
	svc := newService(sc, &capturingDownloader{}, nil, settings.Defaults())

	start := time.Now()
	a, err := svc.Analyze(context.Background(), AnalyzePage{Tab: core.Tab{URL: "https://example.com/slow", Title: ""}})
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.True(t, a.Fallback)
	assert.Equal(t, "example.com_page_1700000000123", a.Filename)
}

func TestAnalyze_NoTarget(t *testing.T) {
	svc := newService(&stubScanner{}, &capturingDownloader{}, nil, settings.Defaults())
	_, err := svc.Analyze(context.Background(), AnalyzePage{})
	assert.ErrorIs(t, err, ErrNoTarget)
}

func TestAnalyze_AutoDownload(t *testing.T) {
	sc := &stubScanner{resp: scan.Response{Success: true, Data: scannedPage()}}
	dl := &capturingDownloader{}
	st := settings.Defaults()
	st.AutoDownload = true
	svc := newService(sc, dl, &capturingNotifier{}, st)

	a, err := svc.Analyze(context.Background(), AnalyzePage{Tab: core.Tab{URL: "https://example.com/k8s"}})
	require.NoError(t, err)
	require.NotNil(t, a.Download)
	require.Len(t, dl.reqs, 1)
	assert.Equal(t, a.Filename+".url", dl.reqs[0].Filename)
}

func TestGenerate_DataURIRoundTrip(t *testing.T) {
	dl := &capturingDownloader{}
	n := &capturingNotifier{}
	st := settings.Defaults()
	st.DownloadFolder = "links"
	svc := newService(nil, dl, n, st)

	res, err := svc.Handle(context.Background(), GenerateShortcut{Shortcut: core.ShortcutRequest{
		Filename: `  my: "page"  `,
		URL:      "https://example.com/a?b=c",
		Title:    "My page",
	}})
	require.NoError(t, err)

	d := res.(*Download)
	assert.Equal(t, int64(1), d.ID)
	assert.Equal(t, "my page.url", d.Filename)

	require.Len(t, dl.reqs, 1)
	req := dl.reqs[0]
	assert.Equal(t, "links", req.Folder)
	assert.Equal(t, "https://example.com/a?b=c", req.Source)
	assert.Contains(t, req.URL, "data:application/x-mswinurl;base64,")

	data, err := output.DecodeDataURI(req.URL)
	require.NoError(t, err)
	target, err := shortcut.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a?b=c", target)

	assert.Equal(t, []Level{LevelSuccess}, n.levels)
}

func TestGenerate_Formats(t *testing.T) {
	dl := &capturingDownloader{}
	svc := newService(nil, dl, nil, settings.Defaults())

	d, err := svc.Generate(context.Background(), GenerateShortcut{
		Shortcut: core.ShortcutRequest{Filename: "report", URL: "https://example.com/"},
		Format:   "json",
		Page:     scannedPage(),
	})
	require.NoError(t, err)
	assert.Equal(t, "report.json", d.Filename)
	assert.Contains(t, dl.reqs[0].URL, "data:application/json;base64,")

	_, err = svc.Generate(context.Background(), GenerateShortcut{
		Shortcut: core.ShortcutRequest{Filename: "report", URL: "https://example.com/"},
		Format:   "docx",
	})
	assert.Error(t, err)
}

func TestGenerate_Errors(t *testing.T) {
	svc := newService(nil, &capturingDownloader{}, nil, settings.Defaults())

	_, err := svc.Generate(context.Background(), GenerateShortcut{Shortcut: core.ShortcutRequest{Filename: ` <>:"/\|?* `, URL: "https://example.com/"}})
	assert.ErrorIs(t, err, ErrEmptyFilename)

	_, err = svc.Generate(context.Background(), GenerateShortcut{Shortcut: core.ShortcutRequest{Filename: "x"}})
	assert.ErrorIs(t, err, ErrNoTarget)
}

func TestGenerate_DownloadFailureNotifies(t *testing.T) {
	n := &capturingNotifier{}
	svc := newService(nil, &capturingDownloader{err: errors.New("disk full")}, n, settings.Defaults())

	_, err := svc.Generate(context.Background(), GenerateShortcut{Shortcut: core.ShortcutRequest{Filename: "x", URL: "https://example.com/"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, []Level{LevelError}, n.levels)
}

func TestGenerate_NotificationsDisabled(t *testing.T) {
	n := &capturingNotifier{}
	st := settings.Defaults()
	st.ShowNotifications = false
	svc := newService(nil, &capturingDownloader{}, n, st)

	_, err := svc.Generate(context.Background(), GenerateShortcut{Shortcut: core.ShortcutRequest{Filename: "x", URL: "https://example.com/"}})
	require.NoError(t, err)
	assert.Empty(t, n.messages)
}

func TestCreateFromLink(t *testing.T) {
	dl := &capturingDownloader{}
	svc := newService(nil, dl, nil, settings.Defaults())
	tab := core.Tab{URL: "https://example.com/page", Title: "Page Title"}

	d, err := svc.CreateFromLink(context.Background(), CreateFromLink{
		LinkURL: "https://docs.example.com/guide",
		Text:    "Install Guide",
		Tab:     tab,
	})
	require.NoError(t, err)
	assert.Equal(t, "Install_Guide.url", d.Filename)
	assert.Equal(t, "https://docs.example.com/guide", dl.reqs[0].Source)

	d, err = svc.CreateFromLink(context.Background(), CreateFromLink{LinkURL: "https://docs.example.com/guide"})
	require.NoError(t, err)
	assert.Equal(t, "httpsdocs.example.comguide.url", d.Filename)

	d, err = svc.CreateFromLink(context.Background(), CreateFromLink{Tab: tab})
	require.NoError(t, err)
	assert.Equal(t, "Page_Title.url", d.Filename)
	assert.Equal(t, "https://example.com/page", dl.reqs[2].Source)

	_, err = svc.CreateFromLink(context.Background(), CreateFromLink{})
	assert.ErrorIs(t, err, ErrNoTarget)
}

func TestSettingsRequests(t *testing.T) {
	svc := newService(nil, &capturingDownloader{}, nil, settings.Defaults())

	res, err := svc.Handle(context.Background(), LoadSettings{})
	require.NoError(t, err)
	assert.Equal(t, settings.Defaults(), res.(*SettingsResult).Settings)

	next := settings.Defaults()
	next.MaxKeywords = 3
	_, err = svc.Handle(context.Background(), SaveSettings{Settings: next})
	require.NoError(t, err)
	assert.Equal(t, 3, svc.Settings().MaxKeywords)

	res, err = svc.Handle(context.Background(), LoadSettings{})
	require.NoError(t, err)
	assert.Equal(t, next, res.(*SettingsResult).Settings)
}

func TestHandle_Unknown(t *testing.T) {
	svc := newService(nil, &capturingDownloader{}, nil, settings.Defaults())
	_, err := svc.Handle(context.Background(), nil)
	assert.ErrorIs(t, err, ErrUnknownRequest)
}
