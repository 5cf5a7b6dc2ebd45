// Package output saves rendered artifacts into the download folder.
// Artifacts arrive as data URIs, the same shape a browser download takes,
// and every saved file is recorded in the download history.
package output

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/gaurav-prasanna/smarturl/core/store"
)

// ErrInvalidFilename is returned for names that are empty or would leave
// the target folder.
var ErrInvalidFilename = errors.New("invalid download filename")

// DownloadRequest is one file to save.
type DownloadRequest struct {
	// URL is a data URI holding the file contents.
	URL string
	// Filename is the base name including its extension.
	Filename string
	// Folder is an optional sub-folder of the download directory. An
	// absolute folder is used as is.
	Folder string
	// Source is the page the artifact points at, kept in history.
	Source string
}

// Downloader saves a file and returns its download id.
type Downloader interface {
	Download(ctx context.Context, req DownloadRequest) (int64, error)
}

// History records completed downloads.
type History interface {
	RecordDownload(ctx context.Context, rec store.DownloadRecord) (int64, error)
}

// FileDownloader writes downloads to disk.
type FileDownloader struct {
	Dir     string
	History History

	seq atomic.Int64
}

// New creates a FileDownloader rooted at dir, defaulting to the working
// directory. history may be nil.
func New(dir string, history History) (*FileDownloader, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		dir = wd
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating download directory: %w", err)
	}
	return &FileDownloader{Dir: dir, History: history}, nil
}

// Download decodes req.URL and writes it to the target folder. An existing
// file is never overwritten; a " (n)" suffix is added instead.
func (d *FileDownloader) Download(ctx context.Context, req DownloadRequest) (int64, error) {
	name := strings.TrimSpace(req.Filename)
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFilename, req.Filename)
	}

	data, err := DecodeDataURI(req.URL)
	if err != nil {
		return 0, err
	}

	dir := d.Dir
	if req.Folder != "" {
		if filepath.IsAbs(req.Folder) {
			dir = req.Folder
		} else {
			dir = filepath.Join(d.Dir, req.Folder)
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("creating folder %s: %w", dir, err)
	}

	path, err := writeUnique(dir, name, data)
	if err != nil {
		return 0, err
	}
	log.Debug().Str("path", path).Int("bytes", len(data)).Msg("saved download")

	if d.History == nil {
		return d.seq.Add(1), nil
	}
	id, err := d.History.RecordDownload(ctx, store.DownloadRecord{
		Filename: filepath.Base(path),
		Path:     path,
		URL:      req.Source,
	})
	if err != nil {
		// The file is on disk; a missing history row is not a failed download.
		log.Warn().Err(err).Str("path", path).Msg("could not record download")
		return d.seq.Add(1), nil
	}
	return id, nil
}

func writeUnique(dir, name string, data []byte) (string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for n := 0; ; n++ {
		candidate := name
		if n > 0 {
			candidate = fmt.Sprintf("%s (%d)%s", stem, n, ext)
		}
		path := filepath.Join(dir, candidate)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("creating %s: %w", path, err)
		}
		if _, err := f.Write(data); err != nil {
			f.Close()
			return "", fmt.Errorf("writing %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("closing %s: %w", path, err)
		}
		return path, nil
	}
}

// DecodeDataURI returns the payload of a data: URI. Both base64 and
// percent-encoded payloads are accepted.
func DecodeDataURI(uri string) ([]byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, fmt.Errorf("not a data URI: %.20q", uri)
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, errors.New("data URI has no payload separator")
	}

	if strings.HasSuffix(meta, ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("decoding base64 payload: %w", err)
		}
		return data, nil
	}
	text, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("decoding payload: %w", err)
	}
	return []byte(text), nil
}
