// Package shortcut encodes Windows Internet Shortcut (.url) files.
package shortcut

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
)

const (
	// Extension is the file extension Windows associates with shortcuts.
	Extension = ".url"
	// MediaType is the MIME type browsers use for .url downloads.
	MediaType = "application/x-mswinurl"

	section = "[InternetShortcut]"
)

// ErrNotShortcut is returned by Decode when no URL entry is present.
var ErrNotShortcut = errors.New("not an internet shortcut")

// Encode renders the shortcut payload for url. The URL is written verbatim;
// a malformed URL still yields a well-formed file.
func Encode(url string) []byte {
	return []byte(section + "\nURL=" + url + "\n")
}

// DataURI wraps payload in a base64 data URI of the given media type.
func DataURI(mediaType string, payload []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(payload)
}

// Decode returns the URL entry of an [InternetShortcut] section. Both LF and
// CRLF line endings are accepted.
func Decode(data []byte) (string, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	inSection := false
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		switch {
		case strings.HasPrefix(line, "["):
			inSection = line == section
		case inSection && strings.HasPrefix(line, "URL="):
			return strings.TrimPrefix(line, "URL="), nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", ErrNotShortcut
}
