// Package settings holds the user preferences and their defaults. They are
// loaded once per command and passed by value to the code that needs them.
package settings

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/gaurav-prasanna/smarturl/core/store"
)

// Key is the store key the settings document lives under.
const Key = "userSettings"

// Settings are the user-facing preferences.
type Settings struct {
	DownloadFolder    string `json:"downloadFolder" yaml:"downloadFolder"`
	FilenameTemplate  string `json:"filenameTemplate" yaml:"filenameTemplate"`
	MaxKeywords       int    `json:"maxKeywords" yaml:"maxKeywords"`
	AnalysisMode      string `json:"analysisMode" yaml:"analysisMode"`
	AutoDownload      bool   `json:"autoDownload" yaml:"autoDownload"`
	ShowNotifications bool   `json:"showNotifications" yaml:"showNotifications"`
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		DownloadFolder:    "",
		FilenameTemplate:  "{keywords}",
		MaxKeywords:       5,
		AnalysisMode:      "simple",
		AutoDownload:      false,
		ShowNotifications: true,
	}
}

// Load reads the settings from kv. A missing document, an unreadable store
// or a corrupt value all yield Defaults; the last two are logged.
func Load(ctx context.Context, kv store.KV) Settings {
	if kv == nil {
		return Defaults()
	}

	raw, found, err := kv.Get(ctx, Key)
	if err != nil {
		log.Error().Err(err).Msg("settings store unavailable; using defaults")
		return Defaults()
	}
	if !found {
		return Defaults()
	}

	s := Defaults()
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		log.Error().Err(err).Msg("stored settings are corrupt; using defaults")
		return Defaults()
	}
	return s
}

// Save writes s to kv.
func Save(ctx context.Context, kv store.KV, s Settings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := kv.Set(ctx, Key, string(data)); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}

// EnsureDefaults stores Defaults when no settings exist yet. Store errors
// are logged and otherwise ignored.
func EnsureDefaults(ctx context.Context, kv store.KV) {
	if _, found, err := kv.Get(ctx, Key); err != nil || found {
		if err != nil {
			log.Error().Err(err).Msg("checking default settings")
		}
		return
	}
	if err := Save(ctx, kv, Defaults()); err != nil {
		log.Error().Err(err).Msg("storing default settings")
	}
}

// Set updates a single field addressed by its JSON name, e.g. "maxKeywords".
func (s *Settings) Set(field, value string) error {
	doc, err := json.Marshal(s)
	if err != nil {
		return err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(doc, &fields); err != nil {
		return err
	}
	current, ok := fields[field]
	if !ok {
		return fmt.Errorf("unknown setting %q", field)
	}

	// Strings are quoted; numbers and booleans are taken literally.
	encoded := json.RawMessage(value)
	if len(current) > 0 && current[0] == '"' {
		quoted, err := json.Marshal(value)
		if err != nil {
			return err
		}
		encoded = quoted
	}
	fields[field] = encoded

	merged, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", field, err)
	}
	next := *s
	if err := json.Unmarshal(merged, &next); err != nil {
		return fmt.Errorf("invalid value for %s: %w", field, err)
	}
	*s = next
	return nil
}
