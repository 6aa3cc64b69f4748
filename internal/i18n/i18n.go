// Copyright (c) 2026 Keymaster Team
// Credstore - API credential store
// This source code is licensed under the MIT license found in the LICENSE file.

// Package i18n provides localized user-facing messages for credstore.
// It uses the go-i18n library to load translation files embedded in the
// binary, so CLI output can be shown in several languages.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/toeirei/credstore/internal/logging"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"gopkg.in/yaml.v3"
)

// localeFS embeds the YAML translation files from the 'locales' directory
// into the application binary.
//
//go:embed locales/*.yaml
var localeFS embed.FS

var (
	mu        sync.RWMutex
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
)

// Init loads every embedded locale and selects lang. Unknown languages fall
// back to English.
func Init(lang string) {
	b := i18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)
	loadMessageFiles(b, localeFS, "locales")

	mu.Lock()
	defer mu.Unlock()
	bundle = b
	localizer = i18n.NewLocalizer(b, lang)
}

// loadMessageFiles parses every file in dir into b. Broken files are logged
// and skipped; their messages fall back to the default language.
func loadMessageFiles(b *i18n.Bundle, fsys fs.FS, dir string) {
	files, err := fs.ReadDir(fsys, dir)
	if err != nil {
		logging.Errorf("reading locale directory %s: %v", dir, err)
		return
	}
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		name := path.Join(dir, f.Name())
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			logging.Errorf("reading locale file %s: %v", name, err)
			continue
		}
		if _, err := b.ParseMessageFileBytes(data, f.Name()); err != nil {
			logging.Errorf("parsing locale file %s: %v", name, err)
		}
	}
}

// GetAvailableLocales maps each bundled language tag to its name in that language.
func GetAvailableLocales() map[string]string {
	if current() == nil {
		Init("en")
	}
	mu.RLock()
	defer mu.RUnlock()

	out := map[string]string{}
	for _, tag := range bundle.LanguageTags() {
		name := display.Self.Name(tag)
		if name == "" {
			name = tag.String()
		}
		out[tag.String()] = name
	}
	return out
}

// T translates messageID. Extra args are applied fmt-style to the
// translated text. Unknown IDs are returned unchanged.
func T(messageID string, args ...any) string {
	loc := current()
	if loc == nil {
		Init("en")
		loc = current()
	}
	// A fallback to the default language still returns text alongside an error.
	msg, _ := loc.Localize(&i18n.LocalizeConfig{MessageID: messageID})
	if msg == "" {
		return messageID
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

func current() *i18n.Localizer {
	mu.RLock()
	defer mu.RUnlock()
	return localizer
}
