// Copyright (c) 2026 cfgscrub Team
// cfgscrub - router configuration cleanup tool
// This source code is licensed under the MIT license found in the LICENSE file.

// package i18n provides internationalization and localization support for cfgscrub.
// It uses the go-i18n library to load the embedded translation files, allowing the
// command line and terminal interfaces to be displayed in multiple languages.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/cases"
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
	current   string
	locales   map[string]string
)

// Init initializes the i18n bundle and sets up the localizer for a specific language.
// Unknown languages fall back to English.
func Init(lang string) {
	mu.Lock()
	defer mu.Unlock()

	bundle = i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)
	locales = make(map[string]string)

	files, _ := fs.ReadDir(localeFS, "locales")
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile(path.Join("locales", f.Name()))
		if err != nil {
			continue
		}
		mf, err := bundle.ParseMessageFileBytes(data, f.Name())
		if err != nil {
			continue
		}
		tag := mf.Tag.String()
		locales[tag] = displayName(mf.Tag)
	}

	if _, ok := locales[lang]; !ok {
		lang = "en"
	}
	current = lang
	localizer = i18n.NewLocalizer(bundle, lang)
}

// displayName renders a language in its own script, e.g. "Русский".
func displayName(tag language.Tag) string {
	name := display.Self.Name(tag)
	if name == "" {
		return tag.String()
	}
	return cases.Title(tag).String(name)
}

// T translates a message by its ID. Extra args are applied with fmt.Sprintf
// to the translated text. If the ID is unknown, it returns the ID itself.
func T(messageID string, args ...any) string {
	mu.RLock()
	l := localizer
	mu.RUnlock()
	if l == nil {
		Init("en")
		mu.RLock()
		l = localizer
		mu.RUnlock()
	}
	msg, err := l.Localize(&i18n.LocalizeConfig{MessageID: messageID})
	if err != nil {
		// go-i18n errors on a missing ID; the ID is the fallback.
		return messageID
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

// SetLang changes the active language of the localizer.
func SetLang(lang string) {
	Init(lang)
}

// GetLang returns the active language code.
func GetLang() string {
	mu.RLock()
	defer mu.RUnlock()
	if current == "" {
		return "en"
	}
	return current
}

// GetAvailableLocales maps every embedded language code to its display name.
func GetAvailableLocales() map[string]string {
	mu.RLock()
	empty := locales == nil
	mu.RUnlock()
	if empty {
		Init("en")
	}
	mu.RLock()
	defer mu.RUnlock()
	out := make(map[string]string, len(locales))
	for k, v := range locales {
		out[k] = v
	}
	return out
}
