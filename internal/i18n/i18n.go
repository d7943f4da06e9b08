// Package i18n serves the static UI translation dictionaries. The
// dictionaries are compiled into the binary; adding a locale means adding a
// JSON file and an entry to the locale list.
package i18n

import (
	"embed"
	"encoding/json"
	"errors"

	"voyago/internal/schemas"
)

//go:embed locales/*.json
var localeFS embed.FS

// ErrUnknownLocale is returned for locales without a dictionary.
var ErrUnknownLocale = errors.New("unknown locale")

var supportedLocales = []schemas.LocaleDTO{
	{Code: "en", Name: "English", NativeName: "English"},
	{Code: "id", Name: "Indonesian", NativeName: "Bahasa Indonesia"},
}

// Locales lists the supported locales.
func Locales() []schemas.LocaleDTO {
	return supportedLocales
}

// Translations returns the raw dictionary for the locale.
func Translations(code string) (json.RawMessage, error) {
	for _, locale := range supportedLocales {
		if locale.Code == code {
			data, err := localeFS.ReadFile("locales/" + code + ".json")
			if err != nil {
				return nil, err
			}
			return data, nil
		}
	}
	return nil, ErrUnknownLocale
}
