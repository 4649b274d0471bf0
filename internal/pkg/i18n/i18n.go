// Package i18n holds the bot's texts for the three supported interface
// languages and formats them through x/text printers.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

type Key string

// Interface language codes as stored on the session.
const (
	UzLatin    = "uz"
	UzCyrillic = "uz_cyrl"
	Russian    = "ru"
)

var tags = map[string]language.Tag{
	UzLatin:    language.MustParse("uz-Latn"),
	UzCyrillic: language.MustParse("uz-Cyrl"),
	Russian:    language.Russian,
}

type Bundle struct {
	printers map[string]*message.Printer
	menu     map[string]Key
}

func New() *Bundle {
	b := catalog.NewBuilder(catalog.Fallback(tags[UzLatin]))
	for key, t := range texts {
		for i, code := range []string{UzLatin, UzCyrillic, Russian} {
			// SetString only fails on malformed tags, which are fixed above.
			_ = b.SetString(tags[code], string(key), t[i])
		}
	}

	out := &Bundle{
		printers: make(map[string]*message.Printer, len(tags)),
		menu:     make(map[string]Key),
	}
	for code, tag := range tags {
		out.printers[code] = message.NewPrinter(tag, message.Catalog(b))
	}
	for _, key := range menuKeys {
		for _, label := range texts[key] {
			out.menu[label] = key
		}
	}
	return out
}

func (b *Bundle) printer(lang string) *message.Printer {
	if p, ok := b.printers[lang]; ok {
		return p
	}
	return b.printers[UzLatin]
}

// Text renders key in lang; unknown or unset languages fall back to Uzbek (Latin).
func (b *Bundle) Text(lang string, key Key, args ...any) string {
	return b.printer(lang).Sprintf(string(key), args...)
}

// Admin renders operator-facing texts, which are kept in Uzbek (Latin).
func (b *Bundle) Admin(key Key, args ...any) string {
	return b.Text(UzLatin, key, args...)
}

// Amount formats a sum with the language's digit grouping.
func (b *Bundle) Amount(lang string, v int64) string {
	return b.printer(lang).Sprintf("%d", v)
}

// MenuAction maps a main-menu button label in any language to its key.
func (b *Bundle) MenuAction(label string) (Key, bool) {
	k, ok := b.menu[label]
	return k, ok
}

// MenuLabels returns the main menu rows for lang.
func (b *Bundle) MenuLabels(lang string) [][]string {
	return [][]string{
		{b.Text(lang, MenuShop), b.Text(lang, MenuProfile)},
		{b.Text(lang, MenuFeedback), b.Text(lang, MenuSurvey)},
		{b.Text(lang, MenuHelp)},
	}
}

// LanguageButtons are shown before a language is known, so they are not localized.
var LanguageButtons = map[string]string{
	"🇺🇿 O'zbek (lotin)": UzLatin,
	"🇺🇿 Ўзбек (кирил)":  UzCyrillic,
	"🇷🇺 Русский язык":   Russian,
}

func LanguageRows() [][]string {
	return [][]string{
		{"🇺🇿 O'zbek (lotin)", "🇺🇿 Ўзбек (кирил)"},
		{"🇷🇺 Русский язык"},
	}
}
