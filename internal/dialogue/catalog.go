package dialogue

import (
	"embed"
	"fmt"

	"github.com/leonelquinteros/gotext"
)

//go:embed locales/*.po
var locales embed.FS

// DefaultLocale is used when no locale is configured.
const DefaultLocale = "en"

// Subtitle keys shipped in the embedded catalogs.
const (
	KeyGreeting = "LINE_GREETING"
	KeyProd     = "LINE_PROD"
	KeyPickup   = "LINE_PICKUP"
)

// Catalog translates subtitle keys for one locale.
type Catalog struct {
	locale string
	lines  map[string]string
}

// NewCatalog loads the embedded catalog for locale.
func NewCatalog(locale string) (*Catalog, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	buf, err := locales.ReadFile("locales/" + locale + ".po")
	if err != nil {
		return nil, fmt.Errorf("loading subtitles for locale %q: %w", locale, err)
	}
	po := gotext.NewPo()
	po.Parse(buf)

	// Keys and translations are plain text, never format strings.
	trs := po.GetDomain().GetTranslations()
	lines := make(map[string]string, len(trs))
	for id, tr := range trs {
		if id == "" {
			continue
		}
		lines[id] = tr.Get()
	}
	return &Catalog{locale: locale, lines: lines}, nil
}

// Locale returns the catalog locale.
func (c *Catalog) Locale() string { return c.locale }

// Get returns the translation for key, or key itself when missing.
func (c *Catalog) Get(key string) string {
	if c == nil {
		return key
	}
	if line, ok := c.lines[key]; ok {
		return line
	}
	return key
}
