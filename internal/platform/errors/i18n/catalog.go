// Package i18n renders localized user-facing messages for error codes.
package i18n

import (
	"bytes"
	"strings"
	"sync"
	"text/template"

	i18ncatalog "github.com/louisbranch/explorer/internal/platform/i18n/catalog"
)

// Code is an error code string. The errors package owns the typed codes and
// imports this package, so the alias avoids a cycle.
type Code = string

// Catalog renders the messages of one locale. Message templates receive the
// error metadata map.
type Catalog struct {
	locale    string
	raw       map[Code]string
	templates map[Code]*template.Template
}

var (
	catalogsMu sync.RWMutex
	catalogs   = map[string]*Catalog{}
)

// GetCatalog returns the catalog for locale, built from the errors namespace
// of the embedded bundle. Unknown locales get the base locale catalog.
func GetCatalog(locale string) *Catalog {
	requested := strings.TrimSpace(locale)
	if requested == "" {
		requested = i18ncatalog.BaseLocale
	}
	catalogsMu.RLock()
	cat, ok := catalogs[requested]
	catalogsMu.RUnlock()
	if ok {
		return cat
	}

	resolved, messages := i18ncatalog.Default().Namespace(requested, i18ncatalog.NamespaceErrors)

	catalogsMu.Lock()
	defer catalogsMu.Unlock()
	if existing, ok := catalogs[resolved]; ok {
		return existing
	}
	cat = NewCatalog(resolved, messages)
	catalogs[resolved] = cat
	return cat
}

// RegisterCatalog installs cat for locale, replacing any cached catalog.
func RegisterCatalog(locale string, cat *Catalog) {
	catalogsMu.Lock()
	defer catalogsMu.Unlock()
	catalogs[locale] = cat
}

// NewCatalog parses messages once. A message that is not a valid template is
// kept and returned verbatim.
func NewCatalog(locale string, messages map[Code]string) *Catalog {
	cat := &Catalog{
		locale:    locale,
		raw:       make(map[Code]string, len(messages)),
		templates: make(map[Code]*template.Template, len(messages)),
	}
	for code, text := range messages {
		cat.raw[code] = text
		tmpl, err := template.New(code).Option("missingkey=zero").Parse(text)
		if err != nil {
			continue
		}
		cat.templates[code] = tmpl
	}
	return cat
}

// Locale returns the locale of this catalog.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message for code with metadata. Unknown codes render as
// the code itself.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	text, ok := c.raw[code]
	if !ok {
		return code
	}
	tmpl, ok := c.templates[code]
	if !ok {
		return text
	}
	if metadata == nil {
		metadata = map[string]string{}
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, metadata); err != nil {
		return text
	}
	return buf.String()
}
