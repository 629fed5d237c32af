// Package catalog loads the explorer message catalogs and registers them with
// x/text/message.
//
// Catalogs live under locales/<locale>/<namespace>.yaml. Each namespace owns a
// set of key prefixes so a key can only ever be defined in one file.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the source locale every other catalog translates.
const BaseLocale = "en-US"

// Namespaces and the key prefixes each one owns. The errors namespace is
// keyed by error code.
const (
	NamespaceCore     = "core"
	NamespaceExplorer = "explorer"
	NamespaceErrors   = "errors"
)

var namespacePrefixes = map[string][]string{
	NamespaceCore:     {"core."},
	NamespaceExplorer: {"explorer.", "validation."},
	NamespaceErrors:   nil,
}

type catalogFile struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

// Bundle holds every loaded message, by locale then namespace.
type Bundle struct {
	locales map[string]map[string]map[string]string
}

//go:embed locales/*/*.yaml
var embedded embed.FS

var defaultBundle = mustLoadEmbedded()

// Default returns the embedded bundle. It is registered with x/text/message
// at init.
func Default() *Bundle {
	return defaultBundle
}

// LoadEmbedded loads the catalogs compiled into the binary.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embedded)
}

// LoadFromFS loads catalogs from fsys. The base locale must be present.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	b := &Bundle{locales: map[string]map[string]map[string]string{}}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("decode catalog %s: %w", p, err)
		}
		if err := b.add(p, file); err != nil {
			return nil, err
		}
	}
	if _, ok := b.locales[BaseLocale]; !ok {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}
	return b, nil
}

func (b *Bundle) add(p string, file catalogFile) error {
	dirLocale := path.Base(path.Dir(p))
	fileNamespace := strings.TrimSuffix(path.Base(p), path.Ext(p))

	locale := strings.TrimSpace(file.Locale)
	if locale != dirLocale {
		return fmt.Errorf("catalog %s: locale %q must match directory %q", p, locale, dirLocale)
	}
	namespace := strings.TrimSpace(file.Namespace)
	if namespace != fileNamespace {
		return fmt.Errorf("catalog %s: namespace %q must match file name %q", p, namespace, fileNamespace)
	}
	prefixes, known := namespacePrefixes[namespace]
	if !known {
		return fmt.Errorf("catalog %s: unknown namespace %q", p, namespace)
	}
	if len(file.Messages) == 0 {
		return fmt.Errorf("catalog %s: messages are required", p)
	}

	namespaces, ok := b.locales[locale]
	if !ok {
		namespaces = map[string]map[string]string{}
		b.locales[locale] = namespaces
	}
	if _, exists := namespaces[namespace]; exists {
		return fmt.Errorf("catalog %s: namespace %q defined twice for %s", p, namespace, locale)
	}

	messages := make(map[string]string, len(file.Messages))
	for key, value := range file.Messages {
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("catalog %s: blank message key", p)
		}
		if owner := ownerOf(key); owner != "" && owner != namespace {
			return fmt.Errorf("catalog %s: key %q belongs to namespace %q", p, key, owner)
		}
		if len(prefixes) > 0 && ownerOf(key) != namespace {
			return fmt.Errorf("catalog %s: key %q does not match namespace %q", p, key, namespace)
		}
		messages[key] = value
	}
	namespaces[namespace] = messages
	return nil
}

// ownerOf returns the namespace whose prefixes claim key, or "".
func ownerOf(key string) string {
	for namespace, prefixes := range namespacePrefixes {
		for _, prefix := range prefixes {
			if strings.HasPrefix(key, prefix) {
				return namespace
			}
		}
	}
	return ""
}

// Register installs every message with x/text/message under the locale tag
// and its base language, so "pt" resolves to the pt-BR strings.
func (b *Bundle) Register() error {
	for _, locale := range b.Locales() {
		tag, err := language.Parse(locale)
		if err != nil {
			return fmt.Errorf("parse locale tag %q: %w", locale, err)
		}
		tags := []language.Tag{tag}
		if base, confidence := tag.Base(); confidence != language.No {
			if baseTag := language.Make(base.String()); baseTag != tag {
				tags = append(tags, baseTag)
			}
		}
		for _, messages := range b.locales[locale] {
			for key, value := range messages {
				for _, t := range tags {
					if err := message.SetString(t, key, value); err != nil {
						return fmt.Errorf("register %s %q: %w", locale, key, err)
					}
				}
			}
		}
	}
	return nil
}

// Locales returns the loaded locales in sorted order.
func (b *Bundle) Locales() []string {
	if b == nil {
		return nil
	}
	out := make([]string, 0, len(b.locales))
	for locale := range b.locales {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Message looks key up in locale, falling back to the base locale.
func (b *Bundle) Message(locale, key string) (string, bool) {
	if b == nil {
		return "", false
	}
	for _, candidate := range []string{strings.TrimSpace(locale), BaseLocale} {
		for _, messages := range b.locales[candidate] {
			if value, ok := messages[key]; ok {
				return value, true
			}
		}
	}
	return "", false
}

// Namespace returns a copy of one namespace for locale and the locale that
// supplied it. Unknown locales resolve to the base locale.
func (b *Bundle) Namespace(locale, namespace string) (string, map[string]string) {
	if b == nil {
		return BaseLocale, map[string]string{}
	}
	locale = strings.TrimSpace(locale)
	messages, ok := b.locales[locale][namespace]
	if !ok {
		locale = BaseLocale
		messages = b.locales[BaseLocale][namespace]
	}
	out := make(map[string]string, len(messages))
	for key, value := range messages {
		out[key] = value
	}
	return locale, out
}

// Missing lists base locale keys that locale does not translate, sorted.
func (b *Bundle) Missing(locale string) []string {
	if b == nil {
		return nil
	}
	var missing []string
	for namespace, messages := range b.locales[BaseLocale] {
		translated := b.locales[locale][namespace]
		for key := range messages {
			if _, ok := translated[key]; !ok {
				missing = append(missing, key)
			}
		}
	}
	sort.Strings(missing)
	return missing
}

func mustLoadEmbedded() *Bundle {
	b, err := LoadEmbedded()
	if err != nil {
		panic(err)
	}
	if err := b.Register(); err != nil {
		panic(err)
	}
	return b
}
