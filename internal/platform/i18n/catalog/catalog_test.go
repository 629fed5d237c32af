package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func TestLoadEmbeddedHasExpectedLocales(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	got := strings.Join(bundle.Locales(), ",")
	if got != "en-US,pt-BR" {
		t.Fatalf("Locales() = %q, want %q", got, "en-US,pt-BR")
	}
	for _, namespace := range []string{NamespaceCore, NamespaceExplorer, NamespaceErrors} {
		if _, messages := bundle.Namespace(BaseLocale, namespace); len(messages) == 0 {
			t.Fatalf("expected %s messages in %s", namespace, BaseLocale)
		}
	}
}

func TestEveryBaseKeyIsTranslated(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	if missing := bundle.Missing("pt-BR"); len(missing) > 0 {
		t.Fatalf("pt-BR catalog missing keys: %v", missing)
	}
}

func TestLoadFromFSValidation(t *testing.T) {
	base := `locale: "en-US"
namespace: "core"
messages:
  "core.app_name": "Explorer"
`
	tests := []struct {
		name  string
		files map[string]string
	}{
		{
			name:  "malformed yaml",
			files: map[string]string{"locales/en-US/core.yaml": "locale: [unterminated\n"},
		},
		{
			name: "locale mismatch",
			files: map[string]string{"locales/en-US/core.yaml": `locale: "pt-BR"
namespace: "core"
messages:
  "core.app_name": "Explorer"
`},
		},
		{
			name: "namespace mismatch",
			files: map[string]string{"locales/en-US/core.yaml": `locale: "en-US"
namespace: "explorer"
messages:
  "explorer.title": "Query Explorer"
`},
		},
		{
			name: "unknown namespace",
			files: map[string]string{
				"locales/en-US/core.yaml": base,
				"locales/en-US/web.yaml": `locale: "en-US"
namespace: "web"
messages:
  "web.title": "nope"
`,
			},
		},
		{
			name: "key owned by another namespace",
			files: map[string]string{
				"locales/en-US/core.yaml": base,
				"locales/en-US/errors.yaml": `locale: "en-US"
namespace: "errors"
messages:
  "explorer.title": "nope"
`,
			},
		},
		{
			name: "key outside namespace prefixes",
			files: map[string]string{"locales/en-US/core.yaml": `locale: "en-US"
namespace: "core"
messages:
  "app_name": "Explorer"
`},
		},
		{
			name: "empty messages",
			files: map[string]string{"locales/en-US/core.yaml": `locale: "en-US"
namespace: "core"
messages: {}
`},
		},
		{
			name: "missing base locale",
			files: map[string]string{"locales/pt-BR/core.yaml": `locale: "pt-BR"
namespace: "core"
messages:
  "core.app_name": "Explorador"
`},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range tc.files {
				mustWriteFile(t, filepath.Join(dir, name), content)
			}
			if _, err := LoadFromFS(os.DirFS(dir)); err == nil {
				t.Fatal("expected load error")
			}
		})
	}
}

func TestMessageFallsBackToBaseLocale(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	got, ok := bundle.Message("fr-FR", "explorer.run.default.inactive")
	if !ok || got != "Run Query" {
		t.Fatalf("Message() = %q, %v; want %q, true", got, ok, "Run Query")
	}
	if _, ok := bundle.Message("pt-BR", "explorer.unknown"); ok {
		t.Fatal("expected unknown key to miss")
	}
}

func TestNamespaceFallsBackToBaseLocale(t *testing.T) {
	resolved, messages := Default().Namespace("fr-FR", NamespaceErrors)
	if resolved != BaseLocale {
		t.Fatalf("resolved locale = %q, want %q", resolved, BaseLocale)
	}
	if messages["DISPATCH_FAILED"] == "" {
		t.Fatal("expected fallback errors messages")
	}
}

func TestRegisterCoversBaseLanguage(t *testing.T) {
	p := message.NewPrinter(language.Make("pt"))
	if got := p.Sprintf("explorer.save"); got != "Salvar" {
		t.Fatalf("Sprintf(explorer.save) = %q, want %q", got, "Salvar")
	}
}

func mustWriteFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
