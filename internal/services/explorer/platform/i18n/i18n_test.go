package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResolveTagDefaultsToEnglish(t *testing.T) {
	t.Parallel()

	tag, persist := ResolveTag(httptest.NewRequest(http.MethodGet, "/explorer", nil))
	if tag.String() != "en-US" || persist {
		t.Fatalf("ResolveTag() = %q, %v", tag, persist)
	}
}

func TestResolveTagPrecedence(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/explorer?lang=pt-BR", nil)
	req.AddCookie(&http.Cookie{Name: LangCookieName, Value: "en-US"})
	req.Header.Set("Accept-Language", "en-US")
	tag, persist := ResolveTag(req)
	if tag.String() != "pt-BR" || !persist {
		t.Fatalf("query param: ResolveTag() = %q, %v", tag, persist)
	}

	req = httptest.NewRequest(http.MethodGet, "/explorer", nil)
	req.AddCookie(&http.Cookie{Name: LangCookieName, Value: "pt-BR"})
	req.Header.Set("Accept-Language", "en-US")
	tag, persist = ResolveTag(req)
	if tag.String() != "pt-BR" || persist {
		t.Fatalf("cookie: ResolveTag() = %q, %v", tag, persist)
	}

	req = httptest.NewRequest(http.MethodGet, "/explorer", nil)
	req.Header.Set("Accept-Language", "pt-BR,pt;q=0.9,en;q=0.5")
	tag, _ = ResolveTag(req)
	if tag.String() != "pt-BR" {
		t.Fatalf("accept-language: ResolveTag() = %q", tag)
	}
}

func TestResolveLocalizerPersistsExplicitChoice(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	printer, locale := ResolveLocalizer(rr, httptest.NewRequest(http.MethodGet, "/explorer?lang=pt-BR", nil))
	if locale != "pt-BR" {
		t.Fatalf("locale = %q, want pt-BR", locale)
	}
	if got := printer.Sprintf("explorer.save"); got != "Salvar" {
		t.Fatalf("printer.Sprintf() = %q, want Salvar", got)
	}
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != LangCookieName || cookies[0].Value != "pt-BR" {
		t.Fatalf("cookies = %+v", cookies)
	}
}
