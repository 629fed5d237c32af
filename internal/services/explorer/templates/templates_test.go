package templates

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/louisbranch/explorer/internal/explorer/actions"
	"github.com/louisbranch/explorer/internal/explorer/query"
	"github.com/louisbranch/explorer/internal/explorer/validation"
)

func render(t *testing.T, render func(*strings.Builder) error) string {
	t.Helper()
	var b strings.Builder
	if err := render(&b); err != nil {
		t.Fatalf("render: %v", err)
	}
	return b.String()
}

func TestPanelRendersFailuresAndBar(t *testing.T) {
	t.Parallel()

	m := query.Model{Saving: true}
	panel := Panel{
		Bar:              actions.Build(actions.Props{Model: m, Persistence: true}),
		Failures:         validation.Check(m).Failures(),
		Status:           "Fix it",
		StatusKind:       StatusError,
		CodeSampleHidden: true,
	}
	got := render(t, func(b *strings.Builder) error {
		return PanelComponent(panel, nil).Render(context.Background(), b)
	})
	for _, marker := range []string{
		`id="explorer-panel"`,
		`name="code_sample_hidden" value="true"`,
		`<p class="status status-error" role="status">Fix it</p>`,
		`<li data-field="event_collection">Choose an Event Collection.</li>`,
		`<li data-field="query_name">You must give your saved query a name.</li>`,
		`role="run-query"`,
	} {
		if !strings.Contains(got, marker) {
			t.Fatalf("panel missing %q: %s", marker, got)
		}
	}
	if strings.Contains(got, `class="code-sample"`) {
		t.Fatalf("hidden code sample rendered: %s", got)
	}
}

func TestPanelRendersCodeSampleWhenShown(t *testing.T) {
	t.Parallel()

	got := render(t, func(b *strings.Builder) error {
		return PanelComponent(Panel{CodeSample: `{"a":"<b>"}`}, nil).Render(context.Background(), b)
	})
	if !strings.Contains(got, `<pre class="code-sample"><code>{&#34;a&#34;:&#34;&lt;b&gt;&#34;}</code></pre>`) {
		t.Fatalf("expected escaped code sample: %s", got)
	}
}

func TestPageFormRoundTripsFilterFields(t *testing.T) {
	t.Parallel()

	email := "keen@example.com"
	m := query.Model{
		ID: "q_1",
		Query: &query.Query{
			EventCollection: "clicks",
			AnalysisType:    query.AnalysisExtraction,
			Email:           &email,
			Latest:          "10",
			Filters:         []query.Filter{{PropertyName: "price", Operator: "", CoercionType: "Number", PropertyValue: "1"}},
		},
	}
	got := render(t, func(b *strings.Builder) error {
		return Page(PageData{Lang: "en-US", Title: "Query Explorer", Model: m}, nil).Render(context.Background(), b)
	})
	for _, marker := range []string{
		`<html lang="en-US">`,
		`<title>Query Explorer</title>`,
		`<input type="hidden" name="id" value="q_1">`,
		`<option value="extraction" selected>extraction</option>`,
		`<option value="true" selected>Email results</option>`,
		`<input type="email" name="email" value="keen@example.com">`,
		`<input type="text" name="latest" value="10">`,
		`<input type="hidden" name="filter_operator" value="">`,
		`hx-post="/explorer/validate"`,
		`<a href="/explorer?lang=en-US" hreflang="en-US" aria-current="true">English</a>`,
	} {
		if !strings.Contains(got, marker) {
			t.Fatalf("page missing %q: %s", marker, got)
		}
	}
	if !strings.HasSuffix(got, `</main></body></html>`) {
		t.Fatalf("unexpected page tail: %s", got[len(got)-40:])
	}
	if _, err := url.ParseQuery(query.EncodeForm(m).Encode()); err != nil {
		t.Fatalf("encode form: %v", err)
	}
}

func TestFragmentSwapsExtractionOptionsOutOfBand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		model   query.Model
		want    string
		notWant string
	}{
		{
			name:  "immediate extraction",
			model: query.Model{Query: &query.Query{AnalysisType: query.AnalysisExtraction, Latest: "5"}},
			want:  `<input type="text" name="latest" value="5">`,
		},
		{
			name:    "count",
			model:   query.Model{Query: &query.Query{AnalysisType: query.AnalysisCount}},
			want:    `<div id="extraction-options" class="extraction-options" hx-swap-oob="true"></div>`,
			notWant: `name="email_delivery"`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := render(t, func(b *strings.Builder) error {
				return Fragment(Panel{CodeSampleHidden: true}, tc.model, nil).Render(context.Background(), b)
			})
			if !strings.HasPrefix(got, `<div id="explorer-panel" class="explorer-panel">`) {
				t.Fatalf("expected panel first: %s", got)
			}
			if !strings.Contains(got, `hx-swap-oob="true"`) {
				t.Fatalf("expected out-of-band options: %s", got)
			}
			if !strings.Contains(got, tc.want) {
				t.Fatalf("fragment missing %q: %s", tc.want, got)
			}
			if tc.notWant != "" && strings.Contains(got, tc.notWant) {
				t.Fatalf("fragment should not contain %q: %s", tc.notWant, got)
			}
		})
	}
}

func TestPageDoesNotMarkOptionsOutOfBand(t *testing.T) {
	t.Parallel()

	m := query.Model{Query: &query.Query{AnalysisType: query.AnalysisExtraction}}
	got := render(t, func(b *strings.Builder) error {
		return Page(PageData{Lang: "pt-BR", Model: m}, nil).Render(context.Background(), b)
	})
	if strings.Contains(got, `hx-swap-oob`) {
		t.Fatalf("page must not carry out-of-band markers: %s", got)
	}
	if !strings.Contains(got, `<option value="false" selected>Show results now</option>`) {
		t.Fatalf("expected immediate delivery selected: %s", got)
	}
	if !strings.Contains(got, `<a href="/explorer?lang=pt-BR" hreflang="pt-BR" aria-current="true">`) {
		t.Fatalf("expected current language marked: %s", got)
	}
}
