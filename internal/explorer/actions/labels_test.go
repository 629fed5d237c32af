package actions

import (
	"testing"

	"github.com/louisbranch/explorer/internal/explorer/query"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	_ "github.com/louisbranch/explorer/internal/platform/i18n/catalog"
)

func strPtr(s string) *string { return &s }

func TestRunButtonText(t *testing.T) {
	t.Parallel()

	countQuery := &query.Query{AnalysisType: query.AnalysisCount}
	immediate := &query.Query{AnalysisType: query.AnalysisExtraction}
	email := &query.Query{AnalysisType: query.AnalysisExtraction, Email: strPtr("keen@example.com")}

	tests := []struct {
		name  string
		model query.Model
		want  string
	}{
		{name: "default idle", model: query.Model{Query: countQuery}, want: "Run Query"},
		{name: "default loading", model: query.Model{Query: countQuery, Loading: true}, want: "Running..."},
		{name: "no query idle", model: query.Model{}, want: "Run Query"},
		{name: "immediate idle", model: query.Model{Query: immediate}, want: "Run Extraction"},
		{name: "immediate loading", model: query.Model{Query: immediate, Loading: true}, want: "Running..."},
		{name: "email idle", model: query.Model{Query: email}, want: "Send Email Extraction"},
		{name: "email loading", model: query.Model{Query: email, Loading: true}, want: "Sending..."},
		{name: "email ignores persistence flags", model: query.Model{Query: email, ID: "q_1", Saving: true}, want: "Send Email Extraction"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := RunButtonText(tc.model); got != tc.want {
				t.Fatalf("RunButtonText() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRunLabelPrecedence(t *testing.T) {
	t.Parallel()

	if len(runLabelRules) != 2 {
		t.Fatalf("expected two ordered label rules, got %d", len(runLabelRules))
	}
	if runLabelRules[0].group.Name != EmailExtractionLabels.Name {
		t.Fatalf("first rule = %q, want email extraction", runLabelRules[0].group.Name)
	}
	if runLabelRules[1].group.Name != ImmediateExtractionLabels.Name {
		t.Fatalf("second rule = %q, want immediate extraction", runLabelRules[1].group.Name)
	}
	if got := RunLabels(query.Model{Query: &query.Query{AnalysisType: query.AnalysisFunnel}}); got.Name != DefaultLabels.Name {
		t.Fatalf("funnel label group = %q, want default", got.Name)
	}
}

func TestLabelTextLocalizes(t *testing.T) {
	t.Parallel()

	pt := message.NewPrinter(language.MustParse("pt-BR"))
	if got := DefaultLabels.Inactive.Text(pt); got != "Executar Consulta" {
		t.Fatalf("pt-BR label = %q", got)
	}
	en := message.NewPrinter(language.MustParse("en-US"))
	if got := EmbedLabel.Text(en); got != "</> Embed" {
		t.Fatalf("en-US embed label = %q", got)
	}
}

func TestLabelTextFallsBackToDefault(t *testing.T) {
	t.Parallel()

	unknown := Label{Key: "explorer.not_a_key", Default: "Fallback"}
	if got := unknown.Text(message.NewPrinter(language.English)); got != "Fallback" {
		t.Fatalf("unknown key label = %q, want Fallback", got)
	}
	if got := SaveLabel.Text(nil); got != "Save" {
		t.Fatalf("nil localizer label = %q, want Save", got)
	}
}
