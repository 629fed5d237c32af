package actions

import (
	"testing"

	"github.com/louisbranch/explorer/internal/explorer/query"
)

var allHandlers = Handlers{
	HandleQuerySubmit: "/explorer/run",
	SaveQueryClick:    "/explorer/save",
	RemoveClick:       "/explorer/delete",
	ToggleCodeSample:  "/explorer/code-sample",
}

func TestBuildSaveAndDeleteVisibility(t *testing.T) {
	t.Parallel()

	count := &query.Query{AnalysisType: query.AnalysisCount}
	funnel := &query.Query{AnalysisType: query.AnalysisFunnel}
	email := &query.Query{AnalysisType: query.AnalysisExtraction, Email: strPtr("keen@example.com")}
	immediate := &query.Query{AnalysisType: query.AnalysisExtraction}

	noRemove := allHandlers
	noRemove.RemoveClick = ""

	tests := []struct {
		name       string
		props      Props
		wantSave   bool
		wantDelete bool
	}{
		{name: "persistence off", props: Props{Model: query.Model{Query: count, ID: "q_1"}, Handlers: allHandlers}},
		{name: "new count query", props: Props{Model: query.Model{Query: count}, Persistence: true, Handlers: allHandlers}, wantSave: true},
		{name: "persisted count query", props: Props{Model: query.Model{Query: count, ID: "q_1"}, Persistence: true, Handlers: allHandlers}, wantSave: true, wantDelete: true},
		{name: "temporary id", props: Props{Model: query.Model{Query: count, ID: "TEMP-1"}, Persistence: true, Handlers: allHandlers}, wantSave: true},
		{name: "persisted without remove handler", props: Props{Model: query.Model{Query: count, ID: "q_1"}, Persistence: true, Handlers: noRemove}, wantSave: true},
		{name: "funnel", props: Props{Model: query.Model{Query: funnel, ID: "q_1"}, Persistence: true, Handlers: allHandlers}},
		{name: "email extraction", props: Props{Model: query.Model{Query: email, ID: "q_1"}, Persistence: true, Handlers: allHandlers}},
		{name: "immediate extraction", props: Props{Model: query.Model{Query: immediate, ID: "q_1"}, Persistence: true, Handlers: allHandlers}, wantSave: true, wantDelete: true},
		{name: "no query", props: Props{Model: query.Model{}, Persistence: true, Handlers: allHandlers}, wantSave: true},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			bar := Build(tc.props)
			if (bar.Save != nil) != tc.wantSave {
				t.Fatalf("save visible = %v, want %v", bar.Save != nil, tc.wantSave)
			}
			if (bar.Delete != nil) != tc.wantDelete {
				t.Fatalf("delete visible = %v, want %v", bar.Delete != nil, tc.wantDelete)
			}
			if CanSave(tc.props) != tc.wantSave {
				t.Fatalf("CanSave = %v, want %v", CanSave(tc.props), tc.wantSave)
			}
			if CanDelete(tc.props) != tc.wantDelete {
				t.Fatalf("CanDelete = %v, want %v", CanDelete(tc.props), tc.wantDelete)
			}
		})
	}
}

func TestBuildSaveLabelAndLoadingState(t *testing.T) {
	t.Parallel()

	count := &query.Query{AnalysisType: query.AnalysisCount}

	fresh := Build(Props{Model: query.Model{Query: count}, Persistence: true, Handlers: allHandlers})
	if fresh.Save.Label != SaveLabel {
		t.Fatalf("new query save label = %+v, want Save", fresh.Save.Label)
	}
	if fresh.Save.Disabled || fresh.Run.HasClass("disabled") {
		t.Fatal("idle controls must be enabled")
	}

	loading := Build(Props{Model: query.Model{Query: count, ID: "q_1", Loading: true}, Persistence: true, Handlers: allHandlers})
	if loading.Save.Label != UpdateLabel {
		t.Fatalf("persisted save label = %+v, want Update", loading.Save.Label)
	}
	if !loading.Save.Disabled {
		t.Fatal("save must be disabled while loading")
	}
	if !loading.Run.HasClass("disabled") {
		t.Fatalf("run classes = %q, want disabled", loading.Run.ClassName())
	}
	if loading.Run.Label.Default != "Running..." {
		t.Fatalf("run label = %q", loading.Run.Label.Default)
	}
	if loading.Delete.Action != allHandlers.RemoveClick {
		t.Fatalf("delete action = %q", loading.Delete.Action)
	}
}

func TestBuildCodeSampleToggle(t *testing.T) {
	t.Parallel()

	hidden := Build(Props{CodeSampleHidden: true, Handlers: allHandlers})
	if hidden.CodeSample.HasClass("open") {
		t.Fatal("hidden code sample must not be open")
	}
	if hidden.CodeSample.ClassName() != "btn btn-default code-sample-toggle pull-right" {
		t.Fatalf("classes = %q", hidden.CodeSample.ClassName())
	}
	shown := Build(Props{CodeSampleHidden: false, Handlers: allHandlers})
	if !shown.CodeSample.HasClass("open") {
		t.Fatal("visible code sample must be open")
	}
	if shown.CodeSample.Action != allHandlers.ToggleCodeSample {
		t.Fatalf("toggle action = %q", shown.CodeSample.Action)
	}
}
