package query

import (
	"bytes"
	"errors"
	"net/url"
	"reflect"
	"strings"
	"testing"

	apperrors "github.com/louisbranch/explorer/internal/platform/errors"
)

func TestDecodeJSONReadsWireShape(t *testing.T) {
	t.Parallel()

	body := `{
		"id": "q_1",
		"query_name": "Weekly clicks",
		"refresh_rate": 240,
		"saving": true,
		"query": {
			"event_collection": "clicks",
			"analysis_type": "extraction",
			"email": "keen@example.com",
			"latest": 10,
			"filters": [
				{"property_name": "price", "operator": "gt", "coercion_type": "Number", "property_value": 10.00}
			]
		}
	}`
	m, err := DecodeJSON(strings.NewReader(body))
	if err != nil {
		t.Fatalf("DecodeJSON() error = %v", err)
	}
	if m.ID != "q_1" || m.QueryName != "Weekly clicks" || m.RefreshRate != 240 || !m.Saving {
		t.Fatalf("unexpected model flags: %+v", m)
	}
	if m.Query == nil {
		t.Fatal("expected query")
	}
	if m.Query.Latest != "10" {
		t.Fatalf("latest = %q, want %q", m.Query.Latest, "10")
	}
	if m.Query.Email == nil || *m.Query.Email != "keen@example.com" {
		t.Fatalf("email = %v", m.Query.Email)
	}
	if got := m.Query.Filters[0].PropertyValue; got != "10.00" {
		t.Fatalf("property_value = %q, want literal %q", got, "10.00")
	}
}

func TestDecodeJSONNullNameAndMissingQuery(t *testing.T) {
	t.Parallel()

	m, err := DecodeJSON(strings.NewReader(`{"saving": true, "query_name": null}`))
	if err != nil {
		t.Fatalf("DecodeJSON() error = %v", err)
	}
	if m.QueryName != "" {
		t.Fatalf("query_name = %q, want empty", m.QueryName)
	}
	if m.Query != nil {
		t.Fatalf("expected nil query, got %+v", m.Query)
	}
}

func TestDecodeJSONRejectsMalformedInput(t *testing.T) {
	t.Parallel()

	for _, body := range []string{
		`{`,
		`{"refresh_rate": "soon"}`,
		`{"query": {"latest": {"value": 1}}}`,
	} {
		_, err := DecodeJSON(strings.NewReader(body))
		if err == nil {
			t.Fatalf("DecodeJSON(%q) expected error", body)
		}
		if !errors.Is(err, apperrors.New(apperrors.CodeQueryDecodeFailed, "")) {
			t.Fatalf("DecodeJSON(%q) error code = %q", body, apperrors.CodeOf(err))
		}
	}
	if _, err := DecodeJSON(nil); err == nil {
		t.Fatal("expected nil reader error")
	}
}

func TestDecodeFormReadsFiltersByPosition(t *testing.T) {
	t.Parallel()

	values := url.Values{
		FieldEventCollection:     {"clicks"},
		FieldAnalysisType:        {"count"},
		FieldRefreshRate:         {"1440"},
		FieldSaving:              {"on"},
		FieldQueryName:           {"Daily"},
		FieldFilterPropertyName:  {"price", "country"},
		FieldFilterOperator:      {"gt", "eq"},
		FieldFilterCoercionType:  {"Number", "String"},
		FieldFilterPropertyValue: {"10", "BR"},
	}
	m, err := DecodeForm(values)
	if err != nil {
		t.Fatalf("DecodeForm() error = %v", err)
	}
	want := Model{
		QueryName:   "Daily",
		RefreshRate: 1440,
		Saving:      true,
		Query: &Query{
			EventCollection: "clicks",
			AnalysisType:    "count",
			Filters: []Filter{
				{PropertyName: "price", Operator: "gt", CoercionType: "Number", PropertyValue: "10"},
				{PropertyName: "country", Operator: "eq", CoercionType: "String", PropertyValue: "BR"},
			},
		},
	}
	if !reflect.DeepEqual(m, want) {
		t.Fatalf("DecodeForm() = %+v, want %+v", m, want)
	}
}

func TestDecodeFormEmailPresence(t *testing.T) {
	t.Parallel()

	without, err := DecodeForm(url.Values{FieldAnalysisType: {"extraction"}})
	if err != nil {
		t.Fatalf("DecodeForm() error = %v", err)
	}
	if without.Query.Email != nil {
		t.Fatal("expected nil email when key absent")
	}
	with, err := DecodeForm(url.Values{FieldAnalysisType: {"extraction"}, FieldEmail: {""}})
	if err != nil {
		t.Fatalf("DecodeForm() error = %v", err)
	}
	if with.Query.Email == nil {
		t.Fatal("expected email pointer when key posted")
	}
}

func TestDecodeFormEmailDelivery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		values    url.Values
		wantEmail *string
	}{
		{
			name:      "delivery on without address",
			values:    url.Values{FieldAnalysisType: {AnalysisExtraction}, FieldEmailDelivery: {"true"}},
			wantEmail: strPtr(""),
		},
		{
			name:      "delivery on with address",
			values:    url.Values{FieldAnalysisType: {AnalysisExtraction}, FieldEmailDelivery: {"true"}, FieldEmail: {"keen@example.com"}},
			wantEmail: strPtr("keen@example.com"),
		},
		{
			name:   "delivery off drops posted address",
			values: url.Values{FieldAnalysisType: {AnalysisExtraction}, FieldEmailDelivery: {"false"}, FieldEmail: {"keen@example.com"}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			m, err := DecodeForm(tc.values)
			if err != nil {
				t.Fatalf("DecodeForm() error = %v", err)
			}
			if !reflect.DeepEqual(m.Query.Email, tc.wantEmail) {
				t.Fatalf("Email = %v, want %v", m.Query.Email, tc.wantEmail)
			}
		})
	}
}

func TestDecodeFormWithoutQueryFields(t *testing.T) {
	t.Parallel()

	m, err := DecodeForm(url.Values{FieldQueryName: {"x"}})
	if err != nil {
		t.Fatalf("DecodeForm() error = %v", err)
	}
	if m.Query != nil {
		t.Fatalf("expected nil query, got %+v", m.Query)
	}
}

func TestDecodeFormRejectsMalformedInput(t *testing.T) {
	t.Parallel()

	tests := []url.Values{
		{FieldRefreshRate: {"four hours"}},
		{FieldFilterPropertyName: {"a", "b"}, FieldFilterOperator: {"eq"}, FieldFilterCoercionType: {"String"}, FieldFilterPropertyValue: {"x"}},
	}
	for _, values := range tests {
		_, err := DecodeForm(values)
		if apperrors.CodeOf(err) != apperrors.CodeQueryDecodeFailed {
			t.Fatalf("DecodeForm(%v) code = %q, want %q", values, apperrors.CodeOf(err), apperrors.CodeQueryDecodeFailed)
		}
	}
}

func TestFormAndJSONDecodeAgree(t *testing.T) {
	t.Parallel()

	email := "keen@example.com"
	model := Model{
		ID:          "q_9",
		QueryName:   "Exports",
		RefreshRate: 300,
		Query: &Query{
			EventCollection: "purchases",
			AnalysisType:    AnalysisExtraction,
			Email:           &email,
			Latest:          "100",
			Filters:         []Filter{{PropertyName: "price", Operator: "gte", CoercionType: CoercionNumber, PropertyValue: "9.5"}},
		},
	}

	fromForm, err := DecodeForm(EncodeForm(model))
	if err != nil {
		t.Fatalf("DecodeForm() error = %v", err)
	}
	var buf bytes.Buffer
	if err := EncodeJSON(&buf, model); err != nil {
		t.Fatalf("EncodeJSON() error = %v", err)
	}
	fromJSON, err := DecodeJSON(&buf)
	if err != nil {
		t.Fatalf("DecodeJSON() error = %v", err)
	}
	if !reflect.DeepEqual(fromForm, fromJSON) {
		t.Fatalf("form model %+v != json model %+v", fromForm, fromJSON)
	}
	if !reflect.DeepEqual(fromForm, model) {
		t.Fatalf("decoded model %+v != original %+v", fromForm, model)
	}
}
