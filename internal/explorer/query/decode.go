package query

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/explorer/internal/platform/errors"
)

// Form field names shared by the explorer page and DecodeForm.
const (
	FieldID                  = "id"
	FieldEventCollection     = "event_collection"
	FieldAnalysisType        = "analysis_type"
	FieldEmail               = "email"
	FieldEmailDelivery       = "email_delivery"
	FieldLatest              = "latest"
	FieldQueryName           = "query_name"
	FieldRefreshRate         = "refresh_rate"
	FieldSaving              = "saving"
	FieldLoading             = "loading"
	FieldFilterPropertyName  = "filter_property_name"
	FieldFilterOperator      = "filter_operator"
	FieldFilterCoercionType  = "filter_coercion_type"
	FieldFilterPropertyValue = "filter_property_value"
)

// maxJSONBody caps the size of a posted JSON model.
const maxJSONBody = 1 << 20

type wireModel struct {
	ID          string     `json:"id"`
	Query       *wireQuery `json:"query"`
	Loading     bool       `json:"loading"`
	Saving      bool       `json:"saving"`
	QueryName   *string    `json:"query_name"`
	RefreshRate int        `json:"refresh_rate"`
}

type wireQuery struct {
	EventCollection string       `json:"event_collection"`
	AnalysisType    string       `json:"analysis_type"`
	Filters         []wireFilter `json:"filters"`
	Email           *string      `json:"email"`
	Latest          looseString  `json:"latest"`
}

type wireFilter struct {
	PropertyName  string      `json:"property_name"`
	Operator      string      `json:"operator"`
	CoercionType  string      `json:"coercion_type"`
	PropertyValue looseString `json:"property_value"`
}

// looseString accepts a JSON string, number or boolean and keeps its literal
// text so numeric checks see exactly what the client sent ("10.00" stays
// "10.00").
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*s = ""
	case len(data) > 0 && data[0] == '"':
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return err
		}
		*s = looseString(value)
	case bytes.Equal(data, []byte("true")), bytes.Equal(data, []byte("false")):
		*s = looseString(data)
	default:
		var number json.Number
		if err := json.Unmarshal(data, &number); err != nil {
			return fmt.Errorf("expected string or number, got %s", data)
		}
		*s = looseString(number.String())
	}
	return nil
}

// DecodeJSON reads a model from its JSON wire shape.
func DecodeJSON(r io.Reader) (Model, error) {
	if r == nil {
		return Model{}, apperrors.New(apperrors.CodeQueryDecodeFailed, "decode query json: body is required")
	}
	var wire wireModel
	decoder := json.NewDecoder(io.LimitReader(r, maxJSONBody))
	if err := decoder.Decode(&wire); err != nil {
		return Model{}, apperrors.Wrap(apperrors.CodeQueryDecodeFailed, "decode query json", err)
	}
	return wire.model(), nil
}

// EncodeJSON writes m in the wire shape DecodeJSON reads.
func EncodeJSON(w io.Writer, m Model) error {
	return json.NewEncoder(w).Encode(newWireModel(m))
}

func (w wireModel) model() Model {
	m := Model{
		ID:          strings.TrimSpace(w.ID),
		Loading:     w.Loading,
		Saving:      w.Saving,
		RefreshRate: w.RefreshRate,
	}
	if w.QueryName != nil {
		m.QueryName = *w.QueryName
	}
	if w.Query == nil {
		return m
	}
	q := &Query{
		EventCollection: w.Query.EventCollection,
		AnalysisType:    w.Query.AnalysisType,
		Email:           w.Query.Email,
		Latest:          string(w.Query.Latest),
	}
	if w.Query.Filters != nil {
		q.Filters = make([]Filter, 0, len(w.Query.Filters))
		for _, f := range w.Query.Filters {
			q.Filters = append(q.Filters, Filter{
				PropertyName:  f.PropertyName,
				Operator:      f.Operator,
				CoercionType:  f.CoercionType,
				PropertyValue: string(f.PropertyValue),
			})
		}
	}
	m.Query = q
	return m
}

func newWireModel(m Model) wireModel {
	name := m.QueryName
	w := wireModel{
		ID:          m.ID,
		Loading:     m.Loading,
		Saving:      m.Saving,
		QueryName:   &name,
		RefreshRate: m.RefreshRate,
	}
	if m.Query == nil {
		return w
	}
	w.Query = &wireQuery{
		EventCollection: m.Query.EventCollection,
		AnalysisType:    m.Query.AnalysisType,
		Email:           m.Query.Email,
		Latest:          looseString(m.Query.Latest),
		Filters:         make([]wireFilter, 0, len(m.Query.Filters)),
	}
	for _, f := range m.Query.Filters {
		w.Query.Filters = append(w.Query.Filters, wireFilter{
			PropertyName:  f.PropertyName,
			Operator:      f.Operator,
			CoercionType:  f.CoercionType,
			PropertyValue: looseString(f.PropertyValue),
		})
	}
	return w
}

// DecodeForm reads a model from explorer form values.
//
// Filters are posted as four repeated keys zipped by position. The query is
// nil when none of its fields were posted. When email_delivery is posted it
// decides whether Email is set; otherwise Email is non-nil only when the email
// key is present.
func DecodeForm(values url.Values) (Model, error) {
	m := Model{
		ID:        strings.TrimSpace(values.Get(FieldID)),
		QueryName: values.Get(FieldQueryName),
		Saving:    formBool(values.Get(FieldSaving)),
		Loading:   formBool(values.Get(FieldLoading)),
	}
	if raw := strings.TrimSpace(values.Get(FieldRefreshRate)); raw != "" {
		rate, err := strconv.Atoi(raw)
		if err != nil {
			return Model{}, apperrors.WithMetadata(apperrors.CodeQueryDecodeFailed,
				fmt.Sprintf("decode refresh_rate %q", raw), map[string]string{"Field": FieldRefreshRate})
		}
		m.RefreshRate = rate
	}

	filters, err := decodeFormFilters(values)
	if err != nil {
		return Model{}, err
	}
	if !hasQueryFields(values) {
		return m, nil
	}
	q := &Query{
		EventCollection: values.Get(FieldEventCollection),
		AnalysisType:    values.Get(FieldAnalysisType),
		Latest:          values.Get(FieldLatest),
		Filters:         filters,
	}
	_, hasEmail := values[FieldEmail]
	if raw, ok := values[FieldEmailDelivery]; ok && len(raw) > 0 {
		hasEmail = formBool(raw[len(raw)-1])
	}
	if hasEmail {
		email := values.Get(FieldEmail)
		q.Email = &email
	}
	m.Query = q
	return m, nil
}

// EncodeForm writes m back into form values DecodeForm reads.
func EncodeForm(m Model) url.Values {
	values := url.Values{}
	if m.ID != "" {
		values.Set(FieldID, m.ID)
	}
	if m.QueryName != "" {
		values.Set(FieldQueryName, m.QueryName)
	}
	if m.RefreshRate != 0 {
		values.Set(FieldRefreshRate, strconv.Itoa(m.RefreshRate))
	}
	if m.Saving {
		values.Set(FieldSaving, "true")
	}
	if m.Loading {
		values.Set(FieldLoading, "true")
	}
	if m.Query == nil {
		return values
	}
	values.Set(FieldEventCollection, m.Query.EventCollection)
	values.Set(FieldAnalysisType, m.Query.AnalysisType)
	if m.Query.Latest != "" {
		values.Set(FieldLatest, m.Query.Latest)
	}
	if m.Query.Email != nil {
		values.Set(FieldEmailDelivery, "true")
		values.Set(FieldEmail, *m.Query.Email)
	}
	for _, f := range m.Query.Filters {
		values.Add(FieldFilterPropertyName, f.PropertyName)
		values.Add(FieldFilterOperator, f.Operator)
		values.Add(FieldFilterCoercionType, f.CoercionType)
		values.Add(FieldFilterPropertyValue, f.PropertyValue)
	}
	return values
}

func decodeFormFilters(values url.Values) ([]Filter, error) {
	names := values[FieldFilterPropertyName]
	operators := values[FieldFilterOperator]
	coercions := values[FieldFilterCoercionType]
	propertyValues := values[FieldFilterPropertyValue]
	if len(names) != len(operators) || len(names) != len(coercions) || len(names) != len(propertyValues) {
		return nil, apperrors.WithMetadata(apperrors.CodeQueryDecodeFailed,
			fmt.Sprintf("decode filters: mismatched field counts %d/%d/%d/%d", len(names), len(operators), len(coercions), len(propertyValues)),
			map[string]string{"Field": "filters"})
	}
	filters := make([]Filter, 0, len(names))
	for i := range names {
		filters = append(filters, Filter{
			PropertyName:  names[i],
			Operator:      operators[i],
			CoercionType:  coercions[i],
			PropertyValue: propertyValues[i],
		})
	}
	return filters, nil
}

func hasQueryFields(values url.Values) bool {
	for _, key := range []string{FieldEventCollection, FieldAnalysisType, FieldEmail, FieldEmailDelivery, FieldLatest, FieldFilterPropertyName} {
		if _, ok := values[key]; ok {
			return true
		}
	}
	return false
}

func formBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "t", "true", "on", "yes":
		return true
	default:
		return false
	}
}
