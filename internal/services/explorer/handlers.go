package explorer

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/louisbranch/explorer/internal/explorer/actions"
	"github.com/louisbranch/explorer/internal/explorer/query"
	"github.com/louisbranch/explorer/internal/explorer/validation"
	apperrors "github.com/louisbranch/explorer/internal/platform/errors"
	platformotel "github.com/louisbranch/explorer/internal/platform/otel"
	"github.com/louisbranch/explorer/internal/platform/timeouts"
	"github.com/louisbranch/explorer/internal/services/explorer/platform/httpx"
	webi18n "github.com/louisbranch/explorer/internal/services/explorer/platform/i18n"
	"github.com/louisbranch/explorer/internal/services/explorer/routepath"
	"github.com/louisbranch/explorer/internal/services/explorer/templates"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/message"
)

// maxFormBody caps posted explorer forms.
const maxFormBody = 1 << 20

var barHandlers = actions.Handlers{
	HandleQuerySubmit: routepath.ExplorerRun,
	SaveQueryClick:    routepath.ExplorerSave,
	RemoveClick:       routepath.ExplorerDelete,
	ToggleCodeSample:  routepath.ExplorerCodeSample,
}

var (
	titleLabel    = actions.Label{Key: "explorer.title", Default: "Query Explorer"}
	validLabel    = actions.Label{Key: "explorer.status.valid", Default: "Query is ready."}
	acceptedLabel = actions.Label{Key: "explorer.status.accepted", Default: "Request accepted."}
	deletedLabel  = actions.Label{Key: "explorer.status.deleted", Default: "Query deleted."}
)

type handlers struct {
	persistence      bool
	codeSampleHidden bool
	dispatcher       Dispatcher
	logger           *log.Logger
}

// request is the decoded state of one explorer interaction.
type request struct {
	model            query.Model
	codeSampleHidden bool
	loc              *message.Printer
	locale           string
}

func (h *handlers) handlePage(w http.ResponseWriter, r *http.Request) {
	loc, locale := webi18n.ResolveLocalizer(w, r)
	req := request{codeSampleHidden: h.codeSampleHidden, loc: loc, locale: locale}
	m, err := query.DecodeForm(r.URL.Query())
	if err != nil {
		h.writeError(w, r, req, err, nil)
		return
	}
	req.model = m
	req.codeSampleHidden = h.readCodeSampleHidden(r.URL.Query())
	h.renderPage(w, r, req, h.panel(req, nil), http.StatusOK)
}

func (h *handlers) handleValidate(w http.ResponseWriter, r *http.Request) {
	req, ok := h.readRequest(w, r)
	if !ok {
		return
	}
	result := h.check(r.Context(), req.model)
	panel := h.panel(req, result.Failures())
	if result.Valid() {
		panel.Status = validLabel.Text(req.loc)
		panel.StatusKind = templates.StatusSuccess
	}
	h.render(w, r, req, panel, http.StatusOK)
}

func (h *handlers) handleRun(w http.ResponseWriter, r *http.Request) {
	req, ok := h.readRequest(w, r)
	if !ok {
		return
	}
	req.model.Saving = false
	result := h.check(r.Context(), req.model)
	if err := result.Err(); err != nil {
		h.writeError(w, r, req, err, result.Failures())
		return
	}
	if err := h.dispatch(r.Context(), "run", req.model, h.dispatcher.Run); err != nil {
		h.writeError(w, r, req, err, nil)
		return
	}
	h.renderStatus(w, r, req, acceptedLabel)
}

func (h *handlers) handleSave(w http.ResponseWriter, r *http.Request) {
	req, ok := h.readRequest(w, r)
	if !ok {
		return
	}
	req.model.Saving = true
	if !h.persistence {
		h.writeError(w, r, req, apperrors.New(apperrors.CodePersistenceDisabled, "save requested with persistence disabled"), nil)
		return
	}
	if !actions.CanSave(h.props(req)) {
		h.writeError(w, r, req, apperrors.WithMetadata(apperrors.CodeActionNotAllowed, "save not offered for query",
			map[string]string{"AnalysisType": req.model.AnalysisType()}), nil)
		return
	}
	result := h.check(r.Context(), req.model)
	if err := result.Err(); err != nil {
		h.writeError(w, r, req, err, result.Failures())
		return
	}
	if err := h.dispatch(r.Context(), "save", req.model, h.dispatcher.Save); err != nil {
		h.writeError(w, r, req, err, nil)
		return
	}
	h.renderStatus(w, r, req, acceptedLabel)
}

func (h *handlers) handleDelete(w http.ResponseWriter, r *http.Request) {
	req, ok := h.readRequest(w, r)
	if !ok {
		return
	}
	if !h.persistence {
		h.writeError(w, r, req, apperrors.New(apperrors.CodePersistenceDisabled, "delete requested with persistence disabled"), nil)
		return
	}
	if !actions.CanDelete(h.props(req)) {
		h.writeError(w, r, req, apperrors.WithMetadata(apperrors.CodeQueryNotPersisted, "delete requires a saved query",
			map[string]string{"ID": req.model.ID}), nil)
		return
	}
	if err := h.dispatch(r.Context(), "delete", req.model, h.dispatcher.Delete); err != nil {
		h.writeError(w, r, req, err, nil)
		return
	}
	h.renderStatus(w, r, req, deletedLabel)
}

func (h *handlers) handleCodeSample(w http.ResponseWriter, r *http.Request) {
	req, ok := h.readRequest(w, r)
	if !ok {
		return
	}
	req.codeSampleHidden = !req.codeSampleHidden
	h.render(w, r, req, h.panel(req, nil), http.StatusOK)
}

// apiFailure is one failed rule in the JSON validation response.
type apiFailure struct {
	Table   string `json:"table"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

type apiButton struct {
	Role     string `json:"role"`
	Label    string `json:"label"`
	Class    string `json:"class"`
	Action   string `json:"action,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
}

type apiActionBar struct {
	Run        apiButton  `json:"run"`
	Save       *apiButton `json:"save,omitempty"`
	Delete     *apiButton `json:"delete,omitempty"`
	CodeSample apiButton  `json:"code_sample"`
}

type apiValidateResponse struct {
	Valid     bool         `json:"valid"`
	Errors    []apiFailure `json:"errors"`
	ActionBar apiActionBar `json:"action_bar"`
}

type apiErrorResponse struct {
	Error apiError `json:"error"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (h *handlers) handleAPIValidate(w http.ResponseWriter, r *http.Request) {
	loc, locale := webi18n.ResolveLocalizer(w, r)
	m, err := query.DecodeJSON(r.Body)
	if err != nil {
		h.logger.Printf("api validate: %v", err)
		code := apperrors.CodeOf(err)
		h.writeJSON(w, apperrors.HTTPStatus(err), apiErrorResponse{Error: apiError{
			Code:    string(code),
			Message: apperrors.Localize(err, locale),
		}})
		return
	}

	result := h.check(r.Context(), m)
	resp := apiValidateResponse{Valid: result.Valid(), Errors: []apiFailure{}}
	for _, failure := range result.Failures() {
		label := actions.Label{Key: failure.MessageKey, Default: failure.Msg}
		resp.Errors = append(resp.Errors, apiFailure{Table: failure.Table, Field: failure.Field, Message: label.Text(loc)})
	}
	bar := actions.Build(h.props(request{model: m, codeSampleHidden: h.codeSampleHidden}))
	resp.ActionBar = apiActionBar{
		Run:        newAPIButton(bar.Run, loc),
		CodeSample: newAPIButton(bar.CodeSample, loc),
	}
	if bar.Save != nil {
		save := newAPIButton(*bar.Save, loc)
		resp.ActionBar.Save = &save
	}
	if bar.Delete != nil {
		del := newAPIButton(*bar.Delete, loc)
		resp.ActionBar.Delete = &del
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func newAPIButton(b actions.Button, loc actions.Localizer) apiButton {
	return apiButton{
		Role:     b.Role,
		Label:    b.Label.Text(loc),
		Class:    b.ClassName(),
		Action:   b.Action,
		Disabled: b.Disabled,
	}
}

func (h *handlers) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// readRequest decodes a posted explorer form. It writes the error response
// and returns false when the form cannot be read.
func (h *handlers) readRequest(w http.ResponseWriter, r *http.Request) (request, bool) {
	loc, locale := webi18n.ResolveLocalizer(w, r)
	req := request{codeSampleHidden: h.codeSampleHidden, loc: loc, locale: locale}
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBody)
	if err := r.ParseForm(); err != nil {
		h.writeError(w, r, req, apperrors.Wrap(apperrors.CodeQueryDecodeFailed, "parse form", err), nil)
		return req, false
	}
	m, err := query.DecodeForm(r.PostForm)
	if err != nil {
		h.writeError(w, r, req, err, nil)
		return req, false
	}
	req.model = m
	req.codeSampleHidden = h.readCodeSampleHidden(r.PostForm)
	return req, true
}

func (h *handlers) readCodeSampleHidden(values url.Values) bool {
	raw, ok := values[templates.CodeSampleField]
	if !ok || len(raw) == 0 {
		return h.codeSampleHidden
	}
	hidden, err := strconv.ParseBool(strings.TrimSpace(raw[0]))
	if err != nil {
		return h.codeSampleHidden
	}
	return hidden
}

func (h *handlers) props(req request) actions.Props {
	return actions.Props{
		Model:            req.model,
		Persistence:      h.persistence,
		CodeSampleHidden: req.codeSampleHidden,
		Handlers:         barHandlers,
	}
}

func (h *handlers) panel(req request, failures []validation.Failure) templates.Panel {
	panel := templates.Panel{
		Bar:              actions.Build(h.props(req)),
		Failures:         failures,
		CodeSampleHidden: req.codeSampleHidden,
	}
	if !req.codeSampleHidden {
		panel.CodeSample = h.codeSample(req.model)
	}
	return panel
}

func (h *handlers) codeSample(m query.Model) string {
	var buf bytes.Buffer
	if err := query.EncodeJSON(&buf, m); err != nil {
		h.logger.Printf("encode code sample: %v", err)
		return ""
	}
	var indented bytes.Buffer
	if err := json.Indent(&indented, bytes.TrimSpace(buf.Bytes()), "", "  "); err != nil {
		return buf.String()
	}
	return indented.String()
}

// check validates m inside a span recording the outcome.
func (h *handlers) check(ctx context.Context, m query.Model) validation.Result {
	_, span := platformotel.Tracer().Start(ctx, "explorer.validate")
	defer span.End()
	result := validation.Check(m)
	span.SetAttributes(
		attribute.String("explorer.analysis_type", m.AnalysisType()),
		attribute.Bool("explorer.valid", result.Valid()),
		attribute.Int("explorer.failures", len(result.Failures())),
	)
	return result
}

// dispatch hands m to the backend under the dispatch timeout.
func (h *handlers) dispatch(ctx context.Context, action string, m query.Model, call func(context.Context, query.Model) error) error {
	ctx, span := platformotel.Tracer().Start(ctx, "explorer."+action, trace.WithAttributes(
		attribute.String("explorer.analysis_type", m.AnalysisType()),
		attribute.String("explorer.query_id", m.ID),
	))
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, timeouts.Dispatch)
	defer cancel()
	if err := call(ctx, m); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, action+" dispatch failed")
		return apperrors.Wrap(apperrors.CodeDispatchFailed, action+" dispatch failed", err)
	}
	return nil
}

func (h *handlers) renderStatus(w http.ResponseWriter, r *http.Request, req request, status actions.Label) {
	panel := h.panel(req, nil)
	panel.Status = status.Text(req.loc)
	panel.StatusKind = templates.StatusSuccess
	h.render(w, r, req, panel, http.StatusOK)
}

// writeError logs the internal message and renders the localized one with
// the status mapped from its code.
func (h *handlers) writeError(w http.ResponseWriter, r *http.Request, req request, err error, failures []validation.Failure) {
	h.logger.Printf("%s %s: %v", r.Method, r.URL.Path, err)
	panel := h.panel(req, failures)
	panel.Status = apperrors.Localize(err, req.locale)
	panel.StatusKind = templates.StatusError
	h.render(w, r, req, panel, apperrors.HTTPStatus(err))
}

// render writes the panel fragment for HTMX requests and the full page
// otherwise. Fragments carry the extraction options out of band unless the
// form could not be decoded.
func (h *handlers) render(w http.ResponseWriter, r *http.Request, req request, panel templates.Panel, status int) {
	if !httpx.IsHTMXRequest(r) {
		h.renderPage(w, r, req, panel, status)
		return
	}
	fragment := templates.PanelComponent(panel, req.loc)
	if req.model.Query != nil {
		fragment = templates.Fragment(panel, req.model, req.loc)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := fragment.Render(r.Context(), w); err != nil {
		h.logger.Printf("render explorer panel: %v", err)
	}
}

func (h *handlers) renderPage(w http.ResponseWriter, r *http.Request, req request, panel templates.Panel, status int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	data := templates.PageData{
		Lang:  req.locale,
		Title: titleLabel.Text(req.loc),
		Model: req.model,
		Panel: panel,
	}
	if err := templates.Page(data, req.loc).Render(r.Context(), w); err != nil {
		h.logger.Printf("render explorer page: %v", err)
	}
}

func (h *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Printf("encode json response: %v", err)
	}
}
