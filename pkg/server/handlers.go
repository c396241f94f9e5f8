package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/jappaper/pkg/buildinfo"
	"github.com/matzehuels/jappaper/pkg/errors"
	"github.com/matzehuels/jappaper/pkg/layout"
	"github.com/matzehuels/jappaper/pkg/page"
	"github.com/matzehuels/jappaper/pkg/pipeline"
	"github.com/matzehuels/jappaper/pkg/template"
	"github.com/matzehuels/jappaper/pkg/trace"
)

// =============================================================================
// Stateless endpoints
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Current()})
}

type pagePreset struct {
	Key    string  `json:"key"`
	Label  string  `json:"label"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type colorPreset struct {
	ID    string `json:"id"`
	Hex   string `json:"hex"`
	Label string `json:"label"`
}

type templatePreset struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

type generatorPreset struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	trace.GeneratorConfig
}

type presetsResponse struct {
	Pages      []pagePreset      `json:"pages"`
	Colors     []colorPreset     `json:"colors"`
	Templates  []templatePreset  `json:"templates"`
	Generators []generatorPreset `json:"generators"`
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	var resp presetsResponse
	for _, p := range page.Presets() {
		resp.Pages = append(resp.Pages, pagePreset{p.Key, p.Label, p.Width, p.Height})
	}
	for _, c := range page.Colors() {
		resp.Colors = append(resp.Colors, colorPreset{c.ID, c.Hex, c.Label})
	}
	for _, t := range template.Presets() {
		resp.Templates = append(resp.Templates, templatePreset{t.Name, t.Label, t.Description})
	}
	for _, g := range trace.Presets() {
		resp.Generators = append(resp.Generators, generatorPreset{g.Name, g.Label, g.GeneratorConfig})
	}
	writeJSON(w, http.StatusOK, resp)
}

type fitResponse struct {
	layout.Fit
	Page page.Dimensions `json:"page"`
}

func (s *Server) handleFit(w http.ResponseWriter, r *http.Request) {
	doc, err := s.decodeDocument(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, fitResponse{Fit: doc.MaxFit(), Page: doc.Dimensions()})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	doc, err := s.decodeDocument(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.render(w, r, doc, pipeline.FormatJSON)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	doc, err := s.decodeDocument(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.render(w, r, doc, format)
}

// =============================================================================
// Template endpoints
// =============================================================================

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	docs, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if docs == nil {
		docs = []*template.Document{}
	}
	writeJSON(w, http.StatusOK, docs)
}

// handleCreateTemplate accepts a document body, or an empty body with an
// optional ?preset= quick-start name.
func (s *Server) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var doc *template.Document
	if len(bytes.TrimSpace(data)) == 0 {
		doc, err = template.New(r.URL.Query().Get("preset"))
	} else {
		doc, err = template.Unmarshal(data, template.JSON)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := checkDocument(doc); err != nil {
		s.writeError(w, r, err)
		return
	}
	doc.ID = ""

	if err := s.store.Put(r.Context(), doc); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/templates/"+doc.ID)
	writeJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// handlePutTemplate creates or replaces the template at {id}.
func (s *Server) handlePutTemplate(w http.ResponseWriter, r *http.Request) {
	doc, err := s.decodeDocument(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	doc.ID = chi.URLParam(r, "id")
	s.save(w, r, doc)
}

func (s *Server) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRenderTemplate(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.render(w, r, doc, format)
}

type importResponse struct {
	Applied  int                `json:"applied"`
	Skipped  int                `json:"skipped"`
	Grid     trace.Size         `json:"grid"`
	Template *template.Document `json:"template"`
}

// handleImport merges a bulk character import (a JSON array of
// {row, columns, character} records) into the template.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.runner.Import(r.Context(), doc, data)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.Put(r.Context(), doc); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, importResponse{
		Applied:  res.Applied,
		Skipped:  res.Skipped,
		Grid:     res.Grid,
		Template: doc,
	})
}

// handleGenerate replaces the template's cells with a generated grid. The
// generator comes from ?preset=, defaulting to the standard generator, and
// ?char= overrides its character.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	cfg := trace.DefaultGenerator
	q := r.URL.Query()
	if name := q.Get("preset"); name != "" {
		p, err := trace.LookupPreset(name)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		cfg = p.GeneratorConfig
	}
	if q.Has("char") {
		cfg.Char = q.Get("char")
	}

	if err := checkGenerate(doc.Dimensions(), cfg); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.runner.Generate(doc, cfg)
	s.save(w, r, doc)
}

type cellRequest struct {
	Char string `json:"char"`
}

// handlePutCell writes one zero-based cell. An empty char clears it.
func (s *Server) handlePutCell(w http.ResponseWriter, r *http.Request) {
	row, err := cellIndex(chi.URLParam(r, "row"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	col, err := cellIndex(chi.URLParam(r, "col"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	data, err := readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req cellRequest
	if err := json.Unmarshal(data, &req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode cell"))
		return
	}

	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	doc.WriteCell(row, col, req.Char)
	s.save(w, r, doc)
}

// =============================================================================
// Helpers
// =============================================================================

func (s *Server) decodeDocument(w http.ResponseWriter, r *http.Request) (*template.Document, error) {
	data, err := readBody(w, r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return template.Default(), nil
	}
	doc, err := template.Unmarshal(data, template.JSON)
	if err != nil {
		return nil, err
	}
	if err := checkDocument(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *Server) save(w http.ResponseWriter, r *http.Request, doc *template.Document) {
	if err := s.store.Put(r.Context(), doc); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, doc *template.Document, format string) {
	opts, err := renderOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	// Stored templates may come from the CLI, which has no limits.
	if err := checkDocument(doc); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}

	res, err := s.runner.Execute(r.Context(), doc, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("ETag", strconv.Quote(res.PageHash))
	writeArtifact(w, format, res.Artifacts[format])
}

// renderOptions reads ?scale=, ?hide_trace=, ?font_family= and ?rsvg=.
func renderOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	var opts pipeline.Options
	if v := q.Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid scale: %q", v)
		}
		if err := checkScale(scale); err != nil {
			return opts, err
		}
		opts.Scale = scale
	}
	for name, dst := range map[string]*bool{"hide_trace": &opts.HideTrace, "rsvg": &opts.RSVG} {
		if v := q.Get(name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return opts, errors.New(errors.ErrCodeInvalidInput, "invalid %s: %q", name, v)
			}
			*dst = b
		}
	}
	opts.FontFamily = q.Get("font_family")
	return opts, nil
}

func cellIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid cell index: %q", s)
	}
	return n, nil
}

func contentType(format string) string {
	if ct, ok := pipeline.ContentType(format); ok {
		return ct
	}
	return "application/octet-stream"
}
