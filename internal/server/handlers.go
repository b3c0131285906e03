package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/planforge/pkg/blueprint"
	"github.com/matzehuels/planforge/pkg/buildinfo"
	perrors "github.com/matzehuels/planforge/pkg/errors"
	"github.com/matzehuels/planforge/pkg/generate"
	"github.com/matzehuels/planforge/pkg/pipeline"
	"github.com/matzehuels/planforge/pkg/standards"
)

// SessionHeader names the header that groups generation requests.
const SessionHeader = "X-Session-ID"

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type generateRequest struct {
	BuildingType string `json:"buildingType"`
	Country      string `json:"country"`
	Minimums     string `json:"minimums,omitempty"`
}

type specResponse struct {
	Spec     *blueprint.Spec `json:"spec"`
	Warnings []string        `json:"warnings"`
}

type standardResponse struct {
	Country  string             `json:"country"`
	Fallback bool               `json:"fallback"`
	Unit     blueprint.Unit     `json:"unit"`
	Standard standards.Standard `json:"standard"`
}

// =============================================================================
// Catalogue
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Get()})
}

func (s *Server) handleCountries(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, standards.Countries)
}

func (s *Server) handleStandard(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(chi.URLParam(r, "country"))
	if err := perrors.ValidateCountry(code); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, standardResponse{
		Country:  code,
		Fallback: !standards.HasStandard(code),
		Unit:     blueprint.UnitForCountry(code),
		Standard: standards.Lookup(code),
	})
}

func (s *Server) handleBuildings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, standards.Buildings())
}

// =============================================================================
// Pipeline
// =============================================================================

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	session := r.Header.Get(SessionHeader)
	if session == "" {
		session = uuid.NewString()
	}
	w.Header().Set(SessionHeader, session)

	opts := pipeline.Options{
		BuildingType: req.BuildingType,
		Country:      req.Country,
		Minimums:     req.Minimums,
		Source:       s.sessions.get(session),
	}
	spec, warnings, err := s.runner.Generate(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, specResponse{Spec: spec, Warnings: nonNil(warnings)})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	spec, err := readSpec(r)
	if err != nil {
		writeError(w, err)
		return
	}
	opts := pipeline.Options{Minimums: r.URL.Query().Get("minimums")}
	out, warnings, err := s.runner.Layout(r.Context(), spec, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, specResponse{Spec: out, Warnings: nonNil(warnings)})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	spec, err := readSpec(r)
	if err != nil {
		writeError(w, err)
		return
	}
	opts := pipeline.Options{Minimums: r.URL.Query().Get("minimums")}
	if err := opts.ValidateForLayout(); err != nil {
		writeError(w, err)
		return
	}
	laid := pipeline.Check(s.runner.Engine, spec, opts)
	writeJSON(w, http.StatusOK, specResponse{Spec: laid.Spec, Warnings: nonNil(laid.Warnings)})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	spec, err := readSpec(r)
	if err != nil {
		writeError(w, err)
		return
	}

	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatPNG
	}
	opts := pipeline.Options{Formats: []string{format}}
	for name, dst := range map[string]*float64{"scale": &opts.Scale, "x": &opts.OffsetX, "y": &opts.OffsetY} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "invalid %s: %q", name, v))
			return
		}
		*dst = f
	}

	artifacts, hit, err := s.runner.RenderWithCacheInfo(r.Context(), spec, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set("X-Cache", cacheStatus(hit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

// =============================================================================
// Helpers
// =============================================================================

func readSpec(r *http.Request) (*blueprint.Spec, error) {
	spec, err := blueprint.Read(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidSpec, err, "invalid spec body")
	}
	if err := perrors.ValidateSpec(spec); err != nil {
		return nil, err
	}
	return spec, nil
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return perrors.Wrap(perrors.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes err as {"error", "code"}. Superseded and canceled
// generations answer 409.
func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, generate.ErrSuperseded) || errors.Is(err, context.Canceled) {
		err = perrors.Wrap(perrors.ErrCodeCanceled, err, "request superseded")
	}
	code := perrors.GetCode(err)
	if code == "" {
		code = perrors.ErrCodeInternal
	}
	writeJSON(w, perrors.HTTPStatus(err), errorResponse{
		Error: perrors.UserMessage(err),
		Code:  string(code),
	})
}

func errNotFound(path string) error {
	return perrors.New(perrors.ErrCodeNotFound, "no route for %s", path)
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
