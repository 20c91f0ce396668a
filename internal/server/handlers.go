package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/galaxy/pkg/buildinfo"
	errs "github.com/matzehuels/galaxy/pkg/errors"
	"github.com/matzehuels/galaxy/pkg/export"
	"github.com/matzehuels/galaxy/pkg/pipeline"
	"github.com/matzehuels/galaxy/pkg/store"
)

// maxBodyBytes bounds request bodies; options are small.
const maxBodyBytes = 1 << 20

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

type createResponse struct {
	ID        string             `json:"id"`
	CloudHash string             `json:"cloud_hash"`
	Stats     pipeline.Stats     `json:"stats"`
	Cache     pipeline.CacheInfo `json:"cache"`
	Points    json.RawMessage    `json:"points,omitempty"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	opts := pipeline.DefaultOptions()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		s.writeError(w, errs.New(errs.ErrCodeInvalidInput, "decode options: %v", err))
		return
	}

	inline := r.URL.Query().Get("inline") == "true"
	if inline && !contains(opts.Formats, export.FormatJSON) {
		opts.Formats = append(opts.Formats, export.FormatJSON)
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.store.Save(r.Context(), store.NewRun(res, opts)); err != nil {
		s.writeError(w, err)
		return
	}

	resp := createResponse{
		ID:        res.RunID,
		CloudHash: res.CloudHash,
		Stats:     res.Stats,
		Cache:     res.CacheInfo,
	}
	if inline {
		resp.Points = res.Artifacts[export.FormatJSON]
	}
	w.Header().Set("Location", "/v1/galaxies/"+res.RunID)
	s.writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	run, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, run)
}

// handlePoints regenerates a stored run (normally a cache hit) and streams
// the export straight to the response.
func (s *Server) handlePoints(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := export.ValidateFormat(format); err != nil {
		s.writeError(w, err)
		return
	}
	run, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	opts := run.Options()
	c, err := s.runner.Generate(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", export.ContentType(format))
	w.Header().Set("Content-Disposition", `attachment; filename="galaxy-`+run.ID+"."+format+`"`)
	exportOpts := append(opts.ExportOptions(), export.WithRunID(run.ID))
	if err := export.Encode(w, c, format, exportOpts...); err != nil {
		// Headers are gone; all we can do is log.
		s.logger.Warn("export failed", "run", run.ID, "format", format, "error", err)
	}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
