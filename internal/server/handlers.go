package server

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/matzehuels/feedscope/pkg/aggregate"
	"github.com/matzehuels/feedscope/pkg/buildinfo"
	"github.com/matzehuels/feedscope/pkg/cloud"
	"github.com/matzehuels/feedscope/pkg/errors"
	"github.com/matzehuels/feedscope/pkg/insight"
	feedio "github.com/matzehuels/feedscope/pkg/io"
	"github.com/matzehuels/feedscope/pkg/pipeline"
	"github.com/matzehuels/feedscope/pkg/render/sink"
)

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type aggregateResponse struct {
	RunID  string            `json:"runId"`
	Report *aggregate.Report `json:"report"`
}

type analyzeResponse struct {
	RunID  string            `json:"runId"`
	Report *aggregate.Report `json:"report"`
	Layout *cloud.Result     `json:"layout"`
	Stats  analyzeStats      `json:"stats"`
}

type analyzeStats struct {
	Records int `json:"records"`
	Words   int `json:"words"`
	Placed  int `json:"placed"`
	Dropped int `json:"dropped"`
}

type insightsResponse struct {
	RunID string `json:"runId"`
	*insight.Response
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Current()})
}

func (s *Server) handleAggregate(w http.ResponseWriter, r *http.Request) {
	d, err := feedio.ReadDataset(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, err)
		return
	}
	opts, err := s.options(r)
	if err != nil {
		writeError(w, err)
		return
	}

	rep, err := s.runner.Aggregate(r.Context(), d, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, aggregateResponse{RunID: uuid.NewString(), Report: rep})
}

func (s *Server) handleWordCloud(w http.ResponseWriter, r *http.Request) {
	keywords, err := feedio.ReadKeywords(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, err)
		return
	}
	opts, err := s.options(r)
	if err != nil {
		writeError(w, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatJSON
	}
	if format != pipeline.FormatJSON && format != pipeline.FormatSVG {
		writeError(w, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %q (must be json or svg)", format))
		return
	}

	res, err := s.runner.Layout(r.Context(), keywords, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	runID := uuid.NewString()
	w.Header().Set("X-Run-ID", runID)
	if format == pipeline.FormatSVG {
		opts.Formats = []string{pipeline.FormatSVG}
		artifacts, err := s.runner.Render(r.Context(), res, opts)
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(artifacts[pipeline.FormatSVG])
		return
	}

	palette := opts.Palette
	if len(palette) == 0 {
		palette = sink.Category10
	}
	data, err := sink.RenderJSON(res, sink.WithJSONRunID(runID), sink.WithJSONPalette(palette))
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	d, err := feedio.ReadDataset(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, err)
		return
	}
	opts, err := s.options(r)
	if err != nil {
		writeError(w, err)
		return
	}
	opts.Formats = []string{pipeline.FormatJSON}

	result, err := s.runner.Execute(r.Context(), d, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analyzeResponse{
		RunID:  result.RunID,
		Report: result.Report,
		Layout: result.Layout,
		Stats: analyzeStats{
			Records: result.Stats.Records,
			Words:   result.Stats.Words,
			Placed:  result.Stats.Placed,
			Dropped: result.Stats.Dropped,
		},
	})
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	if s.insight == nil {
		writeError(w, errors.New(errors.ErrCodeUnsupported, "insight generation is not configured"))
		return
	}
	d, err := feedio.ReadDataset(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, err)
		return
	}
	opts, err := s.options(r)
	if err != nil {
		writeError(w, err)
		return
	}

	rep, err := s.runner.Aggregate(r.Context(), d, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	resp, err := s.insight.Generate(r.Context(), insight.NewRequest(rep))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, insightsResponse{RunID: uuid.NewString(), Response: resp})
}

// options copies the base options and applies the query overrides
// width, height, maxWords and topN.
func (s *Server) options(r *http.Request) (pipeline.Options, error) {
	opts := s.base
	q := r.URL.Query()

	for _, f := range []struct {
		name string
		dst  *float64
	}{
		{"width", &opts.Width},
		{"height", &opts.Height},
	} {
		if v := q.Get(f.name); v != "" {
			n, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return opts, errors.New(errors.ErrCodeInvalidInput, "invalid %s: %q", f.name, v)
			}
			*f.dst = n
		}
	}
	for _, f := range []struct {
		name string
		dst  *int
	}{
		{"maxWords", &opts.MaxWords},
		{"topN", &opts.TopN},
	} {
		if v := q.Get(f.name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return opts, errors.New(errors.ErrCodeInvalidInput, "invalid %s: %q", f.name, v)
			}
			*f.dst = n
		}
	}
	return opts, nil
}
