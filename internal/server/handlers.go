package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/sketchnote/pkg/buildinfo"
	"github.com/matzehuels/sketchnote/pkg/errors"
	"github.com/matzehuels/sketchnote/pkg/geom"
	"github.com/matzehuels/sketchnote/pkg/pipeline"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": buildinfo.Get(),
	})
}

// settingJSON is one setting as served over HTTP.
type settingJSON struct {
	Key     string `json:"key"`
	Type    string `json:"type"`
	Value   any    `json:"value"`
	Default any    `json:"default"`
	Summary string `json:"summary,omitempty"`
}

func (s *Server) setting(key string) (settingJSON, error) {
	st := s.win.Settings()
	k, ok := st.Schema().Lookup(key)
	if !ok {
		return settingJSON{}, errors.New(errors.ErrCodeUnknownKey, "unknown setting %q", key)
	}
	v, err := st.Value(key)
	if err != nil {
		return settingJSON{}, err
	}
	return settingJSON{Key: k.Name, Type: k.TypeName(), Value: v, Default: k.Default, Summary: k.Summary}, nil
}

func (s *Server) handleListSettings(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := s.win.Settings().Schema().Keys()
	out := make([]settingJSON, 0, len(keys))
	for _, k := range keys {
		v, err := s.setting(k.Name)
		if err != nil {
			s.writeError(w, err)
			return
		}
		out = append(out, v)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetSetting(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.setting(chi.URLParam(r, "key"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// handlePutSetting stores the JSON body as the new value. The value goes
// through the settings store so bound properties follow.
func (s *Server) handlePutSetting(w http.ResponseWriter, r *http.Request) {
	var value any
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&value); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode value"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := chi.URLParam(r, "key")
	if err := s.win.Settings().SetValue(key, value); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.win.Settings().Save(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	v, err := s.setting(key)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleResetSetting(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := chi.URLParam(r, "key")
	if err := s.win.Settings().Reset(key); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.win.Settings().Save(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	v, err := s.setting(key)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleSheet(format, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scale := pipeline.DefaultScale
		if q := r.URL.Query().Get("scale"); q != "" {
			v, err := strconv.ParseFloat(q, 64)
			if err != nil {
				s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse scale %q", q))
				return
			}
			scale = v
		}

		s.mu.Lock()
		result, err := s.runner.Export(r.Context(), s.win.Canvas().Sheet(), pipeline.Options{
			Formats: []string{format},
			Scale:   scale,
			Logger:  s.logger,
		})
		s.mu.Unlock()
		if err != nil {
			s.writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("ETag", strconv.Quote(result.SheetHash))
		w.Write(result.Artifacts[format])
	}
}

type strokeJSON struct {
	ID     uuid.UUID `json:"id"`
	Kind   string    `json:"kind"`
	Bounds geom.AABB `json:"bounds"`
}

func (s *Server) handleListStrokes(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sh := s.win.Canvas().Sheet()
	out := make([]strokeJSON, 0, sh.Len())
	for _, id := range sh.Keys() {
		st, _ := sh.Get(id)
		out = append(out, strokeJSON{ID: id, Kind: st.Kind(), Bounds: st.Bounds()})
	}
	writeJSON(w, http.StatusOK, out)
}

// handleImportStroke imports the request body as SVG or bitmap data.
func (s *Server) handleImportStroke(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxUploadSize))
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	canvas := s.win.Canvas()
	id, err := canvas.Import(data)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.win.PenSounds().PlayStroke()
	st, _ := canvas.Sheet().Get(id)
	writeJSON(w, http.StatusCreated, strokeJSON{ID: id, Kind: st.Kind(), Bounds: st.Bounds()})
}

func (s *Server) handleDeleteStroke(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse stroke id"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.win.Canvas().Sheet().Remove(id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
