package server

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/canvasrand/pkg/buildinfo"
	"github.com/matzehuels/canvasrand/pkg/canvas"
	"github.com/matzehuels/canvasrand/pkg/errors"
	"github.com/matzehuels/canvasrand/pkg/grid"
	"github.com/matzehuels/canvasrand/pkg/populate"
	"github.com/matzehuels/canvasrand/pkg/settings"
	"github.com/matzehuels/canvasrand/pkg/vault"
)

// maxBodyBytes bounds populate request bodies.
const maxBodyBytes = 1 << 20

var validate = validator.New()

// =============================================================================
// Health
// =============================================================================

type healthResponse struct {
	Status  string         `json:"status"`
	Notes   int            `json:"notes"`
	Version buildinfo.Info `json:"version"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Notes:   s.index.Len(),
		Version: buildinfo.Get(),
	})
}

// =============================================================================
// Notes
// =============================================================================

type notesResponse struct {
	Notes []vault.Note `json:"notes"`
}

// listNotes handles GET /api/notes?q=&tag=. tag may repeat.
func (s *Server) listNotes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := vault.Filter{Query: q.Get("q"), Tags: q["tag"]}
	s.respondJSON(w, http.StatusOK, notesResponse{Notes: f.Apply(s.index.Notes())})
}

// =============================================================================
// Populate
// =============================================================================

// populateRequest is the body of POST /api/canvas/populate. Numeric fields
// left out fall back to the server's settings.
type populateRequest struct {
	Canvas       string   `json:"canvas" validate:"required,max=500"`
	Count        *int     `json:"count,omitempty"`
	PerRow       *int     `json:"per_row,omitempty"`
	Width        *float64 `json:"width,omitempty"`
	Height       *float64 `json:"height,omitempty"`
	Margin       *float64 `json:"margin,omitempty"`
	X            *float64 `json:"x,omitempty"`
	Y            *float64 `json:"y,omitempty"`
	Below        bool     `json:"below,omitempty"`
	Color        string   `json:"color,omitempty"`
	Query        string   `json:"query,omitempty" validate:"max=200"`
	Tags         []string `json:"tags,omitempty" validate:"max=20,dive,max=100"`
	Seed         uint64   `json:"seed,omitempty"`
	SkipExisting bool     `json:"skip_existing,omitempty"`
	DryRun       bool     `json:"dry_run,omitempty"`
}

type populateResponse struct {
	RunID     string        `json:"run_id"`
	Canvas    string        `json:"canvas"`
	Added     int           `json:"added"`
	Requested int           `json:"requested"`
	Shortfall int           `json:"shortfall"`
	Seed      uint64        `json:"seed"`
	DryRun    bool          `json:"dry_run"`
	Nodes     []canvas.Node `json:"nodes"`
}

// spec merges the request's placement fields over the settings.
func (req *populateRequest) spec(base settings.Settings) grid.Spec {
	spec := base.Spec()
	if req.Count != nil {
		spec.Count = *req.Count
	}
	if req.PerRow != nil {
		spec.PerRow = *req.PerRow
	}
	if req.Width != nil {
		spec.Width = *req.Width
	}
	if req.Height != nil {
		spec.Height = *req.Height
	}
	if req.Margin != nil {
		spec.Margin = *req.Margin
	}
	if req.X != nil {
		spec.OriginX = *req.X
	}
	if req.Y != nil {
		spec.OriginY = *req.Y
	}
	return spec
}

func (s *Server) populate(w http.ResponseWriter, r *http.Request) {
	var req populateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.respondError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	if err := validate.Struct(req); err != nil {
		s.respondError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request: %s", strings.TrimSpace(err.Error())))
		return
	}
	if err := errors.ValidateCanvasPath(req.Canvas); err != nil {
		s.respondError(w, err)
		return
	}
	color := req.Color
	if color == "" {
		color = s.settings.Color
	}
	if color != "" && !settings.IsCanvasColor(color) {
		s.respondError(w, errors.New(errors.ErrCodeInvalidInput, "invalid color: %q", color))
		return
	}

	filter := vault.Filter{Query: req.Query, Tags: req.Tags}
	pool := vault.Paths(filter.Apply(s.index.Notes()))

	anchor := populate.AnchorOrigin
	if req.Below {
		anchor = populate.AnchorBelow
	}
	path := filepath.Join(s.root, filepath.FromSlash(req.Canvas))

	unlock := s.locks.lock(path)
	defer unlock()

	res, err := s.runner.RunFile(r.Context(), path, populate.Request{
		Pool:         pool,
		Spec:         req.spec(s.settings),
		Seed:         req.Seed,
		Color:        color,
		SkipExisting: req.SkipExisting,
		Anchor:       anchor,
		DryRun:       req.DryRun,
		Canvas:       req.Canvas,
	})
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, populateResponse{
		RunID:     res.RunID,
		Canvas:    req.Canvas,
		Added:     len(res.Added),
		Requested: res.Requested(),
		Shortfall: res.Shortfall(),
		Seed:      res.Seed(),
		DryRun:    req.DryRun,
		Nodes:     res.Added,
	})
}

// =============================================================================
// Responses
// =============================================================================

type errorResponse struct {
	Error   errors.Code `json:"error"`
	Message string      `json:"message"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := statusFor(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("populate failed", "err", err)
	}
	s.respondJSON(w, status, errorResponse{Error: code, Message: errors.UserMessage(err)})
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.IsInvalid(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeNoCandidates), errors.Is(err, errors.ErrCodeFileNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
