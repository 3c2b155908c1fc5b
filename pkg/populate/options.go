package populate

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/canvasrand/pkg/errors"
	"github.com/matzehuels/canvasrand/pkg/grid"
)

// =============================================================================
// Anchors
// =============================================================================

// Anchor decides where the first new node goes.
type Anchor string

const (
	// AnchorOrigin places the grid at the grid spec's origin.
	AnchorOrigin Anchor = "origin"
	// AnchorBelow places the grid under the existing nodes, aligned to
	// their left edge. An empty canvas falls back to the grid spec's origin.
	AnchorBelow Anchor = "below"
)

// ValidAnchors is the set of supported anchors.
var ValidAnchors = map[Anchor]bool{
	AnchorOrigin: true,
	AnchorBelow:  true,
}

// ValidateAnchor checks that an anchor is valid.
func ValidateAnchor(a Anchor) error {
	if !ValidAnchors[a] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid anchor: %q (must be one of: origin, below)", a)
	}
	return nil
}

// =============================================================================
// Request
// =============================================================================

// Request describes one populate run. It supports JSON so the HTTP service
// can log it.
type Request struct {
	// Pool holds the candidate paths. Order matters only for replay.
	Pool []string `json:"pool"`

	// Spec is the placement. Spec.Count is the number of notes requested.
	Spec grid.Spec `json:"spec"`

	// Seed makes the selection reproducible. Zero picks a random seed,
	// which is reported in the result.
	Seed uint64 `json:"seed,omitempty"`

	// Color is set on every new node. Empty means the canvas default.
	Color string `json:"color,omitempty"`

	// SkipExisting drops candidates that already have a file node on the
	// canvas.
	SkipExisting bool `json:"skip_existing,omitempty"`

	Anchor Anchor `json:"anchor,omitempty"`

	// DryRun computes the result without writing the canvas file.
	DryRun bool `json:"dry_run,omitempty"`

	// Canvas names the document in logs and hooks.
	Canvas string `json:"canvas,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks the request and fills in defaults.
// It is idempotent.
func (r *Request) ValidateAndSetDefaults() error {
	if r.validated {
		return nil
	}
	if r.Anchor == "" {
		r.Anchor = AnchorOrigin
	}
	if err := ValidateAnchor(r.Anchor); err != nil {
		return err
	}
	if err := r.Spec.Validate(); err != nil {
		return err
	}
	r.validated = true
	return nil
}
