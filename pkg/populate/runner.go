package populate

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/canvasrand/pkg/canvas"
	"github.com/matzehuels/canvasrand/pkg/errors"
	"github.com/matzehuels/canvasrand/pkg/grid"
	"github.com/matzehuels/canvasrand/pkg/observability"
	"github.com/matzehuels/canvasrand/pkg/place"
	"github.com/matzehuels/canvasrand/pkg/sample"
)

// Plan is what a run is about to do. It is handed to [ConfirmFunc] before
// the document changes.
type Plan struct {
	RunID  string
	Canvas string

	// Selected holds the sampled paths in placement order.
	Selected []string
	// Points holds the top-left corner of each selected note.
	Points []grid.Point
	// Spec is the placement after reconciling Count and the origin.
	Spec grid.Spec

	Requested int
	Shortfall int
	Seed      uint64
}

// ConfirmFunc is asked to approve a plan. Returning false cancels the run
// without error.
type ConfirmFunc func(ctx context.Context, p Plan) (bool, error)

// Result contains the outcome of a run.
type Result struct {
	RunID string

	// Document is the updated canvas, or the original one when the plan was
	// declined.
	Document canvas.Document

	// Added holds the new nodes. Empty when nothing was applied.
	Added []canvas.Node

	Plan Plan

	// Applied reports whether the plan was confirmed and appended.
	Applied bool
	// Written reports whether RunFile saved the document.
	Written bool

	Duration time.Duration
}

// Requested is the number of notes asked for.
func (r *Result) Requested() int { return r.Plan.Requested }

// Shortfall is how many fewer notes were placed than requested.
func (r *Result) Shortfall() int { return r.Plan.Shortfall }

// Seed is the seed used for sampling.
func (r *Result) Seed() uint64 { return r.Plan.Seed }

// Runner executes populate runs.
//
// The Runner holds no per-run state. Multiple goroutines can use the same
// Runner; writes to one canvas file must be serialized by the caller.
type Runner struct {
	Logger *log.Logger

	// Confirm approves plans. Nil approves everything.
	Confirm ConfirmFunc
}

// NewRunner creates a runner. A nil logger discards output.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{Logger: logger}
}

// Run adds notes from req.Pool to doc. doc is never modified; the updated
// document is returned in the result.
func (r *Runner) Run(ctx context.Context, doc canvas.Document, req Request) (res *Result, err error) {
	start := time.Now()
	runID := uuid.NewString()
	logger := r.logger(req).With("run", runID[:8])

	defer func() {
		added := 0
		if res != nil {
			added = len(res.Added)
		}
		observability.Populate().OnPopulateComplete(ctx, req.Canvas, added, time.Since(start), err)
	}()

	if err := req.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	pool := req.Pool
	if len(pool) == 0 {
		return nil, errors.New(errors.ErrCodeNoCandidates, "no candidates available")
	}
	if req.SkipExisting {
		pool = withoutExisting(doc, pool)
		if len(pool) == 0 {
			return nil, errors.New(errors.ErrCodeNoCandidates, "every candidate is already on the canvas")
		}
		logger.Debug("skipped notes already on canvas", "skipped", len(req.Pool)-len(pool))
	}

	plan := r.plan(ctx, doc, pool, req)
	plan.RunID = runID
	if plan.Shortfall > 0 {
		logger.Warn("not enough candidates, using all available",
			"requested", plan.Requested,
			"available", len(plan.Selected))
	}

	res = &Result{RunID: runID, Document: doc, Added: []canvas.Node{}, Plan: plan}

	if r.Confirm != nil {
		ok, err := r.Confirm(ctx, plan)
		if err != nil {
			return nil, fmt.Errorf("confirm: %w", err)
		}
		if !ok {
			logger.Info("populate cancelled")
			res.Duration = time.Since(start)
			return res, nil
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res.Added = place.Assemble(plan.Selected, plan.Spec, &place.Options{Color: req.Color})
	res.Document = doc.Append(res.Added...)
	res.Applied = true
	res.Duration = time.Since(start)

	logger.Info("placed notes",
		"added", len(res.Added),
		"seed", plan.Seed,
		"duration", res.Duration.Round(time.Microsecond))
	return res, nil
}

// RunFile reads the canvas at path, runs req against it and writes it back
// unless the run is a dry run or was declined. A missing file starts from
// an empty canvas.
func (r *Runner) RunFile(ctx context.Context, path string, req Request) (*Result, error) {
	if err := errors.ValidateCanvasName(path); err != nil {
		return nil, err
	}
	doc, err := canvas.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if req.Canvas == "" {
		req.Canvas = path
	}

	res, err := r.Run(ctx, doc, req)
	if err != nil {
		return nil, err
	}
	if !res.Applied || req.DryRun {
		return res, nil
	}
	if err := canvas.WriteFile(path, res.Document); err != nil {
		return nil, fmt.Errorf("write canvas: %w", err)
	}
	res.Written = true
	return res, nil
}

// plan samples the pool and works out where the notes go.
func (r *Runner) plan(ctx context.Context, doc canvas.Document, pool []string, req Request) Plan {
	s := sample.New(req.Seed)
	requested := req.Spec.Count
	selected := sample.Sample(s, pool, requested)
	observability.Populate().OnSample(ctx, requested, len(selected), s.Seed())

	spec := req.Spec
	spec.Count = len(selected)
	if req.Anchor == AnchorBelow {
		if b, ok := doc.Bounds(); ok {
			spec = spec.WithOrigin(b.X, b.Bottom()+spec.Margin)
		}
	}

	return Plan{
		Canvas:    req.Canvas,
		Selected:  selected,
		Points:    grid.Layout(spec.Count, spec),
		Spec:      spec,
		Requested: requested,
		Shortfall: sample.Shortfall(requested, len(selected)),
		Seed:      s.Seed(),
	}
}

func (r *Runner) logger(req Request) *log.Logger {
	if req.Logger != nil {
		return req.Logger
	}
	return r.Logger
}

// withoutExisting drops paths that already have a file node on doc.
func withoutExisting(doc canvas.Document, pool []string) []string {
	onCanvas := make(map[string]bool)
	for _, f := range doc.Files() {
		onCanvas[f] = true
	}
	out := make([]string, 0, len(pool))
	for _, p := range pool {
		if !onCanvas[p] {
			out = append(out, p)
		}
	}
	return out
}
