// Package populate adds randomly chosen notes to a canvas document.
//
// This package is the orchestration layer around the pure core: it is used
// by the CLI and the HTTP service so both behave the same way.
//
// # Stages
//
// A run goes through these steps:
//
//  1. Validate: check the placement spec and request options
//  2. Select: drop candidates already on the canvas (optional), then sample
//  3. Plan: reconcile the count to what was sampled and pick the origin
//  4. Confirm: hand the plan to the caller and wait for an answer
//  5. Apply: assemble file nodes and append them to the document
//
// Nothing is written when the pool is empty, the grid spec is invalid, or the
// caller declines the plan.
//
// # Usage
//
//	runner := populate.NewRunner(logger)
//	runner.Confirm = func(ctx context.Context, p populate.Plan) (bool, error) {
//	    return askUser(p), nil
//	}
//	res, err := runner.RunFile(ctx, "Board.canvas", populate.Request{
//	    Pool: paths,
//	    Spec: grid.DefaultSpec(),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(len(res.Added), "notes added")
package populate
