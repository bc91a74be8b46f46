package scenario

import (
	"context"
	"fmt"
	"maps"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/rshade/baghouse/internal/logging"
	"github.com/rshade/baghouse/internal/session"
)

// Result is the outcome of evaluating one scenario.
type Result struct {
	Path     string           `json:"path,omitempty"`
	Name     string           `json:"name"`
	Snapshot session.Snapshot `json:"snapshot"`
	Err      error            `json:"-"`
	Error    string           `json:"error,omitempty"`
}

// Evaluator runs scenarios in fresh sessions.
type Evaluator struct {
	// Defaults are applied underneath every scenario's inputs.
	Defaults map[string]string

	// SessionOptions configure each session.
	SessionOptions []session.Option

	// Limit caps concurrent evaluations in EvaluateAll; 0 means runtime.NumCPU().
	Limit int
}

// Evaluate applies sc to a new session and returns its final snapshot.
func (e Evaluator) Evaluate(ctx context.Context, sc *Scenario) (session.Snapshot, error) {
	opts := append(append([]session.Option{}, e.SessionOptions...), session.WithName(sc.Name))
	sess := session.New(ctx, opts...)

	inputs := make(map[string]string, len(e.Defaults)+len(sc.Inputs))
	maps.Copy(inputs, e.Defaults)
	maps.Copy(inputs, sc.RawInputs())

	snap, err := sess.ApplyAll(inputs)
	if err != nil {
		return snap, fmt.Errorf("evaluating scenario %q: %w", sc.Name, err)
	}

	logging.FromContext(ctx).Debug().
		Str("component", "scenario").
		Str("scenario", sc.Name).
		Str("session_id", snap.SessionID).
		Int("advisories", len(snap.Advisories)).
		Msg("scenario evaluated")
	return snap, nil
}

// EvaluateAll loads and evaluates every path concurrently, one session per
// file. Per-file failures are reported in the Result; the returned error is
// only set when ctx is cancelled. Results keep the order of paths.
func (e Evaluator) EvaluateAll(ctx context.Context, paths []string) ([]Result, error) {
	results := make([]Result, len(paths))

	limit := e.Limit
	if limit <= 0 {
		limit = runtime.NumCPU()
	}
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			results[i] = e.evaluatePath(gCtx, path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, fmt.Errorf("batch evaluation: %w", err)
	}
	return results, nil
}

func (e Evaluator) evaluatePath(ctx context.Context, path string) Result {
	res := Result{Path: path}
	sc, err := Load(path)
	if err != nil {
		res.Err = err
		res.Error = err.Error()
		logging.FromContext(ctx).Warn().
			Str("component", "scenario").
			Str("path", path).
			Err(err).
			Msg("scenario failed to load")
		return res
	}
	res.Name = sc.Name

	res.Snapshot, err = e.Evaluate(ctx, sc)
	if err != nil {
		res.Err = err
		res.Error = err.Error()
	}
	return res
}
