package plan

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"directive-mapper/internal/diagnostic"
	"directive-mapper/internal/directive"
)

// ResolveAll resolves every type concurrently. Types are independent; the first
// failure cancels the remaining work and is returned. Plan order follows tds.
func (r *Resolver) ResolveAll(ctx context.Context, tds []*directive.TypeDescriptor) (*Plan, error) {
	plans := make([]*TypePlan, len(tds))

	g, ctx := errgroup.WithContext(ctx)
	if r.config.Parallelism > 0 {
		g.SetLimit(r.config.Parallelism)
	}

	for i, td := range tds {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			tp, err := r.Resolve(td)
			if err != nil {
				return fmt.Errorf("resolve %s: %w", td.ID(), err)
			}

			plans[i] = tp

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Plan{Types: plans}, nil
}

// Check resolves every type and collects one diagnostic per failing type
// instead of stopping at the first failure. Valid plans are returned as well.
func (r *Resolver) Check(ctx context.Context, tds []*directive.TypeDescriptor) (*Plan, diagnostic.Diagnostics) {
	plans := make([]*TypePlan, len(tds))
	errs := make([]error, len(tds))

	g, ctx := errgroup.WithContext(ctx)
	if r.config.Parallelism > 0 {
		g.SetLimit(r.config.Parallelism)
	}

	for i, td := range tds {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}

			plans[i], errs[i] = r.Resolve(td)

			return nil
		})
	}

	_ = g.Wait()

	var (
		diags diagnostic.Diagnostics
		ok    []*TypePlan
	)

	for i, err := range errs {
		if err != nil {
			diags.AddErr(err, tds[i].ID())
			continue
		}

		ok = append(ok, plans[i])
	}

	return &Plan{Types: ok}, diags
}
