// Package cascade deletes a record together with everything that hangs off it. The
// deletes span several collections and two databases, so they run as a saga: each step
// knows how to put back what it removed.
package cascade

import (
	"context"
	"errors"
	"fmt"

	"github.com/cypheredvortex/mern-social-media-sub000/internal/metrics"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/models"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/repositories"
	"github.com/cypheredvortex/mern-social-media-sub000/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Step is one unit of a saga. Undo must be safe to call after a partial Do.
type Step struct {
	Name string
	Do   func(ctx context.Context) error
	Undo func(ctx context.Context) error
}

type Saga struct {
	name  string
	steps []Step
}

func NewSaga(name string, steps ...Step) *Saga {
	return &Saga{name: name, steps: steps}
}

// Add appends steps to the end of the saga
func (s *Saga) Add(steps ...Step) *Saga {
	s.steps = append(s.steps, steps...)
	return s
}

// Run executes the steps in order. When a step fails, that step and every step before
// it are undone in reverse order and the step's error is returned.
func (s *Saga) Run(ctx context.Context) error {
	for i, step := range s.steps {
		if err := step.Do(ctx); err != nil {
			// Compensation must finish even when the request is cancelled.
			s.compensate(context.WithoutCancel(ctx), s.steps[:i+1])
			return fmt.Errorf("%s: %s: %w", s.name, step.Name, err)
		}
	}
	return nil
}

func (s *Saga) compensate(ctx context.Context, done []Step) {
	result := "restored"
	for i := len(done) - 1; i >= 0; i-- {
		if done[i].Undo == nil {
			continue
		}
		if err := done[i].Undo(ctx); err != nil {
			result = "failed"
			logger.Log.Error("saga compensation failed",
				zap.String("saga", s.name),
				zap.String("step", done[i].Name),
				zap.Error(err),
			)
		}
	}
	metrics.Get().SagaCompensations.WithLabelValues(s.name, result).Inc()
	logger.Log.Warn("saga rolled back", zap.String("saga", s.name), zap.String("result", result))
}

// purge deletes every record matching a filter and remembers them for Undo. The filter
// is evaluated when the step runs so it can depend on earlier steps.
type purge[T models.Identified] struct {
	store   repositories.Store[T]
	filter  func() (repositories.Filter, bool)
	deleted []T
}

func purgeWhere[T models.Identified](store repositories.Store[T], filter repositories.Filter) *purge[T] {
	return &purge[T]{store: store, filter: func() (repositories.Filter, bool) { return filter, true }}
}

func (p *purge[T]) step(name string) Step {
	return Step{
		Name: name,
		Do: func(ctx context.Context) error {
			filter, ok := p.filter()
			if !ok {
				return nil
			}
			docs, err := p.store.List(ctx, repositories.ListOptions{Filter: filter})
			if err != nil {
				return err
			}
			p.deleted = docs
			if len(docs) == 0 {
				return nil
			}
			keys := make([]string, len(docs))
			for i, d := range docs {
				keys[i] = d.Key()
			}
			_, err = p.store.DeleteKeys(ctx, keys)
			return err
		},
		Undo: func(ctx context.Context) error {
			return p.store.Restore(ctx, p.deleted)
		},
	}
}

// ids returns the object ids of the deleted records as an In set
func ids[T any](docs []T, id func(T) primitive.ObjectID) repositories.In {
	out := make(repositories.In, 0, len(docs))
	for _, d := range docs {
		out = append(out, id(d))
	}
	return out
}

// counterStep subtracts one from field on every target. Only the decrements that changed
// a counter are added back on Undo, so a counter already at zero stays at zero.
func counterStep[T any](name string, store repositories.CounterStore[T], field string, targets func() []primitive.ObjectID) Step {
	var applied []primitive.ObjectID
	return Step{
		Name: name,
		Do: func(ctx context.Context) error {
			for _, id := range targets() {
				changed, err := store.Increment(ctx, id.Hex(), field, -1)
				if err != nil {
					return err
				}
				if changed {
					applied = append(applied, id)
				}
			}
			return nil
		},
		Undo: func(ctx context.Context) error {
			var errs []error
			for _, id := range applied {
				if _, err := store.Increment(ctx, id.Hex(), field, 1); err != nil && !errors.Is(err, repositories.ErrNotFound) {
					errs = append(errs, err)
				}
			}
			return errors.Join(errs...)
		},
	}
}
