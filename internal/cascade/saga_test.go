package cascade

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordingStep(name string, log *[]string, fail error) Step {
	return Step{
		Name: name,
		Do: func(ctx context.Context) error {
			*log = append(*log, "do "+name)
			return fail
		},
		Undo: func(ctx context.Context) error {
			*log = append(*log, "undo "+name)
			return nil
		},
	}
}

func TestSagaRunsStepsInOrder(t *testing.T) {
	var log []string
	err := NewSaga("test", recordingStep("a", &log, nil)).
		Add(recordingStep("b", &log, nil)).
		Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"do a", "do b"}, log)
}

func TestSagaCompensatesInReverseOrder(t *testing.T) {
	var log []string
	boom := errors.New("boom")
	saga := NewSaga("test",
		recordingStep("a", &log, nil),
		recordingStep("b", &log, nil),
		recordingStep("c", &log, boom),
		recordingStep("d", &log, nil),
	)

	err := saga.Run(context.Background())

	require.ErrorIs(t, err, boom)
	assert.EqualError(t, err, "test: c: boom")
	assert.Equal(t, []string{"do a", "do b", "do c", "undo c", "undo b", "undo a"}, log)
}

func TestSagaKeepsCompensatingAfterUndoFailure(t *testing.T) {
	var log []string
	broken := Step{
		Name: "broken",
		Do:   func(ctx context.Context) error { return nil },
		Undo: func(ctx context.Context) error {
			log = append(log, "undo broken")
			return errors.New("cannot undo")
		},
	}
	err := NewSaga("test", recordingStep("a", &log, nil), broken, recordingStep("c", &log, errors.New("x"))).
		Run(context.Background())

	require.Error(t, err)
	assert.Equal(t, []string{"do a", "do c", "undo c", "undo broken", "undo a"}, log)
}

func TestSagaCompensatesWithCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var undoErr error
	step := Step{
		Name: "a",
		Do: func(ctx context.Context) error {
			cancel()
			return ctx.Err()
		},
		Undo: func(ctx context.Context) error {
			undoErr = ctx.Err()
			return nil
		},
	}

	err := NewSaga("test", step).Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.NoError(t, undoErr)
}
