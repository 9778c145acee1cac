package worker

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/frain-dev/partrotate/pkg/log"
)

func TestScheduler_StopCancelsJobContext(t *testing.T) {
	s := NewScheduler(log.NewLogger(io.Discard))

	err := s.RegisterJob("@every 24h", "partition-maintenance", func(ctx context.Context, jobID string) {})
	require.NoError(t, err)

	s.Start()
	require.NoError(t, s.ctx.Err())

	// Stop must cancel the context handed to running jobs so an in-flight
	// maintenance batch winds down instead of being abandoned.
	s.Stop()
	require.ErrorIs(t, s.ctx.Err(), context.Canceled)
}

func TestScheduler_RejectsMalformedSpec(t *testing.T) {
	s := NewScheduler(log.NewLogger(io.Discard))

	err := s.RegisterJob("not-a-spec", "partition-maintenance", func(ctx context.Context, jobID string) {})
	require.Error(t, err)
}
