package signal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulateInterrupt(t *testing.T) {
	order := make([]int, 0, 2)
	AddInterruptHandler(func() { order = append(order, 1) })
	AddInterruptHandler(func() { order = append(order, 2) })
	ctx, cancel := WithInterrupt(context.Background())
	defer cancel()

	assert.False(t, InterruptRequested())
	SimulateInterrupt()

	select {
	case <-InterruptHandlersDone:
	case <-time.After(5 * time.Second):
		t.Fatal("interrupt handlers did not run")
	}
	require.True(t, InterruptRequested())
	assert.Equal(t, []int{2, 1}, order)
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}
