package waitq

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corobus/corobus/internal/fiber"
)

func TestWakeOneIsFIFO(t *testing.T) {
	var q Queue

	var order []int
	started := make(chan struct{}, 2)
	done := make(chan struct{}, 2)

	fiber.Spawn(context.Background(), func(ctx context.Context) {
		started <- struct{}{}
		q.PushAndSuspend(ctx)
		order = append(order, 1)
		done <- struct{}{}
	})
	<-started
	time.Sleep(5 * time.Millisecond)

	fiber.Spawn(context.Background(), func(ctx context.Context) {
		started <- struct{}{}
		q.PushAndSuspend(ctx)
		order = append(order, 2)
		done <- struct{}{}
	})
	<-started
	time.Sleep(5 * time.Millisecond)

	require.Equal(t, 2, q.Len())
	assert.True(t, q.WakeOne())
	<-done
	assert.True(t, q.WakeOne())
	<-done

	assert.Equal(t, []int{1, 2}, order)
	assert.Equal(t, 0, q.Len())
}

func TestWakeOneOnEmptyQueueReportsFalse(t *testing.T) {
	var q Queue
	assert.False(t, q.WakeOne())
}

func TestWakeAllDrainsQueue(t *testing.T) {
	var q Queue
	done := make(chan struct{}, 3)
	for i := 0; i < 3; i++ {
		fiber.Spawn(context.Background(), func(ctx context.Context) {
			q.PushAndSuspend(ctx)
			done <- struct{}{}
		})
	}
	time.Sleep(5 * time.Millisecond)
	require.Equal(t, 3, q.Len())

	q.WakeAll()
	for i := 0; i < 3; i++ {
		<-done
	}
	assert.Equal(t, 0, q.Len())
}
