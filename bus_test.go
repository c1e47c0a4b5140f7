package corobus_test

import (
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corobus/corobus"
	"github.com/corobus/corobus/errno"
	"github.com/corobus/corobus/internal/fiber"
)

// Scenario 1: capacity-1 ping-pong.
func TestPingPong(t *testing.T) {
	runtime.GOMAXPROCS(1)
	bus := corobus.New()
	desc := bus.Open(1)

	senderDone := make(chan error, 1)
	fiber.Spawn(context.Background(), func(ctx context.Context) {
		senderDone <- firstErr(
			bus.Send(ctx, desc, 7),
			bus.Send(ctx, desc, 8),
		)
	})

	var received []corobus.Message
	receiverDone := make(chan error, 1)
	fiber.Spawn(context.Background(), func(ctx context.Context) {
		for i := 0; i < 2; i++ {
			m, err := bus.Recv(ctx, desc)
			if err != nil {
				receiverDone <- err
				return
			}
			received = append(received, m)
		}
		receiverDone <- nil
	})

	require.NoError(t, <-senderDone)
	require.NoError(t, <-receiverDone)
	assert.Equal(t, []corobus.Message{7, 8}, received)
}

// Scenario 2: sender backpressure.
func TestSenderBackpressure(t *testing.T) {
	runtime.GOMAXPROCS(1)
	bus := corobus.New()
	desc := bus.Open(2)

	values := []corobus.Message{10, 11, 12}
	senderDone := make([]chan error, len(values))
	for i, v := range values {
		senderDone[i] = make(chan error, 1)
		v := v
		done := senderDone[i]
		fiber.Spawn(context.Background(), func(ctx context.Context) {
			done <- bus.Send(ctx, desc, v)
		})
	}

	var received []corobus.Message
	receiverDone := make(chan error, 1)
	fiber.Spawn(context.Background(), func(ctx context.Context) {
		for range values {
			m, err := bus.Recv(ctx, desc)
			if err != nil {
				receiverDone <- err
				return
			}
			received = append(received, m)
		}
		receiverDone <- nil
	})

	for _, done := range senderDone {
		require.NoError(t, <-done)
	}
	require.NoError(t, <-receiverDone)
	assert.Equal(t, values, received)
}

// Scenario 3: broadcast fan-out.
func TestBroadcastFanOut(t *testing.T) {
	bus := corobus.New()
	c1 := bus.Open(1)
	c2 := bus.Open(1)

	require.NoError(t, bus.TryBroadcast(99))

	m1, err := bus.TryRecv(c1)
	require.NoError(t, err)
	assert.Equal(t, corobus.Message(99), m1)

	m2, err := bus.TryRecv(c2)
	require.NoError(t, err)
	assert.Equal(t, corobus.Message(99), m2)
}

func TestBroadcastBlockedLeavesOthersUnchanged(t *testing.T) {
	bus := corobus.New()
	c1 := bus.Open(1)
	c2 := bus.Open(1)

	require.NoError(t, bus.TrySend(c1, 1))

	err := bus.TryBroadcast(99)
	require.Error(t, err)
	assert.Equal(t, errno.WouldBlock, errno.CodeOf(err))

	_, err = bus.TryRecv(c2)
	require.Error(t, err, "c2 must remain empty: a blocked broadcast has no side effects")
	assert.Equal(t, errno.WouldBlock, errno.CodeOf(err))
}

// Scenario 4: close with a waiter.
func TestCloseWithWaiters(t *testing.T) {
	bus := corobus.New()
	desc := bus.Open(1)

	result := make(chan error, 1)
	fiber.Spawn(context.Background(), func(ctx context.Context) {
		_, err := bus.Recv(ctx, desc)
		result <- err
	})

	runtime.Gosched()
	bus.Close(desc)

	err := <-result
	require.Error(t, err)
	assert.Equal(t, errno.NoChannel, errno.CodeOf(err))
}

// Scenario 5: descriptor reuse.
func TestDescriptorReuse(t *testing.T) {
	bus := corobus.New()
	bus.Open(1) // d=0
	d1 := bus.Open(1)
	bus.Open(1) // d=2

	bus.Close(d1)

	reused := bus.Open(1)
	assert.Equal(t, d1, reused)
}

// Scenario 6: vectorised partial send.
func TestVectorSendPartial(t *testing.T) {
	bus := corobus.New()
	desc := bus.Open(3)
	require.NoError(t, bus.TrySend(desc, 100)) // [100]

	n, err := bus.TrySendV(desc, []corobus.Message{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	out := make([]corobus.Message, 3)
	read, err := bus.TryRecvV(desc, out)
	require.NoError(t, err)
	assert.Equal(t, 3, read)
	assert.Equal(t, []corobus.Message{100, 1, 2}, out)

	_, err = bus.TrySendV(desc, []corobus.Message{5})
	require.NoError(t, err) // channel is now empty again, so this succeeds...

	// Refill to capacity and show the next vector send reports WouldBlock.
	_, err = bus.TrySendV(desc, []corobus.Message{6, 7})
	require.NoError(t, err)
	_, err = bus.TrySendV(desc, []corobus.Message{8})
	require.Error(t, err)
	assert.Equal(t, errno.WouldBlock, errno.CodeOf(err))
}

func TestTrySendVZeroCountIsNotAnError(t *testing.T) {
	bus := corobus.New()
	desc := bus.Open(1)
	n, err := bus.TrySendV(desc, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestTryRecvVZeroCapacityIsNotAnError(t *testing.T) {
	bus := corobus.New()
	desc := bus.Open(1)
	require.NoError(t, bus.TrySend(desc, 1))
	n, err := bus.TryRecvV(desc, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestTrySendNoChannel(t *testing.T) {
	bus := corobus.New()
	err := bus.TrySend(42, 1)
	require.Error(t, err)
	assert.Equal(t, errno.NoChannel, errno.CodeOf(err))
}

func TestOpenRejectsNonPositiveCapacity(t *testing.T) {
	bus := corobus.New()
	desc := bus.Open(0)
	assert.Equal(t, -1, desc)
	assert.Equal(t, errno.InvalidCapacity, errno.Get())
}

func TestCloseIsIdempotent(t *testing.T) {
	bus := corobus.New()
	desc := bus.Open(1)
	bus.Close(desc)
	assert.NotPanics(t, func() { bus.Close(desc) })
}

func TestDeleteClosesEveryChannel(t *testing.T) {
	bus := corobus.New()
	desc := bus.Open(1)
	bus.Delete()

	_, err := bus.TryRecv(desc)
	require.Error(t, err)
	assert.Equal(t, errno.NoChannel, errno.CodeOf(err))
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
