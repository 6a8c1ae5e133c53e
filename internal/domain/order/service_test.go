package order

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name     string
		position int
		wantMins int
		wantDone bool
	}{
		{name: "next in line", position: 1, wantMins: 2, wantDone: true},
		{name: "waiting", position: 4, wantMins: 8},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewServiceWithPosition(func() int { return tc.position })

			status, err := svc.Status(12)
			require.NoError(t, err)
			assert.Equal(t, 12, status.OrderNumber)
			assert.Equal(t, tc.position, status.QueuePosition)
			assert.Equal(t, time.Duration(tc.wantMins)*time.Minute, status.EstimatedWait)
			assert.Equal(t, tc.wantMins, status.EstimatedMins)
			assert.Equal(t, tc.wantDone, status.Ready)
		})
	}
}

func TestStatus_RandomPositionInRange(t *testing.T) {
	svc := NewService()
	for i := 0; i < 100; i++ {
		status, err := svc.Status(3)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, status.QueuePosition, 1)
		assert.LessOrEqual(t, status.QueuePosition, MaxQueuePosition)
	}
}

func TestStatus_NoOrder(t *testing.T) {
	_, err := NewService().Status(0)
	assert.ErrorIs(t, err, ErrNoOrder)
}

func TestTicket(t *testing.T) {
	data, err := NewService().Ticket(7)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())

	_, err = NewService().Ticket(-1)
	assert.ErrorIs(t, err, ErrNoOrder)
	assert.Equal(t, "CANTEEN-ORDER-7", TicketPayload(7))
}
