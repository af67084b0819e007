package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextStatus(t *testing.T) {
	tests := []struct {
		current  Status
		expected Status
		ok       bool
	}{
		{StatusPending, StatusPaid, true},
		{StatusPaid, StatusShipped, true},
		{StatusShipped, StatusDelivered, true},
		{StatusDelivered, "", false},
		{StatusCancelled, "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.current), func(t *testing.T) {
			next, ok := NextStatus(tt.current)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, next)
		})
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name     string
		from, to Status
		allowed  bool
	}{
		{"pending to paid", StatusPending, StatusPaid, true},
		{"paid to shipped", StatusPaid, StatusShipped, true},
		{"shipped to delivered", StatusShipped, StatusDelivered, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"paid to cancelled", StatusPaid, StatusCancelled, true},
		{"shipped to cancelled", StatusShipped, StatusCancelled, true},
		{"skip pending to shipped", StatusPending, StatusShipped, false},
		{"skip paid to delivered", StatusPaid, StatusDelivered, false},
		{"backwards shipped to paid", StatusShipped, StatusPaid, false},
		{"delivered is terminal", StatusDelivered, StatusCancelled, false},
		{"cancelled is terminal", StatusCancelled, StatusPending, false},
		{"self transition", StatusPaid, StatusPaid, false},
		{"unknown target", StatusPaid, Status("refunded"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

// Every walk produced by legal transitions ends in a terminal state and never leaves it.
func TestStatusMonotonicity(t *testing.T) {
	for _, start := range AllStatuses {
		for _, target := range AllStatuses {
			if start.IsTerminal() {
				assert.False(t, CanTransition(start, target), "%s -> %s", start, target)
			}
		}
	}

	walk := []Status{StatusPending}
	for {
		next, ok := NextStatus(walk[len(walk)-1])
		if !ok {
			break
		}
		walk = append(walk, next)
	}
	assert.Equal(t, []Status{StatusPending, StatusPaid, StatusShipped, StatusDelivered}, walk)
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("shipped")
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, s)

	_, err = ParseStatus("lost")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestOrder_Transition(t *testing.T) {
	created := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	later := created.Add(time.Hour)

	order := Order{ID: "order_1", Status: StatusPaid, CreatedAt: created, UpdatedAt: created}
	before := order.Clone()

	require.NoError(t, order.Transition(StatusShipped, later))
	assert.Equal(t, StatusShipped, order.Status)
	assert.Equal(t, later, order.UpdatedAt)
	assert.Equal(t, before.CreatedAt, order.CreatedAt)
	assert.Equal(t, before.Total, order.Total)

	err := order.Transition(StatusPending, later.Add(time.Hour))
	assert.ErrorIs(t, err, ErrInvalidTransition)
	var te *TransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, StatusShipped, te.From)
	assert.Equal(t, later, order.UpdatedAt, "rejected transition must not touch UpdatedAt")
}
