package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var base = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func at(hour int) time.Time {
	return base.Add(time.Duration(hour) * time.Hour)
}

func TestValidateEventDates(t *testing.T) {
	now := at(0)

	assert.NoError(t, ValidateEventDates(at(1), at(5), now))

	err := ValidateEventDates(at(5), at(1), now)
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	err = ValidateEventDates(at(-1), at(5), now)
	assert.ErrorIs(t, err, ErrPastStartDate)
}

func TestValidateSessionWindow(t *testing.T) {
	eventStart, eventEnd := at(0), at(24)

	assert.NoError(t, ValidateSessionWindow(at(10), at(12), eventStart, eventEnd))

	// whole event span is allowed
	assert.NoError(t, ValidateSessionWindow(eventStart, eventEnd, eventStart, eventEnd))

	err := ValidateSessionWindow(at(12), at(10), eventStart, eventEnd)
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	err = ValidateSessionWindow(at(-1), at(2), eventStart, eventEnd)
	assert.ErrorIs(t, err, ErrOutOfEventBounds)

	err = ValidateSessionWindow(at(23), at(25), eventStart, eventEnd)
	assert.ErrorIs(t, err, ErrOutOfEventBounds)
}

func TestOverlaps(t *testing.T) {
	// existing session holds [10:00, 12:00)
	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"contained", at(10), at(11), true},
		{"straddles end", at(11), at(13), true},
		{"straddles start", at(9), at(11), true},
		{"covers", at(9), at(13), true},
		{"touches end boundary", at(12), at(13), false},
		{"touches start boundary", at(8), at(10), false},
		{"disjoint after", at(13), at(14), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(at(10), at(12), tt.start, tt.end))
		})
	}
}

func TestCanRegister(t *testing.T) {
	assert.NoError(t, CanRegister(0, 1))
	assert.NoError(t, CanRegister(9, 10))
	assert.ErrorIs(t, CanRegister(10, 10), ErrEventAtCapacity)
	assert.ErrorIs(t, CanRegister(11, 10), ErrEventAtCapacity)
}

func TestCanConfirm(t *testing.T) {
	assert.NoError(t, CanConfirm(0, 1))
	assert.ErrorIs(t, CanConfirm(1, 1), ErrEventAtCapacity)
}

func TestCanJoinSession(t *testing.T) {
	// unbounded session
	assert.NoError(t, CanJoinSession(1000, nil))

	cap := int64(2)
	assert.NoError(t, CanJoinSession(1, &cap))
	assert.ErrorIs(t, CanJoinSession(2, &cap), ErrSessionAtCapacity)
}

func TestAsError(t *testing.T) {
	de, ok := AsError(ErrEventAtCapacity)
	assert.True(t, ok)
	assert.Equal(t, KindEventAtCapacity, de.Kind)

	_, ok = AsError(ErrNotFound)
	assert.False(t, ok)
}
