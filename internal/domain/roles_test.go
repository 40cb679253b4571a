package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveRoles(t *testing.T) {
	organizer := Identity{UserID: 1}
	attendee := Identity{UserID: 2}
	staff := Identity{UserID: 3, IsStaff: true}
	stranger := Identity{UserID: 4}

	r := ResolveRoles(organizer, 1, 2)
	assert.True(t, r.Organizer)
	assert.False(t, r.Attendee)
	assert.True(t, r.CanMutate())
	assert.True(t, r.CanCancel())

	r = ResolveRoles(attendee, 1, 2)
	assert.True(t, r.Attendee)
	assert.False(t, r.CanMutate())
	assert.True(t, r.CanCancel())
	assert.True(t, r.CanView())

	r = ResolveRoles(staff, 1, 2)
	assert.True(t, r.Staff)
	assert.True(t, r.CanView())
	assert.False(t, r.CanCancel())
	assert.False(t, r.CanMutate())

	r = ResolveRoles(stranger, 1, 2)
	assert.False(t, r.CanView())
	assert.False(t, r.CanCancel())
}

func TestResolveRolesNoAttendee(t *testing.T) {
	// entities without an attendee relationship pass attendeeID 0;
	// a caller with user id 0 must never match it
	r := ResolveRoles(Identity{UserID: 0}, 1, 0)
	assert.False(t, r.Attendee)
}
