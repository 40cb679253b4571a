package domain

// Identity is what the identity provider yields per request.
type Identity struct {
	UserID  int64
	IsStaff bool
}

// Roles is the caller's resolved role set for one entity. Every
// visibility and mutation rule consumes this instead of re-deriving
// the organizer/attendee/staff relationship per handler.
type Roles struct {
	Organizer bool
	Attendee  bool
	Staff     bool
}

// ResolveRoles computes the caller's roles for an entity owned by
// organizerID and (optionally) tied to attendeeID. Pass attendeeID 0
// for entities without an attendee relationship.
func ResolveRoles(caller Identity, organizerID, attendeeID int64) Roles {
	return Roles{
		Organizer: caller.UserID == organizerID,
		Attendee:  attendeeID != 0 && caller.UserID == attendeeID,
		Staff:     caller.IsStaff,
	}
}

// CanMutate reports whether the caller may mutate the entity.
// Mutation is restricted to the organizer.
func (r Roles) CanMutate() bool {
	return r.Organizer
}

// CanView reports whether the caller may read an organizer/attendee
// scoped entity (registrations and session registrations).
func (r Roles) CanView() bool {
	return r.Staff || r.Organizer || r.Attendee
}

// CanCancel reports whether the caller may cancel a registration:
// the attendee themselves or the event organizer. Staff privilege
// grants visibility, not cancellation.
func (r Roles) CanCancel() bool {
	return r.Organizer || r.Attendee
}
