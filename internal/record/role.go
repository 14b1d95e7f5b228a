package record

// Role is a membership role inside a group definition's "p" tags.
// The empty role means plain member.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleModerator    Role = "moderator"
	RoleEventCreator Role = "event_creator"
	RoleMember       Role = "" // unspecified
)

// Precedence orders roles for membership dedup: when the same subject
// appears under several roles, the highest precedence wins.
//
//	admin(4) > moderator(3) > event_creator(2) > member/unknown(1)
//
// Unknown role strings rank with plain members so a future role never
// outranks an admin by accident.
func (r Role) Precedence() int {
	switch r {
	case RoleAdmin:
		return 4
	case RoleModerator:
		return 3
	case RoleEventCreator:
		return 2
	default:
		return 1
	}
}

// CanModerate reports whether the role may act on join requests and
// moderation labels for the group.
func (r Role) CanModerate() bool {
	return r == RoleAdmin || r == RoleModerator
}
