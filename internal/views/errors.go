package views

import "errors"

// Conflict-of-intent guards. Each is checked against a freshly derived
// view before anything is signed or published.
var (
	// ErrGroupNotFound means no definition record exists for the slot.
	ErrGroupNotFound = errors.New("group not found")

	// ErrEventNotFound means no event record exists for the slot.
	ErrEventNotFound = errors.New("event not found")

	// ErrAlreadyMember blocks join requests and approvals for a subject
	// already on the roster.
	ErrAlreadyMember = errors.New("subject is already a member")

	// ErrJoinRejected blocks a join request from a subject holding a
	// rejection record for the group. Rejections are permanent.
	ErrJoinRejected = errors.New("subject was rejected from this group")

	// ErrNotModerator blocks moderation-gated writes from identities
	// without a moderation-capable role.
	ErrNotModerator = errors.New("caller lacks a moderation role")

	// ErrInvalidDraft means the would-be record fails its own kind's
	// validator. Publishing it would only get it dropped by every
	// conforming reader.
	ErrInvalidDraft = errors.New("draft does not satisfy its kind's validator")
)
