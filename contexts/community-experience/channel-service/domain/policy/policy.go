// Package policy is the single decision point for channel and message
// authorization. Decisions are pure functions of the operation and the role
// facts resolved for the current request, so every endpoint enforces exactly
// the same rules.
package policy

import (
	domainerrors "parley/contexts/community-experience/channel-service/domain/errors"
)

// Operation tags the action being authorized.
type Operation string

const (
	OpCreateChannel Operation = "create_channel"
	OpDeleteChannel Operation = "delete_channel"
	OpSubscribe     Operation = "subscribe"
	OpPostMessage   Operation = "post_message"
	OpReadMessages  Operation = "read_messages"
	OpEditMessage   Operation = "edit_message"
	OpDeleteMessage Operation = "delete_message"
)

// Facts are the role relations between the principal and the target
// channel/message, read fresh from storage for the current request.
type Facts struct {
	Owner      bool
	Subscriber bool
	Author     bool
}

// Decide returns nil when the operation is allowed and ErrForbidden
// otherwise. Callers must have already resolved the principal and verified
// that the target channel/message exists: existence checks come first so a
// missing resource never leaks permission information.
//
// Owner access to post/read is granted by ownership OR membership rather
// than relying on the owner-is-member invariant, so a missing membership row
// cannot lock an owner out. Edit stays author-only: the owner's elevated
// rights cover moderation (delete) but never content changes.
func Decide(op Operation, facts Facts) error {
	switch op {
	case OpCreateChannel, OpSubscribe:
		// Any authenticated principal.
		return nil
	case OpDeleteChannel:
		if facts.Owner {
			return nil
		}
	case OpPostMessage, OpReadMessages:
		if facts.Owner || facts.Subscriber {
			return nil
		}
	case OpEditMessage:
		if facts.Author {
			return nil
		}
	case OpDeleteMessage:
		if facts.Author || facts.Owner {
			return nil
		}
	}
	return domainerrors.ErrForbidden
}
