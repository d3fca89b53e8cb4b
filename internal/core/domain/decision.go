package domain

import "time"

// Action is the corrective mutation a classified failure maps to.
type Action int

const (
	ActionNone Action = iota // unrecognized error, leave account state alone
	ActionSuspendQueue
	ActionBan
	ActionRotateProxy
)

func (a Action) String() string {
	switch a {
	case ActionSuspendQueue:
		return "suspend_queue"
	case ActionBan:
		return "ban"
	case ActionRotateProxy:
		return "rotate_proxy"
	default:
		return "none"
	}
}

// Decision is the outcome of classifying one failed platform call. It is
// produced and applied within a single call; it is never persisted.
type Decision struct {
	Username string
	Action   Action
	Queue    QueueKey      // only for ActionSuspendQueue
	Duration time.Duration // only for ActionSuspendQueue
	Reason   string
}
