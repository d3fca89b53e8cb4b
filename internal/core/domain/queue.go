package domain

// Operation identifies an interaction queue on the platform side.
type Operation string

const (
	OpCreatePost       Operation = "CreatePost"
	OpReshare          Operation = "Reshare"
	OpCreateFriendship Operation = "CreateFriendship"
	OpUpdateProfile    Operation = "UpdateProfile"
)

// LockClass distinguishes the two lock variants an operation queue can carry.
// Rate-limit locks are short and expected; permission locks are long and mean
// the platform refused the operation for this account.
type LockClass int

const (
	LockRateLimit LockClass = iota
	LockPermission
)

const permissionSuffix = "_ops"

// QueueKey identifies a lock slot as (operation, class). Operation names and
// lock classes are kept as separate fields; the storage form is rendered in
// String only, so an operation name can never collide with the suffix.
type QueueKey struct {
	Op    Operation
	Class LockClass
}

// RateLimitQueue returns the rate-limit lock key for op.
func RateLimitQueue(op Operation) QueueKey {
	return QueueKey{Op: op, Class: LockRateLimit}
}

// PermissionQueue returns the permission lock key for op.
func PermissionQueue(op Operation) QueueKey {
	return QueueKey{Op: op, Class: LockPermission}
}

// String renders the storage name: the plain operation for rate-limit locks,
// operation plus "_ops" for permission locks.
func (k QueueKey) String() string {
	if k.Class == LockPermission {
		return string(k.Op) + permissionSuffix
	}
	return string(k.Op)
}
