package analysis

import "context"

// SessionSource is the acquisition collaborator. Implementations own
// caching and retry policy; a call may be slow, so it is always invoked
// under the unit's context.
type SessionSource interface {
	LoadSession(ctx context.Context, ref SessionRef) (*SessionData, error)
}
