package session

import (
	"context"

	"github.com/octabyte/skillswap-client/enums"
	"github.com/octabyte/skillswap-client/models"
)

// Change describes one transition. From equals To for the
// authenticated → authenticated self-loop.
type Change struct {
	From   enums.AuthState
	To     enums.AuthState
	Reason enums.TransitionReason
	// User is the record after the transition; zero when unauthenticated.
	User models.User
}

// Observer is notified synchronously, before the operation that caused the
// transition returns. Observers must not call back into the Manager's
// transition methods.
type Observer interface {
	SessionChanged(ctx context.Context, change Change)
}

type ObserverFunc func(ctx context.Context, change Change)

func (f ObserverFunc) SessionChanged(ctx context.Context, change Change) { f(ctx, change) }
