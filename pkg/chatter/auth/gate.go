//go:generate go run go.uber.org/mock/mockgen -source=gate.go -destination=../mocks/mock_auth.go -package=mocks
package auth

import (
	"context"

	"github.com/mikepea/chatter/pkg/chatter/models"
	"go.uber.org/zap"
)

// IdentityResolver resolves a bearer token to the user it was issued to.
type IdentityResolver interface {
	GetByToken(ctx context.Context, token string) (*models.User, error)
}

// MembershipChecker answers group membership questions.
type MembershipChecker interface {
	IsMember(ctx context.Context, groupID, userID uint) (bool, error)
	GroupExists(ctx context.Context, groupID uint) (bool, error)
}

// Gate authenticates credentials and authorizes group-scoped actions.
// It never returns errors: a nil user or false is the only negative signal.
type Gate struct {
	identities  IdentityResolver
	memberships MembershipChecker
	log         *zap.Logger
}

// NewGate creates a new authorization gate
func NewGate(identities IdentityResolver, memberships MembershipChecker, log *zap.Logger) *Gate {
	return &Gate{identities: identities, memberships: memberships, log: log}
}

// Authenticate returns the user owning credential, or nil.
// The credential is looked up verbatim; scheme prefixes must already be stripped.
func (g *Gate) Authenticate(ctx context.Context, credential string) *models.User {
	if credential == "" {
		return nil
	}

	user, err := g.identities.GetByToken(ctx, credential)
	if err != nil {
		g.log.Warn("token lookup failed", zap.Error(err))
		return nil
	}
	return user
}

// AuthorizeGroupAction reports whether the user may act within the group.
func (g *Gate) AuthorizeGroupAction(ctx context.Context, groupID, userID uint) bool {
	ok, err := g.memberships.IsMember(ctx, groupID, userID)
	if err != nil {
		g.log.Warn("membership check failed",
			zap.Uint("group_id", groupID), zap.Uint("user_id", userID), zap.Error(err))
		return false
	}
	return ok
}
