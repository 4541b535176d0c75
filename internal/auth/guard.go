package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/marslanding/backend/internal/model"
	"github.com/marslanding/backend/internal/store"
)

var (
	// ErrUnauthorized covers every way principal resolution can fail:
	// bad signature, expired or wrong-kind token, unknown subject,
	// inactive account. Callers see one generic error; the specific
	// cause is logged here and nowhere else.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when an authenticated principal is not
	// allowed to act on the target resource.
	ErrForbidden = errors.New("forbidden")
)

// PrincipalLoader loads the account a token subject refers to. It is
// the slice of the repository the guard needs.
type PrincipalLoader interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// Guard turns bearer tokens into principals and enforces access rules.
type Guard struct {
	tokens *TokenService
	users  PrincipalLoader
}

// NewGuard builds a Guard over the given token service and loader.
func NewGuard(tokens *TokenService, users PrincipalLoader) *Guard {
	return &Guard{tokens: tokens, users: users}
}

// ResolvePrincipal validates bearer as an access token at the injected
// instant and loads the account it was issued for. A principal is only
// ever constructed here, never from client-supplied identifiers. Store
// outages propagate as-is so they are not mistaken for a bad token.
func (g *Guard) ResolvePrincipal(ctx context.Context, bearer string, now time.Time) (*model.User, error) {
	sub, err := g.tokens.Validate(bearer, TokenAccess, now)
	if err != nil {
		log.Printf("auth: token rejected: %v", err)
		return nil, ErrUnauthorized
	}
	u, err := g.users.FindByID(ctx, sub)
	if err != nil {
		if errors.Is(err, store.ErrUnavailable) {
			return nil, err
		}
		log.Printf("auth: token subject does not resolve to an account")
		return nil, ErrUnauthorized
	}
	if !u.IsActive {
		log.Printf("auth: inactive account %s rejected", u.HexID())
		return nil, ErrUnauthorized
	}
	return u, nil
}

// RequireSelfOrSuperuser allows the operation iff the principal is the
// target account or a superuser.
func (g *Guard) RequireSelfOrSuperuser(principal *model.User, targetID string) error {
	if principal.HexID() == targetID || principal.IsSuperuser {
		return nil
	}
	return fmt.Errorf("%w: not owner of resource", ErrForbidden)
}

// RequireSuperuser allows the operation iff the principal is a superuser.
func (g *Guard) RequireSuperuser(principal *model.User) error {
	if principal.IsSuperuser {
		return nil
	}
	return fmt.Errorf("%w: superuser required", ErrForbidden)
}
