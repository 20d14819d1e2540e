package ports

import (
	"context"

	"orderdesk/internal/core/domain/model/kernel"
)

// TokenResolver is the external identity collaborator. It resolves a bearer
// credential into a verified actor, or returns an Unauthorized error for
// missing or invalid credentials. Token issuance and verification mechanics
// live outside this system.
type TokenResolver interface {
	Resolve(ctx context.Context, token string) (kernel.Actor, error)
}
