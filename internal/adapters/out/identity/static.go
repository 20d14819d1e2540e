// Package identity resolves bearer tokens issued by an upstream gateway.
// Token issuance and verification mechanics live outside this system; this
// adapter only maps opaque tokens to actors from static configuration.
package identity

import (
	"context"
	"fmt"
	"strings"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"
)

var _ ports.TokenResolver = (*StaticTokenResolver)(nil)

// StaticTokenResolver holds a fixed token to actor mapping.
type StaticTokenResolver struct {
	actors map[string]kernel.Actor
}

// NewStaticTokenResolver parses a spec of the form
// "token=uuid:role,token2=uuid:role" into a resolver.
func NewStaticTokenResolver(spec string) (*StaticTokenResolver, error) {
	if spec == "" {
		return nil, errs.NewValueIsRequiredError("auth tokens")
	}

	actors := make(map[string]kernel.Actor)
	for _, entry := range strings.Split(spec, ",") {
		token, principal, found := strings.Cut(strings.TrimSpace(entry), "=")
		if !found || token == "" {
			return nil, errs.NewValueIsInvalidErrorWithCause("auth tokens",
				fmt.Errorf("malformed entry %q", entry))
		}

		rawID, rawRole, found := strings.Cut(principal, ":")
		if !found {
			return nil, errs.NewValueIsInvalidErrorWithCause("auth tokens",
				fmt.Errorf("entry %q misses a role", entry))
		}

		id, err := kernel.UUIDFromString(rawID)
		if err != nil {
			return nil, err
		}
		role, err := kernel.RoleFromString(rawRole)
		if err != nil {
			return nil, err
		}
		actor, err := kernel.NewActor(id, role)
		if err != nil {
			return nil, err
		}

		actors[token] = actor
	}

	return &StaticTokenResolver{actors: actors}, nil
}

func (r *StaticTokenResolver) Resolve(_ context.Context, token string) (kernel.Actor, error) {
	actor, ok := r.actors[token]
	if !ok {
		return kernel.Actor{}, errs.NewUnauthorizedError("token")
	}
	return actor, nil
}
