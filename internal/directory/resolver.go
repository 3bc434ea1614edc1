package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/SchoolApp/content-service/internal/model"
	"github.com/SchoolApp/content-service/internal/repository/postgres"
)

// ErrUnavailable means a role query against the user directory failed. A
// fanout that hits it must abort visibly instead of skipping recipients.
var ErrUnavailable = errors.New("directory unavailable")

var errUnknownAudience = errors.New("unknown audience selector")

type Resolver struct {
	users postgres.User
}

func New(users postgres.User) *Resolver {
	return &Resolver{
		users: users,
	}
}

// Resolve maps an audience selector to concrete recipients at this instant;
// membership changes afterwards never touch already-created notifications.
// "all" is the union of the per-role queries and is deliberately not
// deduplicated: an identity holding both roles gets a notification per role.
func (r *Resolver) Resolve(ctx context.Context, audience model.Audience) ([]*model.User, error) {
	switch audience {
	case model.AudienceTeachers:
		return r.byRole(ctx, model.RoleTeacher)
	case model.AudienceParents:
		return r.byRole(ctx, model.RoleParent)
	case model.AudienceAll:
		teachers, err := r.byRole(ctx, model.RoleTeacher)
		if err != nil {
			return nil, err
		}
		parents, err := r.byRole(ctx, model.RoleParent)
		if err != nil {
			return nil, err
		}
		return append(teachers, parents...), nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownAudience, audience)
	}
}

func (r *Resolver) byRole(ctx context.Context, role model.Role) ([]*model.User, error) {
	users, err := r.users.FindByRole(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("%w: role %q: %v", ErrUnavailable, role, err)
	}
	return users, nil
}
