package directory

import (
	"context"
	"errors"
	"testing"

	"github.com/SchoolApp/content-service/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserRepo struct {
	byRole  map[model.Role][]*model.User
	roleErr error
}

func (s *stubUserRepo) Create(ctx context.Context, user model.User) error { return nil }

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return nil, nil
}

func (s *stubUserRepo) FindByRole(ctx context.Context, role model.Role) ([]*model.User, error) {
	if s.roleErr != nil {
		return nil, s.roleErr
	}
	return s.byRole[role], nil
}

func (s *stubUserRepo) UpdateByID(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return nil
}

func user() *model.User {
	return &model.User{ID: uuid.New()}
}

func TestResolve_SingleRole(t *testing.T) {
	repo := &stubUserRepo{byRole: map[model.Role][]*model.User{
		model.RoleTeacher: {user(), user()},
		model.RoleParent:  {user()},
	}}
	r := New(repo)

	teachers, err := r.Resolve(context.Background(), model.AudienceTeachers)
	require.NoError(t, err)
	assert.Len(t, teachers, 2)

	parents, err := r.Resolve(context.Background(), model.AudienceParents)
	require.NoError(t, err)
	assert.Len(t, parents, 1)
}

func TestResolve_AllUnionsBothRolesWithoutDeduplication(t *testing.T) {
	// The same identity under both roles appears twice: duplicate
	// notifications to multi-role identities are the accepted policy.
	shared := user()
	repo := &stubUserRepo{byRole: map[model.Role][]*model.User{
		model.RoleTeacher: {shared, user()},
		model.RoleParent:  {shared},
	}}
	r := New(repo)

	all, err := r.Resolve(context.Background(), model.AudienceAll)
	require.NoError(t, err)
	require.Len(t, all, 3)

	occurrences := 0
	for _, u := range all {
		if u.ID == shared.ID {
			occurrences++
		}
	}
	assert.Equal(t, 2, occurrences)
}

func TestResolve_QueryFailureIsUnavailable(t *testing.T) {
	r := New(&stubUserRepo{roleErr: errors.New("connection refused")})

	_, err := r.Resolve(context.Background(), model.AudienceAll)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestResolve_UnknownSelector(t *testing.T) {
	r := New(&stubUserRepo{})

	_, err := r.Resolve(context.Background(), model.Audience("everybody"))
	assert.Error(t, err)
}
