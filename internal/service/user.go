package service

import (
	"context"

	"github.com/SchoolApp/content-service/internal/model"
	"github.com/SchoolApp/content-service/internal/repository"
	"github.com/google/uuid"
)

type userService struct {
	repo *repository.Repository
}

func newUserService(repo *repository.Repository) User {
	return &userService{
		repo: repo,
	}
}

func (s *userService) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.repo.Postgres.User.FindByID(ctx, id)
}
