package repository

import (
	"github.com/SchoolApp/content-service/internal/repository/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	Postgres *postgres.PGRepo
}

func New(db *pgxpool.Pool) *Repository {
	return &Repository{
		Postgres: postgres.New(db),
	}
}
