package repository

import (
	"food-delivery/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Customer CustomerRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Customer: NewCustomerRepository(db, log),
	}
}
