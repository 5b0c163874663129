package postgres

import (
	"database/sql"

	"bikerent-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.ItemRepository
	repository.RentalRepository
	repository.UserRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:               db,
		ItemRepository:   NewItemRepository(db),
		RentalRepository: NewRentalRepository(db),
		UserRepository:   NewUserRepository(db),
	}
}
