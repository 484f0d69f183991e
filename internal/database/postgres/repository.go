package repository

import (
	"context"

	"github.com/restobook/restaurant-backend/internal/entity"
)

// BookingRepository владеет коллекцией бронирований; всякая мутация
// персистентного состояния проходит только через него.
type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	GetByID(ctx context.Context, id int64) (*entity.Booking, error)
	GetAll(ctx context.Context, filter *entity.BookingFilter) ([]*entity.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status entity.BookingStatus) (*entity.Booking, error)
	Delete(ctx context.Context, id int64) error
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	GetAll(ctx context.Context) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id int64) error
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
