package service

import (
	"context"
	"time"

	"github.com/restobook/restaurant-backend/internal/entity"
)

// BookingService определяет операции над бронированиями
type BookingService interface {
	CreateBooking(ctx context.Context, req *CreateBookingRequest) (*entity.Booking, error)
	GetBookings(ctx context.Context, filter *entity.BookingFilter) ([]*entity.Booking, error)
	UpdateBookingStatus(ctx context.Context, id int64, status string) (*entity.Booking, error)
	DeleteBooking(ctx context.Context, id int64) error
}

type ProductService interface {
	CreateProduct(ctx context.Context, req *CreateProductRequest) (*entity.Product, error)
	GetProduct(ctx context.Context, id int64) (*entity.Product, error)
	GetAllProducts(ctx context.Context) ([]*entity.Product, error)
	UpdateProduct(ctx context.Context, id int64, req *UpdateProductRequest) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*entity.User, error)
	Login(ctx context.Context, email, password string) (string, *entity.User, error)
}

// CreateBookingRequest представляет данные для создания бронирования.
// Date принимается строкой и разбирается при валидации: фронтенд шлет
// как дату без времени, так и RFC3339.
type CreateBookingRequest struct {
	CustomerName   string `json:"customerName"`
	Date           string `json:"date"`
	NumberOfPeople int    `json:"numberOfPeople"`
	Phone          string `json:"phone"`
	Status         string `json:"status"`
}

type CreateProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" binding:"required"`
	Available   *bool    `json:"available"`
}

// UpdateProductRequest supports partial updates, nil fields stay unchanged.
type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Available   *bool    `json:"available"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

// EventPublisher публикует события бронирований для нотификации персонала.
type EventPublisher interface {
	Publish(ctx context.Context, message interface{}) error
}

const (
	BookingEventCreated       = "booking_created"
	BookingEventStatusChanged = "booking_status_changed"
)

// BookingEvent is the message published to the notification queue.
type BookingEvent struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Booking    *entity.Booking `json:"booking"`
	OccurredAt time.Time       `json:"occurred_at"`
}
