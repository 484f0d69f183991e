package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/restobook/restaurant-backend/internal/entity"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, customer_name, date, number_of_people, phone, status, created_at, updated_at`

// Create inserts a new booking and fills in its id and timestamps.
func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (customer_name, date, number_of_people, phone, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		booking.CustomerName,
		booking.Date,
		booking.NumberOfPeople,
		booking.Phone,
		booking.Status,
		now,
		now,
	).Scan(&booking.ID)

	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	booking.CreatedAt = now
	booking.UpdatedAt = now

	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var booking entity.Booking
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&booking.ID,
		&booking.CustomerName,
		&booking.Date,
		&booking.NumberOfPeople,
		&booking.Phone,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return &booking, nil
}

// GetAll returns the bookings matching the filter, most recent date first,
// ties broken by newest created_at.
func (r *bookingRepository) GetAll(ctx context.Context, filter *entity.BookingFilter) ([]*entity.Booking, error) {
	query, args := buildBookingQuery(filter)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]*entity.Booking, 0)
	for rows.Next() {
		var booking entity.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.CustomerName,
			&booking.Date,
			&booking.NumberOfPeople,
			&booking.Phone,
			&booking.Status,
			&booking.CreatedAt,
			&booking.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bookings: %w", err)
	}

	return bookings, nil
}

// buildBookingQuery собирает условия WHERE конъюнктивно: каждый заданный
// параметр фильтра добавляет ровно одно ограничение.
func buildBookingQuery(filter *entity.BookingFilter) (string, []interface{}) {
	query := `SELECT ` + bookingColumns + ` FROM bookings`

	conditions := make([]string, 0, 3)
	args := make([]interface{}, 0, 3)

	if filter != nil {
		if filter.Status != "" {
			args = append(args, filter.Status)
			conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
		}
		if filter.From != nil {
			args = append(args, *filter.From)
			conditions = append(conditions, fmt.Sprintf("date >= $%d", len(args)))
		}
		if filter.To != nil {
			args = append(args, *filter.To)
			conditions = append(conditions, fmt.Sprintf("date <= $%d", len(args)))
		}
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY date DESC, created_at DESC"

	return query, args
}

// UpdateStatus replaces the status and bumps updated_at.
// Membership of the status in the allowed set is checked by the service
// before the store is touched.
func (r *bookingRepository) UpdateStatus(ctx context.Context, id int64, status entity.BookingStatus) (*entity.Booking, error) {
	query := `
		UPDATE bookings
		SET status = $1, updated_at = $2
		WHERE id = $3
		RETURNING ` + bookingColumns

	var booking entity.Booking
	err := r.db.QueryRowContext(ctx, query, status, time.Now(), id).Scan(
		&booking.ID,
		&booking.CustomerName,
		&booking.Date,
		&booking.NumberOfPeople,
		&booking.Phone,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}

	return &booking, nil
}

func (r *bookingRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM bookings WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrBookingNotFound
	}

	return nil
}
