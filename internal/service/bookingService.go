package service

import (
	"context"
	"time"

	repository "github.com/restobook/restaurant-backend/internal/database/postgres"
	"github.com/restobook/restaurant-backend/internal/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type bookingService struct {
	bookingRepo repository.BookingRepository
	publisher   EventPublisher
}

// NewBookingService создает новый экземпляр BookingService.
// publisher может быть nil, если очередь нотификаций не сконфигурирована.
func NewBookingService(bookingRepo repository.BookingRepository, publisher EventPublisher) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		publisher:   publisher,
	}
}

// bookingDateLayouts перечисляет принимаемые форматы даты бронирования.
var bookingDateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04",
	time.RFC3339,
}

func parseBookingDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range bookingDateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// CreateBooking validates the input and persists a new booking.
// On constraint violations it returns a ValidationError with one message per
// offending field; nothing reaches the store in that case.
func (s *bookingService) CreateBooking(ctx context.Context, req *CreateBookingRequest) (*entity.Booking, error) {
	fields := make(map[string]string)

	if req.CustomerName == "" {
		fields["customerName"] = "Customer name is required"
	}

	var date time.Time
	if req.Date == "" {
		fields["date"] = "Date is required"
	} else {
		parsed, err := parseBookingDate(req.Date)
		if err != nil {
			fields["date"] = "Invalid date format"
		} else {
			date = parsed
		}
	}

	if req.NumberOfPeople < 1 {
		fields["numberOfPeople"] = "At least 1 person required"
	}

	if req.Phone == "" {
		fields["phone"] = "Phone number is required"
	} else if !entity.PhonePattern.MatchString(req.Phone) {
		fields["phone"] = "Invalid phone number format"
	}

	// Статус по умолчанию pending; явно переданный должен входить в enum.
	status := entity.BookingStatusPending
	if req.Status != "" {
		status = entity.BookingStatus(req.Status)
		if !status.IsValid() {
			fields["status"] = "Invalid status value"
		}
	}

	if len(fields) > 0 {
		return nil, entity.NewValidationError(fields)
	}

	booking := &entity.Booking{
		CustomerName:   req.CustomerName,
		Date:           date,
		NumberOfPeople: req.NumberOfPeople,
		Phone:          req.Phone,
		Status:         status,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, BookingEventCreated, booking)

	return booking, nil
}

func (s *bookingService) GetBookings(ctx context.Context, filter *entity.BookingFilter) ([]*entity.Booking, error) {
	return s.bookingRepo.GetAll(ctx, filter)
}

// UpdateBookingStatus replaces the booking status.
// Недопустимый статус отклоняется до обращения к хранилищу; между
// допустимыми статусами разрешен любой переход, включая самопереход.
func (s *bookingService) UpdateBookingStatus(ctx context.Context, id int64, status string) (*entity.Booking, error) {
	newStatus := entity.BookingStatus(status)
	if !newStatus.IsValid() {
		return nil, entity.ErrInvalidBookingStatus
	}

	booking, err := s.bookingRepo.UpdateStatus(ctx, id, newStatus)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, BookingEventStatusChanged, booking)

	return booking, nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, id int64) error {
	return s.bookingRepo.Delete(ctx, id)
}

// publishEvent отправляет событие в очередь нотификаций.
// Сбой публикации логируется и никогда не валит запрос.
func (s *bookingService) publishEvent(ctx context.Context, eventType string, booking *entity.Booking) {
	if s.publisher == nil {
		return
	}

	event := &BookingEvent{
		ID:         uuid.New().String(),
		Type:       eventType,
		Booking:    booking,
		OccurredAt: time.Now(),
	}

	if err := s.publisher.Publish(ctx, event); err != nil {
		logrus.Errorf("Failed to publish booking event %s: %v", eventType, err)
	}
}
