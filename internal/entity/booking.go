package entity

import (
	"regexp"
	"time"
)

type BookingStatus string

const (
	BookingStatusPending  BookingStatus = "pending"
	BookingStatusApproved BookingStatus = "approved"
	BookingStatusRejected BookingStatus = "rejected"
)

// AllowedBookingStatuses перечисляет все допустимые статусы бронирования.
var AllowedBookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusApproved,
	BookingStatusRejected,
}

// IsValid reports whether the status is one of the allowed values.
// Any allowed status may move to any other one, there is no transition graph.
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusApproved, BookingStatusRejected:
		return true
	}
	return false
}

// PhonePattern matches exactly 10 digits.
var PhonePattern = regexp.MustCompile(`^[0-9]{10}$`)

type Booking struct {
	ID             int64         `json:"id" db:"id"`
	CustomerName   string        `json:"customerName" db:"customer_name"`
	Date           time.Time     `json:"date" db:"date"`
	NumberOfPeople int           `json:"numberOfPeople" db:"number_of_people"`
	Phone          string        `json:"phone" db:"phone"`
	Status         BookingStatus `json:"status" db:"status"`
	CreatedAt      time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time     `json:"updatedAt" db:"updated_at"`
}

// BookingFilter описывает необязательные условия выборки бронирований.
// Nil-поля не накладывают ограничений.
type BookingFilter struct {
	Status string
	From   *time.Time
	To     *time.Time
}
