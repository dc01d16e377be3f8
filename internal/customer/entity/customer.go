package entity

import "time"

// Customer is a stored customer record. ID is assigned by the store.
type Customer struct {
	ID          int64
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	DateOfBirth time.Time
	Address     string
}
