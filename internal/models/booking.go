package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Opaque code handed to the customer; safe to expose outside the API.
	Reference string `gorm:"size:36;uniqueIndex" json:"reference"`

	FirmID uint `gorm:"uniqueIndex:idx_bookings_firm_slot" json:"firm_id"`
	Firm   Firm `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"firm"`

	CustomerID uint `json:"customer_id"`
	Customer   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer"`

	MenuItemID *uint     `json:"menu_item_id"`
	MenuItem   *MenuItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"menu_item,omitempty"`

	// The composite unique index on (firm_id, booking_time) is the
	// authoritative guard against double-booking; application-level
	// conflict checks are an early exit only.
	BookingTime    time.Time `gorm:"uniqueIndex:idx_bookings_firm_slot" json:"booking_time"`
	NumberOfPeople int       `gorm:"default:1" json:"number_of_people"`

	Status string `gorm:"size:20;default:'confirmed'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
