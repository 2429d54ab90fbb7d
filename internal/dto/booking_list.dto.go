package dto

import "time"

type BookingListDTO struct {
	ID             uint      `json:"id"`
	Reference      string    `json:"reference"`
	BookingTime    time.Time `json:"booking_time"`
	NumberOfPeople int       `json:"number_of_people"`
	Status         string    `json:"status"`
	CustomerName   string    `json:"customer_name"`
	MenuItemName   string    `json:"menu_item_name,omitempty"`
}
