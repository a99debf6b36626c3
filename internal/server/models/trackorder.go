package models

import "time"

// TrackOrder records one inventory ownership transfer. ItemName, OrderCost
// and UserName are copied at transfer time and never refreshed.
type TrackOrder struct {
	ID        string    `json:"id"`
	OrderCost float64   `json:"orderCost"`
	ItemName  string    `json:"itemName"`
	UserName  string    `json:"userName"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}
