package models

import "time"

// Inventory is a stocked item. The quantity fields carry no invariant.
// Image holds either an inline base64 payload or an object storage key,
// depending on the configured image store.
type Inventory struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Cost        float64   `json:"cost"`
	AsPerPlan   float64   `json:"asPerPlan"`
	Existing    float64   `json:"existing"`
	Required    float64   `json:"required"`
	ProInStore  float64   `json:"proInStore"`
	Image       *string   `json:"image"`
	UserID      *string   `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
