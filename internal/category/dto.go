package category

import "time"

type CategoryResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	ColorHex    string    `json:"color_hex"`
	CreatedAt   time.Time `json:"created_at"`
}
