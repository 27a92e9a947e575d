package domain

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	BuyerID   string    `json:"buyerId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
