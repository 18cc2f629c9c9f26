package models

import (
	"time"
)

// Ticket is one purchased set of numbers
type Ticket struct {
	ID        int64     `bson:"_id" json:"id"`
	UserID    int64     `bson:"userId" json:"userId"` // Telegram chat id, 0 when the buyer has none
	Numbers   []int     `bson:"numbers" json:"numbers"`
	Paid      bool      `bson:"paid" json:"paid"`
	TxHash    string    `bson:"txHash,omitempty" json:"txHash,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// BuyTicketsRequest defines the structure for ticket purchase requests
type BuyTicketsRequest struct {
	UserID  *int64  `json:"userId" binding:"required"` // 0 buys without a messaging identity
	Tickets [][]int `json:"tickets" binding:"required,min=1"`
	TxHash  string  `json:"txHash"`
	Paid    bool    `json:"paid"`
}
