package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CurrencyAmounts holds the two nominal figures tracked per product. The usd
// and inr values are set independently by the organizer and are never derived
// from one another by conversion.
type CurrencyAmounts struct {
	USD float64 `bson:"usd" json:"usd"`
	INR float64 `bson:"inr" json:"inr"`
}

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Amount      CurrencyAmounts    `bson:"amount" json:"amount"`
	Collected   CurrencyAmounts    `bson:"collected" json:"collected"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}
