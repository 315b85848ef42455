package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contribution is the canonical record stored after validation. Amount is
// always USD; IsConverted marks records whose amount was derived from an INR
// input at submission time. Records are immutable once accepted.
type Contribution struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID     primitive.ObjectID `bson:"product_id" json:"productId"`
	Name          string             `bson:"name" json:"name"`
	Remarks       string             `bson:"remarks,omitempty" json:"remarks,omitempty"`
	Amount        float64            `bson:"amount" json:"amount"`
	Currency      string             `bson:"currency" json:"currency"`
	PaymentMethod string             `bson:"payment_method" json:"paymentMethod"`
	PaymentRef    string             `bson:"payment_reference,omitempty" json:"paymentRef,omitempty"`
	IsConverted   bool               `bson:"is_converted" json:"isConverted"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
}

// ProductRef is the joined product snapshot embedded in listing responses.
type ProductRef struct {
	ID   primitive.ObjectID `bson:"_id" json:"_id"`
	Name string             `bson:"name" json:"name"`
}

// ContributionWithProduct is the listing shape: a contribution with its
// product reference joined in under the productId key.
type ContributionWithProduct struct {
	ID            primitive.ObjectID `bson:"_id" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Remarks       string             `bson:"remarks,omitempty" json:"remarks,omitempty"`
	Amount        float64            `bson:"amount" json:"amount"`
	Currency      string             `bson:"currency" json:"currency"`
	PaymentMethod string             `bson:"payment_method" json:"paymentMethod"`
	IsConverted   bool               `bson:"is_converted" json:"isConverted"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	Product       ProductRef         `bson:"product" json:"productId"`
}
