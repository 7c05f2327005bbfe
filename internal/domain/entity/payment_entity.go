package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment records a settled payment intent, owned by Email.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email         string             `bson:"email" json:"email"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	Price         float64            `bson:"price" json:"price"`
	Quantity      int                `bson:"quantity" json:"quantity"`
	EnrollmentIDs []string           `bson:"cartItems" json:"cartItems"`
	ClassIDs      []string           `bson:"classItems" json:"classItems"`
	ClassNames    []string           `bson:"itemNames,omitempty" json:"itemNames,omitempty"`
	Date          time.Time          `bson:"date" json:"date"`
}

// PaymentIntent is what the payment processor hands back to the browser
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"clientSecret"`
}
