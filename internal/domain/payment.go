package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Payment is append-only: recorded once after the client confirms the
// intent, never updated. There is no reconciliation against the intent
// that was issued.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name          string             `bson:"name"          json:"name"`
	Email         string             `bson:"email"         json:"email"`
	Amount        float64            `bson:"amount"        json:"amount"`
	Currency      string             `bson:"currency"      json:"currency"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	Date          string             `bson:"date"          json:"date"`
}
