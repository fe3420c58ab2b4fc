package queue

import "go.mongodb.org/mongo-driver/bson/primitive"

// Exchange carries all platform events; consumers bind by routing key
// (user.registered, request.created, payment.recorded).
const Exchange = "donation.events"

type UserRegistered struct {
	UserID primitive.ObjectID `json:"user_id"`
	Email  string             `json:"email"`
	Name   string             `json:"name"`
}

type DonationRequested struct {
	RequestID      primitive.ObjectID `json:"request_id"`
	RequesterEmail string             `json:"requester_email"`
	BloodGroup     string             `json:"blood_group"`
	District       string             `json:"district"`
}

type PaymentRecorded struct {
	PaymentID     primitive.ObjectID `json:"payment_id"`
	Email         string             `json:"email"`
	Amount        float64            `json:"amount"`
	TransactionID string             `json:"transaction_id"`
}
