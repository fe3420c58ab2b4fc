package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Donation lifecycle: pending -> inprogress -> done | canceled.
// The store never checks the current value before a transition, so a
// terminal record can be moved back to inprogress.
const (
	StatusPending    = "pending"
	StatusInProgress = "inprogress"
	StatusDone       = "done"
	StatusCanceled   = "canceled"
)

type DonationRequest struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"        json:"_id,omitempty"`
	RequesterName  string             `bson:"requesterName"        json:"requesterName"`
	RequesterEmail string             `bson:"requesterEmail"       json:"requesterEmail"`
	RecipientName  string             `bson:"recipientName"        json:"recipientName"`
	BloodGroup     string             `bson:"bloodGroup"           json:"bloodGroup"`
	Hospital       string             `bson:"hospital"             json:"hospital"`
	FullAddress    string             `bson:"fullAddress"          json:"fullAddress"`
	District       string             `bson:"district"             json:"district"`
	Upazilla       string             `bson:"upazilla"             json:"upazilla"`
	Date           string             `bson:"date"                 json:"date"`
	Time           string             `bson:"time"                 json:"time"`
	Message        string             `bson:"message"              json:"message"`
	DonationStatus string             `bson:"donationStatus"       json:"donationStatus"`
	DonorName      string             `bson:"donorName,omitempty"  json:"donorName,omitempty"`
	DonorEmail     string             `bson:"donorEmail,omitempty" json:"donorEmail,omitempty"`
}
