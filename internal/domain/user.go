package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Roles stored on a user record. Only RoleAdmin unlocks privileged routes.
const (
	RoleAdmin     = "Admin"
	RoleDonor     = "Donor"
	RoleVolunteer = "Volunteer"
)

const (
	UserActive  = "active"
	UserBlocked = "blocked"
)

type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name       string             `bson:"name"          json:"name"`
	Email      string             `bson:"email"         json:"email"`
	BloodGroup string             `bson:"bloodGroup"    json:"bloodGroup"`
	District   string             `bson:"district"      json:"district"`
	Upazilla   string             `bson:"upazilla"      json:"upazilla"`
	Image      string             `bson:"image"         json:"image"`
	Role       string             `bson:"role"          json:"role"`
	Status     string             `bson:"status"        json:"status"`
}
