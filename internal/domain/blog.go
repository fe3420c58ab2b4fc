package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	BlogDraft     = "draft"
	BlogPublished = "published"
)

type Blog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Title     string             `bson:"title"         json:"title"`
	Thumbnail string             `bson:"thumbnail"     json:"thumbnail"`
	Content   string             `bson:"content"       json:"content"`
	Status    string             `bson:"status"        json:"status"`
}
