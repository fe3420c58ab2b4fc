package repo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hopepulse/hopepulse-api/internal/domain"
)

// ProfileUpdate carries the fields a user may edit on their own record.
type ProfileUpdate struct {
	Name       string `json:"name"`
	BloodGroup string `json:"bloodGroup"`
	District   string `json:"district"`
	Upazilla   string `json:"upazilla"`
	Image      string `json:"image"`
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := s.colUsers.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	res, err := s.colUsers.InsertOne(ctx, u)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid
	}
	return nil
}

func (s *Store) ListUsers(ctx context.Context) ([]domain.User, error) {
	cur, err := s.colUsers.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []domain.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) UpdateUserProfile(ctx context.Context, id primitive.ObjectID, p ProfileUpdate) (matched, modified int64, err error) {
	res, err := s.colUsers.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"name":       p.Name,
		"bloodGroup": p.BloodGroup,
		"district":   p.District,
		"upazilla":   p.Upazilla,
		"image":      p.Image,
	}})
	if err != nil {
		return 0, 0, err
	}
	return res.MatchedCount, res.ModifiedCount, nil
}

func (s *Store) UpdateUserRole(ctx context.Context, id primitive.ObjectID, role string) (matched, modified int64, err error) {
	res, err := s.colUsers.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return 0, 0, err
	}
	return res.MatchedCount, res.ModifiedCount, nil
}

func (s *Store) UpdateUserStatus(ctx context.Context, id primitive.ObjectID, status string) (matched, modified int64, err error) {
	res, err := s.colUsers.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return 0, 0, err
	}
	return res.MatchedCount, res.ModifiedCount, nil
}
