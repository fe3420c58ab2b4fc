package repo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hopepulse/hopepulse-api/internal/domain"
)

// RequestUpdate carries the editable detail fields of a donation request.
// Status and donor identity move through the transition methods instead.
type RequestUpdate struct {
	RecipientName string `json:"recipientName"`
	BloodGroup    string `json:"bloodGroup"`
	Hospital      string `json:"hospital"`
	FullAddress   string `json:"fullAddress"`
	District      string `json:"district"`
	Upazilla      string `json:"upazilla"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Message       string `json:"message"`
}

func (s *Store) CreateRequest(ctx context.Context, r *domain.DonationRequest) error {
	res, err := s.colRequests.InsertOne(ctx, r)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		r.ID = oid
	}
	return nil
}

func (s *Store) RequestByID(ctx context.Context, id primitive.ObjectID) (*domain.DonationRequest, error) {
	var r domain.DonationRequest
	err := s.colRequests.FindOne(ctx, bson.M{"_id": id}).Decode(&r)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Store) ListPendingRequests(ctx context.Context) ([]domain.DonationRequest, error) {
	return s.findRequests(ctx, bson.M{"donationStatus": domain.StatusPending}, nil)
}

func (s *Store) ListAllRequests(ctx context.Context) ([]domain.DonationRequest, error) {
	return s.findRequests(ctx, bson.M{}, nil)
}

// ListRequestsByEmail returns the requester's own requests. A positive
// limit gives the newest ones first (insertion order via _id).
func (s *Store) ListRequestsByEmail(ctx context.Context, email string, limit int64) ([]domain.DonationRequest, error) {
	var opts *options.FindOptions
	if limit > 0 {
		opts = options.Find().
			SetSort(bson.D{{Key: "_id", Value: -1}}).
			SetLimit(limit)
	}
	return s.findRequests(ctx, bson.M{"requesterEmail": email}, opts)
}

func (s *Store) findRequests(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.DonationRequest, error) {
	var cur *mongo.Cursor
	var err error
	if opts != nil {
		cur, err = s.colRequests.Find(ctx, filter, opts)
	} else {
		cur, err = s.colRequests.Find(ctx, filter)
	}
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []domain.DonationRequest
	for cur.Next(ctx) {
		var r domain.DonationRequest
		if err := cur.Decode(&r); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, cur.Err()
}

func (s *Store) DeleteRequest(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.colRequests.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// SetRequestStatus covers the canceled/done transitions: status only,
// donor fields untouched.
func (s *Store) SetRequestStatus(ctx context.Context, id primitive.ObjectID, status string) (matched, modified int64, err error) {
	res, err := s.colRequests.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"donationStatus": status}})
	if err != nil {
		return 0, 0, err
	}
	return res.MatchedCount, res.ModifiedCount, nil
}

// AssignDonor is the inprogress transition: the only write path that
// populates donor identity.
func (s *Store) AssignDonor(ctx context.Context, id primitive.ObjectID, donorName, donorEmail string) (matched, modified int64, err error) {
	res, err := s.colRequests.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"donationStatus": domain.StatusInProgress,
			"donorName":      donorName,
			"donorEmail":     donorEmail,
		}})
	if err != nil {
		return 0, 0, err
	}
	return res.MatchedCount, res.ModifiedCount, nil
}

func (s *Store) UpdateRequestDetails(ctx context.Context, id primitive.ObjectID, u RequestUpdate) (matched, modified int64, err error) {
	res, err := s.colRequests.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"recipientName": u.RecipientName,
		"bloodGroup":    u.BloodGroup,
		"hospital":      u.Hospital,
		"fullAddress":   u.FullAddress,
		"district":      u.District,
		"upazilla":      u.Upazilla,
		"date":          u.Date,
		"time":          u.Time,
		"message":       u.Message,
	}})
	if err != nil {
		return 0, 0, err
	}
	return res.MatchedCount, res.ModifiedCount, nil
}
