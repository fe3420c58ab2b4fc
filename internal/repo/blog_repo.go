package repo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hopepulse/hopepulse-api/internal/domain"
)

func (s *Store) CreateBlog(ctx context.Context, b *domain.Blog) error {
	res, err := s.colBlogs.InsertOne(ctx, b)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		b.ID = oid
	}
	return nil
}

func (s *Store) ListBlogs(ctx context.Context) ([]domain.Blog, error) {
	return s.findBlogs(ctx, bson.M{})
}

func (s *Store) ListPublishedBlogs(ctx context.Context) ([]domain.Blog, error) {
	return s.findBlogs(ctx, bson.M{"status": domain.BlogPublished})
}

func (s *Store) findBlogs(ctx context.Context, filter bson.M) ([]domain.Blog, error) {
	cur, err := s.colBlogs.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []domain.Blog
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) SetBlogStatus(ctx context.Context, id primitive.ObjectID, status string) (matched, modified int64, err error) {
	res, err := s.colBlogs.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return 0, 0, err
	}
	return res.MatchedCount, res.ModifiedCount, nil
}
