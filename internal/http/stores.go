package http

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hopepulse/hopepulse-api/internal/domain"
	"github.com/hopepulse/hopepulse-api/internal/repo"
)

// Per-resource views of the store, so handlers depend on exactly what
// they call and tests can swap in fakes. *repo.Store satisfies all four.

type UserStore interface {
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	CreateUser(ctx context.Context, u *domain.User) error
	ListUsers(ctx context.Context) ([]domain.User, error)
	UpdateUserProfile(ctx context.Context, id primitive.ObjectID, p repo.ProfileUpdate) (matched, modified int64, err error)
	UpdateUserRole(ctx context.Context, id primitive.ObjectID, role string) (matched, modified int64, err error)
	UpdateUserStatus(ctx context.Context, id primitive.ObjectID, status string) (matched, modified int64, err error)
}

type RequestStore interface {
	CreateRequest(ctx context.Context, r *domain.DonationRequest) error
	RequestByID(ctx context.Context, id primitive.ObjectID) (*domain.DonationRequest, error)
	ListPendingRequests(ctx context.Context) ([]domain.DonationRequest, error)
	ListAllRequests(ctx context.Context) ([]domain.DonationRequest, error)
	ListRequestsByEmail(ctx context.Context, email string, limit int64) ([]domain.DonationRequest, error)
	DeleteRequest(ctx context.Context, id primitive.ObjectID) (int64, error)
	SetRequestStatus(ctx context.Context, id primitive.ObjectID, status string) (matched, modified int64, err error)
	AssignDonor(ctx context.Context, id primitive.ObjectID, donorName, donorEmail string) (matched, modified int64, err error)
	UpdateRequestDetails(ctx context.Context, id primitive.ObjectID, u repo.RequestUpdate) (matched, modified int64, err error)
}

type BlogStore interface {
	CreateBlog(ctx context.Context, b *domain.Blog) error
	ListBlogs(ctx context.Context) ([]domain.Blog, error)
	ListPublishedBlogs(ctx context.Context) ([]domain.Blog, error)
	SetBlogStatus(ctx context.Context, id primitive.ObjectID, status string) (matched, modified int64, err error)
}

type PaymentStore interface {
	InsertPayment(ctx context.Context, p *domain.Payment) error
	ListPayments(ctx context.Context) ([]domain.Payment, error)
}
