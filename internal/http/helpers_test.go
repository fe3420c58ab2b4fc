package http_test

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hopepulse/hopepulse-api/internal/domain"
	api "github.com/hopepulse/hopepulse-api/internal/http"
	"github.com/hopepulse/hopepulse-api/internal/queue"
	"github.com/hopepulse/hopepulse-api/internal/repo"
	"github.com/hopepulse/hopepulse-api/internal/security"
)

const testSecret = "test_secret"

// memStore is an in-memory stand-in for *repo.Store so handler tests
// run without Mongo.
type memStore struct {
	mu       sync.Mutex
	users    []*domain.User
	requests []*domain.DonationRequest
	blogs    []*domain.Blog
	payments []*domain.Payment
}

func newMemStore() *memStore { return &memStore{} }

func (m *memStore) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) CreateUser(_ context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.users {
		if e.Email == u.Email {
			return errors.New("duplicate key")
		}
	}
	u.ID = primitive.NewObjectID()
	cp := *u
	m.users = append(m.users, &cp)
	return nil
}

func (m *memStore) ListUsers(_ context.Context) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *memStore) userByID(id primitive.ObjectID) *domain.User {
	for _, u := range m.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (m *memStore) UpdateUserProfile(_ context.Context, id primitive.ObjectID, p repo.ProfileUpdate) (int64, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.userByID(id)
	if u == nil {
		return 0, 0, nil
	}
	u.Name, u.BloodGroup, u.District, u.Upazilla, u.Image = p.Name, p.BloodGroup, p.District, p.Upazilla, p.Image
	return 1, 1, nil
}

func (m *memStore) UpdateUserRole(_ context.Context, id primitive.ObjectID, role string) (int64, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.userByID(id)
	if u == nil {
		return 0, 0, nil
	}
	u.Role = role
	return 1, 1, nil
}

func (m *memStore) UpdateUserStatus(_ context.Context, id primitive.ObjectID, status string) (int64, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.userByID(id)
	if u == nil {
		return 0, 0, nil
	}
	u.Status = status
	return 1, 1, nil
}

func (m *memStore) CreateRequest(_ context.Context, r *domain.DonationRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = primitive.NewObjectID()
	cp := *r
	m.requests = append(m.requests, &cp)
	return nil
}

func (m *memStore) requestByID(id primitive.ObjectID) *domain.DonationRequest {
	for _, r := range m.requests {
		if r.ID == id {
			return r
		}
	}
	return nil
}

func (m *memStore) RequestByID(_ context.Context, id primitive.ObjectID) (*domain.DonationRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r := m.requestByID(id); r != nil {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

func (m *memStore) ListPendingRequests(_ context.Context) ([]domain.DonationRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.DonationRequest
	for _, r := range m.requests {
		if r.DonationStatus == domain.StatusPending {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memStore) ListAllRequests(_ context.Context) ([]domain.DonationRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.DonationRequest, 0, len(m.requests))
	for _, r := range m.requests {
		out = append(out, *r)
	}
	return out, nil
}

func (m *memStore) ListRequestsByEmail(_ context.Context, email string, limit int64) ([]domain.DonationRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.DonationRequest
	if limit > 0 {
		// newest first, like the _id desc sort
		for i := len(m.requests) - 1; i >= 0 && int64(len(out)) < limit; i-- {
			if m.requests[i].RequesterEmail == email {
				out = append(out, *m.requests[i])
			}
		}
		return out, nil
	}
	for _, r := range m.requests {
		if r.RequesterEmail == email {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memStore) DeleteRequest(_ context.Context, id primitive.ObjectID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.requests {
		if r.ID == id {
			m.requests = append(m.requests[:i], m.requests[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (m *memStore) SetRequestStatus(_ context.Context, id primitive.ObjectID, status string) (int64, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := m.requestByID(id)
	if r == nil {
		return 0, 0, nil
	}
	r.DonationStatus = status
	return 1, 1, nil
}

func (m *memStore) AssignDonor(_ context.Context, id primitive.ObjectID, donorName, donorEmail string) (int64, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := m.requestByID(id)
	if r == nil {
		return 0, 0, nil
	}
	r.DonationStatus = domain.StatusInProgress
	r.DonorName, r.DonorEmail = donorName, donorEmail
	return 1, 1, nil
}

func (m *memStore) UpdateRequestDetails(_ context.Context, id primitive.ObjectID, u repo.RequestUpdate) (int64, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := m.requestByID(id)
	if r == nil {
		return 0, 0, nil
	}
	r.RecipientName, r.BloodGroup, r.Hospital = u.RecipientName, u.BloodGroup, u.Hospital
	r.FullAddress, r.District, r.Upazilla = u.FullAddress, u.District, u.Upazilla
	r.Date, r.Time, r.Message = u.Date, u.Time, u.Message
	return 1, 1, nil
}

func (m *memStore) CreateBlog(_ context.Context, b *domain.Blog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b.ID = primitive.NewObjectID()
	cp := *b
	m.blogs = append(m.blogs, &cp)
	return nil
}

func (m *memStore) ListBlogs(_ context.Context) ([]domain.Blog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Blog, 0, len(m.blogs))
	for _, b := range m.blogs {
		out = append(out, *b)
	}
	return out, nil
}

func (m *memStore) ListPublishedBlogs(_ context.Context) ([]domain.Blog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Blog
	for _, b := range m.blogs {
		if b.Status == domain.BlogPublished {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *memStore) SetBlogStatus(_ context.Context, id primitive.ObjectID, status string) (int64, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.blogs {
		if b.ID == id {
			b.Status = status
			return 1, 1, nil
		}
	}
	return 0, 0, nil
}

func (m *memStore) InsertPayment(_ context.Context, p *domain.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = primitive.NewObjectID()
	cp := *p
	m.payments = append(m.payments, &cp)
	return nil
}

func (m *memStore) ListPayments(_ context.Context) ([]domain.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Payment, 0, len(m.payments))
	for _, p := range m.payments {
		out = append(out, *p)
	}
	return out, nil
}

// fakeIntents records the minor-unit amounts it was asked to charge.
type fakeIntents struct {
	mu      sync.Mutex
	amounts []int64
	fail    bool
}

func (f *fakeIntents) CreateIntent(_ context.Context, amountMinor int64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return "", errors.New("provider down")
	}
	f.amounts = append(f.amounts, amountMinor)
	return "pi_test_secret", nil
}

type testEnv struct {
	Store   *memStore
	Intents *fakeIntents
	Handler *api.Handler
	Router  *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithPublisher(t, queue.NewNoop())
}

func newTestEnvWithPublisher(t *testing.T, pub queue.Publisher) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ms := newMemStore()
	fi := &fakeIntents{}
	h := api.NewHandler(ms, ms, ms, ms, fi, pub, testSecret)
	return &testEnv{Store: ms, Intents: fi, Handler: h, Router: api.NewRouter(h)}
}

func (e *testEnv) token(t *testing.T, email string) string {
	t.Helper()
	tok, err := security.MakeAccess(testSecret, email, "", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return tok
}

func (e *testEnv) do(method, path, body string, hdr map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	e.Router.ServeHTTP(w, req)
	return w
}

func bearer(tok string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + tok}
}
