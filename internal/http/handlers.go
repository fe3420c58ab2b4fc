package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/hopepulse/hopepulse-api/internal/domain"
	"github.com/hopepulse/hopepulse-api/internal/log"
	"github.com/hopepulse/hopepulse-api/internal/payments"
	"github.com/hopepulse/hopepulse-api/internal/queue"
	"github.com/hopepulse/hopepulse-api/internal/repo"
	"github.com/hopepulse/hopepulse-api/internal/security"
)

// Pinger reports whether the backing database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	Users    UserStore
	Requests RequestStore
	Blogs    BlogStore
	Payments PaymentStore
	Intents  payments.IntentCreator
	Events   queue.Publisher

	JWTSecret       string
	Redis           *repo.Redis
	RateLimitPerMin int
	DB              Pinger
}

func NewHandler(users UserStore, requests RequestStore, blogs BlogStore, pays PaymentStore,
	intents payments.IntentCreator, events queue.Publisher, jwtSecret string) *Handler {
	return &Handler{
		Users:     users,
		Requests:  requests,
		Blogs:     blogs,
		Payments:  pays,
		Intents:   intents,
		Events:    events,
		JWTSecret: jwtSecret,
	}
}

func (h *Handler) reqID(c *gin.Context) string { return c.GetString(requestIDKey) }

// publish emits a domain event without holding the request open. The
// context is detached so finishing the response does not cancel an
// in-flight publish; failures are logged, never surfaced to the caller.
func (h *Handler) publish(c *gin.Context, key string, event any) {
	ctx := context.WithoutCancel(c.Request.Context())
	reqID := h.reqID(c)
	go func() {
		ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := h.Events.Publish(ctx, queue.Exchange, key, event, reqID); err != nil {
			log.L.Error("publish event", zap.String("key", key), zap.Error(err))
		}
	}()
}

type tokenRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// IssueToken godoc
// @Summary Issue an access token for an identity payload
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /jwt [post]
func (h *Handler) IssueToken(c *gin.Context) {
	var in tokenRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	// emails are case-preserving end-to-end; the token must carry the
	// exact string the self-check path param will be compared against
	email := strings.TrimSpace(in.Email)
	if !strings.Contains(email, "@") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email"})
		return
	}
	tok, err := security.MakeAccess(h.JWTSecret, email, strings.TrimSpace(in.Name), security.AccessTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": tok})
}

// CreateUser registers a user record. Re-registering an existing email is
// a no-op that signals "already exists" instead of erroring.
func (h *Handler) CreateUser(c *gin.Context) {
	var u domain.User
	if err := c.ShouldBindJSON(&u); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	u.Email = strings.TrimSpace(u.Email)
	if !strings.Contains(u.Email, "@") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email"})
		return
	}
	existing, err := h.Users.FindUserByEmail(c.Request.Context(), u.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusOK, gin.H{"message": "user already exists", "insertedId": nil})
		return
	}
	if err := h.Users.CreateUser(c.Request.Context(), &u); err != nil {
		if repo.IsDup(err) {
			// lost the race against a concurrent registration
			c.JSON(http.StatusOK, gin.H{"message": "user already exists", "insertedId": nil})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "insert failed"})
		return
	}

	h.publish(c, "user.registered",
		queue.UserRegistered{UserID: u.ID, Email: u.Email, Name: u.Name})

	c.JSON(http.StatusOK, gin.H{"insertedId": u.ID})
}

func (h *Handler) CreateDonationRequest(c *gin.Context) {
	var r domain.DonationRequest
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if r.DonationStatus == "" {
		r.DonationStatus = domain.StatusPending
	}
	if err := h.Requests.CreateRequest(c.Request.Context(), &r); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "insert failed"})
		return
	}

	h.publish(c, "request.created", queue.DonationRequested{
		RequestID:      r.ID,
		RequesterEmail: r.RequesterEmail,
		BloodGroup:     r.BloodGroup,
		District:       r.District,
	})

	c.JSON(http.StatusOK, gin.H{"insertedId": r.ID})
}

func (h *Handler) CreateBlog(c *gin.Context) {
	var b domain.Blog
	if err := c.ShouldBindJSON(&b); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if b.Status == "" {
		b.Status = domain.BlogDraft
	}
	if err := h.Blogs.CreateBlog(c.Request.Context(), &b); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "insert failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"insertedId": b.ID})
}

// GetUser returns the record for ?email=. A missing record is a null
// body with 200, not a 404.
func (h *Handler) GetUser(c *gin.Context) {
	u, err := h.Users.FindUserByEmail(c.Request.Context(), c.Query("email"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, u)
}

// CheckAdmin is the self-check: a caller may only ask about their own
// email, anything else gets the same forbidden body RequireAdmin uses.
func (h *Handler) CheckAdmin(c *gin.Context) {
	email := c.Param("email")
	if email != c.GetString(emailKey) {
		c.JSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
		return
	}
	u, err := h.Users.FindUserByEmail(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	admin := false
	if u != nil {
		admin = u.Role == domain.RoleAdmin
	}
	c.JSON(http.StatusOK, gin.H{"admin": admin})
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.Users.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) ListPendingRequests(c *gin.Context) {
	reqs, err := h.Requests.ListPendingRequests(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, reqs)
}

func (h *Handler) ListAllRequests(c *gin.Context) {
	reqs, err := h.Requests.ListAllRequests(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, reqs)
}

// LatestRequests returns the requester's three newest requests for the
// dashboard widget.
func (h *Handler) LatestRequests(c *gin.Context) {
	reqs, err := h.Requests.ListRequestsByEmail(c.Request.Context(), c.Query("email"), 3)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, reqs)
}

func (h *Handler) RequestsByEmail(c *gin.Context) {
	reqs, err := h.Requests.ListRequestsByEmail(c.Request.Context(), c.Query("email"), 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, reqs)
}

func (h *Handler) GetRequest(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	r, err := h.Requests.RequestByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *Handler) DeleteRequest(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	deleted, err := h.Requests.DeleteRequest(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deletedCount": deleted})
}

func (h *Handler) ListBlogs(c *gin.Context) {
	blogs, err := h.Blogs.ListBlogs(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, blogs)
}

func (h *Handler) ListPublishedBlogs(c *gin.Context) {
	blogs, err := h.Blogs.ListPublishedBlogs(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, blogs)
}

// UserUpdateDispatch fans out the PATCH /user-update family. Express let
// /user-update/:id, /user-update/status/:id and /user-update/role/:id
// coexist; gin's tree cannot mix a wildcard with static siblings, so the
// three shapes share a dispatcher over the same wildcard.
func (h *Handler) UserUpdateDispatch(c *gin.Context) {
	seg, id := c.Param("seg"), c.Param("id")
	switch {
	case id == "":
		h.updateProfile(c, seg)
	case seg == "status":
		h.updateUserStatus(c, id)
	case seg == "role":
		if !h.ensureAdmin(c) {
			return
		}
		h.updateRole(c, id)
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	}
}

// ensureAdmin applies the same decision RequireAdmin makes, for the one
// route the dispatcher keeps middleware away from.
func (h *Handler) ensureAdmin(c *gin.Context) bool {
	u, err := h.Users.FindUserByEmail(c.Request.Context(), c.GetString(emailKey))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return false
	}
	if u == nil || u.Role != domain.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
		return false
	}
	return true
}

func (h *Handler) updateProfile(c *gin.Context, idHex string) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var p repo.ProfileUpdate
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	matched, modified, err := h.Users.UpdateUserProfile(c.Request.Context(), id, p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"matchedCount": matched, "modifiedCount": modified})
}

type roleUpdate struct {
	Role string `json:"role"`
}

func (h *Handler) updateRole(c *gin.Context, idHex string) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var in roleUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	matched, modified, err := h.Users.UpdateUserRole(c.Request.Context(), id, in.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"matchedCount": matched, "modifiedCount": modified})
}

type statusUpdate struct {
	Status string `json:"status"`
}

func (h *Handler) updateUserStatus(c *gin.Context, idHex string) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var in statusUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	matched, modified, err := h.Users.UpdateUserStatus(c.Request.Context(), id, in.Status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"matchedCount": matched, "modifiedCount": modified})
}

// UpdateBlogStatus toggles draft/published. Any other value is accepted
// and ignored: 200, empty body, no write.
func (h *Handler) UpdateBlogStatus(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var in statusUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if in.Status != domain.BlogDraft && in.Status != domain.BlogPublished {
		c.Status(http.StatusOK)
		return
	}
	matched, modified, err := h.Blogs.SetBlogStatus(c.Request.Context(), id, in.Status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"matchedCount": matched, "modifiedCount": modified})
}

type requestStatusUpdate struct {
	Status     string `json:"status"`
	DonorName  string `json:"donorName"`
	DonorEmail string `json:"donorEmail"`
}

// UpdateRequestStatus applies a donation status transition. canceled and
// done set the status only; inprogress additionally records the donor.
// Unknown values are accepted and ignored. The current stored status is
// never checked first, so a done record can go back to inprogress.
func (h *Handler) UpdateRequestStatus(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var in requestStatusUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	switch in.Status {
	case domain.StatusCanceled, domain.StatusDone:
		matched, modified, err := h.Requests.SetRequestStatus(c.Request.Context(), id, in.Status)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"matchedCount": matched, "modifiedCount": modified})
	case domain.StatusInProgress:
		if in.DonorName == "" || in.DonorEmail == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "donor name and email required"})
			return
		}
		matched, modified, err := h.Requests.AssignDonor(c.Request.Context(), id, in.DonorName, in.DonorEmail)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"matchedCount": matched, "modifiedCount": modified})
	default:
		c.Status(http.StatusOK)
	}
}

func (h *Handler) UpdateRequestDetails(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var u repo.RequestUpdate
	if err := c.ShouldBindJSON(&u); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	matched, modified, err := h.Requests.UpdateRequestDetails(c.Request.Context(), id, u)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"matchedCount": matched, "modifiedCount": modified})
}

type paymentIntentRequest struct {
	DonationAmount float64 `json:"donationAmount"`
}

// CreatePaymentIntent godoc
// @Summary Create a provider payment intent
// @Tags payments
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /create-payment-intent [post]
func (h *Handler) CreatePaymentIntent(c *gin.Context) {
	var in paymentIntentRequest
	if err := c.ShouldBindJSON(&in); err != nil || in.DonationAmount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid donation amount"})
		return
	}
	secret, err := h.Intents.CreateIntent(c.Request.Context(), payments.MinorUnits(in.DonationAmount))
	if err != nil {
		log.L.Error("create payment intent", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment intent"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"clientSecret": secret})
}

// RecordPayment persists a completed payment the client confirmed
// out-of-band. It is not reconciled against any previously issued intent.
func (h *Handler) RecordPayment(c *gin.Context) {
	var p domain.Payment
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if err := h.Payments.InsertPayment(c.Request.Context(), &p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "insert failed"})
		return
	}

	h.publish(c, "payment.recorded",
		queue.PaymentRecorded{PaymentID: p.ID, Email: p.Email, Amount: p.Amount, TransactionID: p.TransactionID})

	c.JSON(http.StatusOK, gin.H{"insertedId": p.ID})
}

func (h *Handler) ListPayments(c *gin.Context) {
	pays, err := h.Payments.ListPayments(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, pays)
}

func (h *Handler) Root(c *gin.Context) {
	c.String(http.StatusOK, "HopePulse server is running")
}

// Healthz pings the database when one is wired; handlers running over
// in-memory stores report ok.
func (h *Handler) Healthz(c *gin.Context) {
	if h.DB != nil {
		if err := h.DB.Ping(c.Request.Context()); err != nil {
			log.L.Error("health check", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
