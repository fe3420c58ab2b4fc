package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(Metrics())

	auth := AuthJWT(h.JWTSecret)
	admin := RequireAdmin(h.Users)
	rl := RateLimit(h.Redis, h.RateLimitPerMin)

	r.GET("/", h.Root)
	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// public
	r.POST("/jwt", rl, h.IssueToken)
	r.POST("/users", rl, h.CreateUser)
	r.GET("/pending-donation-requests", h.ListPendingRequests)
	r.GET("/publishedBlogs", h.ListPublishedBlogs)
	r.POST("/create-payment-intent", h.CreatePaymentIntent)
	r.POST("/payments", h.RecordPayment)

	// token-protected
	r.POST("/createDonationRequest", auth, h.CreateDonationRequest)
	r.POST("/createBlog", auth, h.CreateBlog)
	r.GET("/user", auth, h.GetUser)
	r.GET("/user/admin/:email", auth, h.CheckAdmin)
	r.GET("/allUsers", auth, h.ListUsers)
	r.GET("/allBlogs", auth, h.ListBlogs)
	r.GET("/allDonationRequestsAd", auth, h.ListAllRequests)
	r.GET("/allFunding", auth, h.ListPayments)
	r.GET("/donationRequests", auth, h.LatestRequests)
	r.GET("/allDonationRequests", auth, h.RequestsByEmail)
	r.GET("/donationRequest/:id", auth, h.GetRequest)
	r.PATCH("/blog-status-update/:id", auth, h.UpdateBlogStatus)
	r.PATCH("/request-status-update/:id", auth, h.UpdateRequestStatus)
	r.PATCH("/requestUpdate/:id", auth, h.UpdateRequestDetails)

	// covers /user-update/:id (profile), /user-update/status/:id and the
	// admin-only /user-update/role/:id
	r.PATCH("/user-update/:seg", auth, h.UserUpdateDispatch)
	r.PATCH("/user-update/:seg/:id", auth, h.UserUpdateDispatch)

	// token + admin
	r.DELETE("/requestDelete/:id", auth, admin, h.DeleteRequest)

	return r
}
