package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bridge-yp/erp-backend/api/controllers"
	"github.com/bridge-yp/erp-backend/api/middleware"
	"github.com/bridge-yp/erp-backend/internal/chats"
	"github.com/bridge-yp/erp-backend/internal/notifications"
	"github.com/bridge-yp/erp-backend/internal/orders"
	"github.com/bridge-yp/erp-backend/internal/referrals"
	"github.com/bridge-yp/erp-backend/pkg/config"
	"github.com/bridge-yp/erp-backend/pkg/db"
	"github.com/bridge-yp/erp-backend/pkg/logger"
	pkgredis "github.com/bridge-yp/erp-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *pkgredis.Client,
	registry *prometheus.Registry,
	ordersService orders.Service,
	chatsService chats.Service,
	notificationsService notifications.Service,
	referralsService referrals.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	// A nil *Client boxed into an interface is no longer nil; keep the
	// interfaces nil when redis is absent.
	var cachePinger pkgredis.Pinger
	var idemStore pkgredis.IdempotencyStore
	if redisClient != nil {
		cachePinger = redisClient
		idemStore = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, cachePinger))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.ActorContext(cfg.Gateway, logg))
		r.Use(middleware.Idempotency(idemStore, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.CreateOrder(ordersService, logg))
			r.Get("/", controllers.ListOrders(ordersService, logg))
			r.Get("/{orderId}", controllers.OrderDetail(ordersService, logg))
			r.Post("/{orderId}/transition", controllers.TransitionOrder(ordersService, logg))
			r.With(middleware.RequireAdmin(logg)).Post("/{orderId}/assign", controllers.AssignOrder(ordersService, logg))
			r.Get("/{orderId}/transcript", controllers.OrderTranscript(ordersService, chatsService, logg))
			r.Post("/{orderId}/messages", controllers.PostOrderMessage(ordersService, chatsService, logg))
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(notificationsService, logg))
			r.Post("/{notificationId}/read", controllers.MarkNotificationRead(notificationsService, logg))
			r.Post("/read-all", controllers.MarkAllNotificationsRead(notificationsService, logg))
		})

		r.Route("/referrals", func(r chi.Router) {
			r.Post("/", controllers.IssueReferral(referralsService, logg))
			r.Get("/", controllers.ListReferrals(referralsService, logg))
			r.Delete("/{tokenId}", controllers.RevokeReferral(referralsService, logg))
			r.Post("/redeem", controllers.RedeemReferral(referralsService, logg))
		})
	})

	return r
}
