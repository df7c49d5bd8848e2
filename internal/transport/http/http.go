package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/corray333/backend-labs/pricing/internal/service/models/order"
	"github.com/corray333/backend-labs/pricing/internal/service/models/orderdetail"
	"github.com/corray333/backend-labs/pricing/internal/service/models/product"
	getorderdetails "github.com/corray333/backend-labs/pricing/internal/transport/http/get_order_details"
	getproduct "github.com/corray333/backend-labs/pricing/internal/transport/http/get_product"
	initcheck "github.com/corray333/backend-labs/pricing/internal/transport/http/init_check"
	listorders "github.com/corray333/backend-labs/pricing/internal/transport/http/list_orders"
	"github.com/corray333/backend-labs/pricing/internal/transport/http/setup"
	updateprice "github.com/corray333/backend-labs/pricing/internal/transport/http/update_price"
	"github.com/corray333/backend-labs/pricing/pkg/http/middleware/trace"
	"github.com/corray333/backend-labs/pricing/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type service interface {
	ListOrders(ctx context.Context) ([]order.Order, error)
	GetOrderDetails(ctx context.Context, orderID int64) ([]orderdetail.OrderDetail, error)
	GetProduct(ctx context.Context, code string) (*product.Product, error)
	UpdateDetailPrice(ctx context.Context, orderID int64, detailID int64, newPrice decimal.Decimal) (*orderdetail.OrderDetail, error)
	EnsureSchema(ctx context.Context) error
	CheckConnectivity(ctx context.Context) bool
}

type HTTPTransport struct {
	server  *http.Server
	router  *chi.Mux
	service service
}

func NewHTTPTransport(service service) *HTTPTransport {
	router := newRouter()
	server := newServer(router)
	return &HTTPTransport{
		server:  server,
		router:  router,
		service: service,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/api", func(r chi.Router) {
		r.Get("/orders", h.listOrders)
		r.Get("/orders/{orderId}", h.getOrderDetails)
		r.Put("/orders/{orderId}", h.updatePrice)
		r.Get("/products/{productCode}", h.getProduct)
		r.Get("/init", h.checkInit)
		r.Get("/setup", h.setup)
	})
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.service)
}

func (h *HTTPTransport) getOrderDetails(w http.ResponseWriter, r *http.Request) {
	getorderdetails.GetOrderDetails(w, r, h.service)
}

func (h *HTTPTransport) updatePrice(w http.ResponseWriter, r *http.Request) {
	updateprice.UpdatePrice(w, r, h.service)
}

func (h *HTTPTransport) getProduct(w http.ResponseWriter, r *http.Request) {
	getproduct.GetProduct(w, r, h.service)
}

func (h *HTTPTransport) checkInit(w http.ResponseWriter, r *http.Request) {
	initcheck.CheckInit(w, r, h.service)
}

func (h *HTTPTransport) setup(w http.ResponseWriter, r *http.Request) {
	setup.Setup(w, r, h.service)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(trace.NewTraceMiddleware)

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + listenPort(),
		Handler: router,
	}
}

func listenPort() string {
	port := viper.GetString("server.http.port")
	if port == "" {
		port = "3000"
	}

	return port
}

// PublicBaseURL is the origin clients reach the service at. Behind a
// reverse proxy it differs from the bind address, so it is overridable
// through the environment and config.
func PublicBaseURL() string {
	if u := os.Getenv("PRICING_PUBLIC_BASE_URL"); u != "" {
		return u
	}
	if u := viper.GetString("server.http.public_base_url"); u != "" {
		return u
	}

	return "http://localhost:" + listenPort()
}
