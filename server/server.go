package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/wicaksana/kedai/handlers"
	"github.com/wicaksana/kedai/middlewares"
	"github.com/wicaksana/kedai/models"
)

type Server struct {
	Router *mux.Router
	server *http.Server
}

const (
	readTimeout       = 5 * time.Minute
	readHeaderTimeout = 30 * time.Second
	writeTimeout      = 5 * time.Minute
)

func SetupRoutes() *Server {
	router := mux.NewRouter()

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, `{"alive": true}`)
	}).Methods("GET")

	router.HandleFunc("/register", handlers.Register).Methods("POST")
	router.HandleFunc("/login", handlers.Login).Methods("POST")
	router.HandleFunc("/refresh", handlers.RefreshToken).Methods("POST")

	router.HandleFunc("/menu", handlers.GetMenu).Methods("GET")
	router.HandleFunc("/products/{id}/modifiers", handlers.GetProductModifiers).Methods("GET")
	router.HandleFunc("/orders/updates", handlers.OrderUpdates).Methods("GET")

	// customer-facing; guests pass through with a session header
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middlewares.OptionalAuthMiddleware)

	api.HandleFunc("/logout", handlers.Logout).Methods("POST")

	api.HandleFunc("/cart", handlers.GetCart).Methods("GET")
	api.HandleFunc("/cart", handlers.ClearCart).Methods("DELETE")
	api.HandleFunc("/cart/items", handlers.AddCartItem).Methods("POST")
	api.HandleFunc("/cart/items/{id}", handlers.UpdateCartItem).Methods("PATCH")
	api.HandleFunc("/cart/items/{id}", handlers.RemoveCartItem).Methods("DELETE")

	api.HandleFunc("/orders", handlers.CreateOrder).Methods("POST")
	api.HandleFunc("/orders", handlers.ListOrders).Methods("GET")
	api.HandleFunc("/orders/{id}", handlers.GetOrder).Methods("GET")

	// staff only
	staff := api.PathPrefix("/admin").Subrouter()
	staff.Use(middlewares.RoleBasedMiddleware(models.RoleAdmin, models.RoleBarista))

	staff.HandleFunc("/orders/{id}/status", handlers.UpdateOrderStatus).Methods("PATCH")

	return &Server{
		Router: router,
	}
}

func (svr *Server) Run(port string) error {
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Session-ID"},
		AllowCredentials: true,
	})

	svr.server = &http.Server{
		Addr:              port,
		Handler:           c.Handler(svr.Router),
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
	}
	return svr.server.ListenAndServe()
}

func (svr *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return svr.server.Shutdown(ctx)
}
