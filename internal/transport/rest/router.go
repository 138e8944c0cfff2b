package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"mindhaven/internal/assessment"
	"mindhaven/internal/order"
	"mindhaven/internal/transport/rest/handler"
	"mindhaven/internal/unlock"
)

// Container holds all dependencies for the router
type Container struct {
	Sessions   *assessment.Manager
	Orders     *order.Service
	Visibility *unlock.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	assessmentHandler := handler.NewAssessmentHandler(c.Sessions, c.Visibility)
	payHandler := handler.NewPayHandler(c.Orders)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/assessments", assessmentHandler.Create).Methods("POST", "OPTIONS")
	v1.HandleFunc("/assessments/{id}", assessmentHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/assessments/{id}/start", assessmentHandler.Restart).Methods("POST", "OPTIONS")
	v1.HandleFunc("/assessments/{id}/answers", assessmentHandler.Answer).Methods("POST", "OPTIONS")
	v1.HandleFunc("/assessments/{id}/back", assessmentHandler.Back).Methods("POST", "OPTIONS")
	v1.HandleFunc("/assessments/{id}/reset", assessmentHandler.Reset).Methods("POST", "OPTIONS")
	v1.HandleFunc("/assessments/{id}/result", assessmentHandler.Result).Methods("GET", "OPTIONS")

	v1.HandleFunc("/assessments/{id}/unlock/share/copy", assessmentHandler.CopyShare).Methods("POST", "OPTIONS")
	v1.HandleFunc("/assessments/{id}/unlock/visibility", assessmentHandler.VisibilityRegained).Methods("POST", "OPTIONS")
	v1.HandleFunc("/assessments/{id}/unlock/pay", assessmentHandler.ChooseChannel).Methods("POST", "OPTIONS")
	v1.HandleFunc("/assessments/{id}/unlock/pay/cancel", assessmentHandler.CancelPayment).Methods("POST", "OPTIONS")
	v1.HandleFunc("/assessments/{id}/unlock/pay/confirm", assessmentHandler.ConfirmPayment).Methods("POST", "OPTIONS")

	v1.HandleFunc("/pay/create", payHandler.Create).Methods("POST", "OPTIONS")
	v1.HandleFunc("/pay/status/{orderId}", payHandler.Status).Methods("GET", "OPTIONS")
	v1.HandleFunc("/pay/notify", payHandler.Notify).Methods("POST", "OPTIONS")
	v1.HandleFunc("/pay/mock_success", payHandler.MockSuccess).Methods("POST", "OPTIONS")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
