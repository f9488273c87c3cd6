package api

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/Garia-IT-Solutions/certificate-manager/docs"
	"github.com/Garia-IT-Solutions/certificate-manager/internal/api/handlers"
	"github.com/Garia-IT-Solutions/certificate-manager/internal/api/middleware"
	"github.com/Garia-IT-Solutions/certificate-manager/internal/config"
	"github.com/Garia-IT-Solutions/certificate-manager/internal/services"
)

func SetupRouter(db *gorm.DB, logger *zap.Logger) http.Handler {
	reconciler := services.NewReconciler(db, logger)
	dashboard := services.NewDashboardService(db, reconciler, logger)

	authHandler := handlers.NewAuthHandler(db, logger)
	certHandler := handlers.NewCertificateHandler(db, reconciler, logger)
	docHandler := handlers.NewDocumentHandler(db, reconciler, logger)
	seaHandler := handlers.NewSeaTimeHandler(db, logger)
	profileHandler := handlers.NewProfileHandler(db, logger)
	categoryHandler := handlers.NewCategoryHandler(db, logger)
	resumeHandler := handlers.NewResumeHandler(db, logger)
	dashboardHandler := handlers.NewDashboardHandler(dashboard, logger)

	mainMux := http.NewServeMux()
	c := cors.New(config.Envs.CorsConfig)

	// ---------- PUBLIC ROUTES ----------
	mainMux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})
	mainMux.Handle("GET /metrics", promhttp.Handler())
	mainMux.HandleFunc("/docs/", httpSwagger.WrapHandler)

	authMux := http.NewServeMux()
	authMux.HandleFunc("POST /register", authHandler.Register)
	authMux.HandleFunc("POST /login", authHandler.Login)
	authMux.HandleFunc("POST /logout", authHandler.Logout)

	mainMux.Handle("/api/v1/auth/",
		http.StripPrefix("/api/v1/auth", authMux),
	)

	// ---------- PROTECTED ROUTES ----------
	protectedMux := http.NewServeMux()

	protectedMux.HandleFunc("GET /certificates", certHandler.List)
	protectedMux.HandleFunc("POST /certificates", certHandler.Create)
	protectedMux.HandleFunc("GET /certificates/{id}", certHandler.Get)
	protectedMux.HandleFunc("PATCH /certificates/{id}", certHandler.Update)
	protectedMux.HandleFunc("DELETE /certificates/{id}", certHandler.Delete)

	protectedMux.HandleFunc("GET /documents", docHandler.List)
	protectedMux.HandleFunc("POST /documents", docHandler.Create)
	protectedMux.HandleFunc("GET /documents/{id}", docHandler.Get)
	protectedMux.HandleFunc("PATCH /documents/{id}", docHandler.Update)
	protectedMux.HandleFunc("DELETE /documents/{id}", docHandler.Delete)

	protectedMux.HandleFunc("GET /seatime", seaHandler.List)
	protectedMux.HandleFunc("POST /seatime", seaHandler.Create)
	protectedMux.HandleFunc("GET /seatime/{id}", seaHandler.Get)
	protectedMux.HandleFunc("PATCH /seatime/{id}", seaHandler.Update)
	protectedMux.HandleFunc("DELETE /seatime/{id}", seaHandler.Delete)

	protectedMux.HandleFunc("GET /profile", profileHandler.Get)
	protectedMux.HandleFunc("PUT /profile", profileHandler.Update)

	protectedMux.HandleFunc("GET /categories", categoryHandler.List)
	protectedMux.HandleFunc("POST /categories", categoryHandler.Create)
	protectedMux.HandleFunc("PUT /categories/{id}", categoryHandler.Update)
	protectedMux.HandleFunc("DELETE /categories/{id}", categoryHandler.Delete)

	protectedMux.HandleFunc("GET /resumes", resumeHandler.List)
	protectedMux.HandleFunc("POST /resumes", resumeHandler.Create)
	protectedMux.HandleFunc("GET /resumes/{id}", resumeHandler.Get)
	protectedMux.HandleFunc("PUT /resumes/{id}", resumeHandler.Update)
	protectedMux.HandleFunc("DELETE /resumes/{id}", resumeHandler.Delete)

	protectedMux.HandleFunc("GET /dashboard/summary", dashboardHandler.Summary)

	mainMux.Handle("/api/v1/",
		http.StripPrefix(
			"/api/v1",
			middleware.Auth(protectedMux),
		),
	)

	handler := c.Handler(mainMux)
	handler = middleware.Metrics(handler)
	handler = middleware.Logger(logger)(handler)
	return handler
}
