package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/secmon-lab/dossier/pkg/domain/model"
	"github.com/secmon-lab/dossier/pkg/domain/types"
	"github.com/secmon-lab/dossier/pkg/usecase"
	"github.com/secmon-lab/dossier/pkg/utils/logging"
)

// WorkflowUseCase is the part of the use case layer served over HTTP
type WorkflowUseCase interface {
	Apply(ctx context.Context, cmd model.Command) (*model.Result, error)
	GetCaseState(ctx context.Context, caseID types.CaseID) (*model.CaseFile, error)
	ListCases(ctx context.Context, status *types.CaseStatus) ([]*model.Case, error)
	OpenCase(ctx context.Context, in usecase.OpenCaseInput) (*model.CaseFile, error)
	AttachSuspect(ctx context.Context, in usecase.AttachSuspectInput) (*model.SuspectLink, error)
}

var _ WorkflowUseCase = (*usecase.WorkflowUseCase)(nil)

type Server struct {
	router *chi.Mux
	uc     WorkflowUseCase
}

func New(uc WorkflowUseCase) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)

	r.Route("/api/cases", func(r chi.Router) {
		r.Use(actorMiddleware)

		r.Get("/", s.listCasesHandler)
		r.Post("/", s.openCaseHandler)
		r.Route("/{caseID}", func(r chi.Router) {
			r.Get("/", s.caseStateHandler)
			r.Post("/suspects", s.attachSuspectHandler)
			r.Post("/actions", s.applyActionHandler)
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests and puts a request
// scoped logger into the context
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		logger := logging.Default().With("request_id", middleware.GetReqID(r.Context()))
		ctx := logging.With(r.Context(), logger)

		defer func() {
			logger.Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r.WithContext(ctx))
	})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
