// Package http serves the expense log UI: the list view with its add-entry
// form, deletion, and the summary report. It is a thin layer over the
// expense service; all validation and persistence decisions live below it.
package http

import (
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"expenselog/internal/cache"
	"expenselog/internal/charts"
	"expenselog/internal/log"
	"expenselog/internal/middleware/security"
	"expenselog/internal/middleware/trace"
	"expenselog/internal/services"
	appweb "expenselog/web"
)

type Server struct {
	http.Server
	templates  *template.Template
	svc        *services.ExpenseService
	charts     *charts.Generator
	chartCache *cache.LRU[[]byte]
	logger     *log.Logger
}

// NewServer configures routes and templates, returning a ready-to-run server.
func NewServer(addr string, svc *services.ExpenseService, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	mux := http.NewServeMux()

	s := &Server{
		svc:        svc,
		charts:     charts.NewGenerator(),
		chartCache: cache.NewLRU[[]byte](8, 5*time.Minute),
		logger:     logger.WithComponent(log.ComponentHTTP),
	}

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		s.logger.Warn("Failed parsing templates", log.FieldError, err)
	}
	s.templates = t

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		s.logger.Warn("Failed to mount embedded static FS", log.FieldError, err)
	}

	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/expenses", s.handleCreateExpense)
	mux.HandleFunc("/expenses/delete", s.handleDeleteExpense)
	mux.HandleFunc("/report", s.handleReport)
	mux.HandleFunc("/report/categories.png", s.handleCategoryChart)
	mux.HandleFunc("/report/months.png", s.handleMonthChart)
	mux.HandleFunc("/ui/categories", s.handleCategoryOptions)
	mux.HandleFunc("/healthz", handleHealth)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	tracer := trace.New(logger)
	s.Server = http.Server{
		Addr:    addr,
		Handler: headers.Middleware(tracer.Middleware(mux)),
	}

	return s
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
