package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Router uses the standard library http.ServeMux (no third-party routing
// dependency needed for this surface).
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RegisterKioskRoutes registers the routes the kiosk frontend calls.
func (r *Router) RegisterKioskRoutes(k *KioskHandler) {
	r.Handle("/kiosk/api/v1/programs", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		k.GetPrograms(w, req)
	})

	r.Handle("/kiosk/api/v1/registrations", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		k.SubmitRegistration(w, req)
	})

	r.Handle("/kiosk/api/v1/registrations/export", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		k.ExportRegistrations(w, req)
	})

	// registrations/{id} and registrations/{id}/convert
	r.Handle("/kiosk/api/v1/registrations/", func(w http.ResponseWriter, req *http.Request) {
		rest := strings.TrimPrefix(req.URL.Path, "/kiosk/api/v1/registrations/")
		switch {
		case rest == "":
			w.WriteHeader(http.StatusNotFound)
		case strings.HasSuffix(rest, "/convert"):
			if req.Method != http.MethodPost {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			k.ConvertVisitor(w, req, strings.TrimSuffix(rest, "/convert"))
		case !strings.Contains(rest, "/"):
			if req.Method != http.MethodGet {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			k.GetVisitor(w, req, rest)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	r.Handle("/healthz", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}
