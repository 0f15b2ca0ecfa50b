package http

import (
	"net/http"
	"strings"
)

type RouterConfig struct {
	Appointments  *AppointmentHandler
	Categories    *CategoryHandler
	SubCategories *SubCategoryHandler
	Users         *UserHandler
	Clients       *ClientHandler
	Stats         *StatsHandler
	Settings      *SettingsHandler
	Middleware    []func(http.Handler) http.Handler
}

func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	if cfg.Appointments != nil {
		mux.HandleFunc("/api/appointments", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Appointments.List(w, r)
		})
		mux.HandleFunc("/api/appointments/create", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Appointments.Create(w, r)
		})
		mux.HandleFunc("/api/appointments/", func(w http.ResponseWriter, r *http.Request) {
			rest := strings.TrimPrefix(r.URL.Path, "/api/appointments/")
			if rest == "" {
				http.NotFound(w, r)
				return
			}
			if id, ok := strings.CutSuffix(rest, "/edit"); ok {
				if id == "" {
					http.NotFound(w, r)
					return
				}
				r = r.WithContext(ContextWithResourceID(r.Context(), id))
				switch r.Method {
				case http.MethodGet:
					cfg.Appointments.Edit(w, r)
				case http.MethodPut:
					cfg.Appointments.Update(w, r)
				default:
					methodNotAllowed(w, http.MethodGet, http.MethodPut)
				}
				return
			}
			if strings.Contains(rest, "/") {
				http.NotFound(w, r)
				return
			}
			r = r.WithContext(ContextWithResourceID(r.Context(), rest))
			if r.Method != http.MethodDelete {
				methodNotAllowed(w, http.MethodDelete)
				return
			}
			cfg.Appointments.Delete(w, r)
		})
		mux.HandleFunc("/api/appointment-status", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Appointments.StatusCounts(w, r)
		})
	}

	if cfg.Categories != nil {
		registerCatalogRoutes(mux, "/api/category", catalogHandlers{
			list:   cfg.Categories.List,
			create: cfg.Categories.Create,
			edit:   cfg.Categories.Edit,
			update: cfg.Categories.Update,
			delete: cfg.Categories.Delete,
		})
	}

	if cfg.SubCategories != nil {
		registerCatalogRoutes(mux, "/api/subcategory", catalogHandlers{
			list:   cfg.SubCategories.List,
			create: cfg.SubCategories.Create,
			edit:   cfg.SubCategories.Edit,
			update: cfg.SubCategories.Update,
			delete: cfg.SubCategories.Delete,
		})
	}

	if cfg.Users != nil {
		mux.HandleFunc("/api/users", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Users.List(w, r)
			case http.MethodPost:
				cfg.Users.Create(w, r)
			case http.MethodDelete:
				cfg.Users.BulkDelete(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost, http.MethodDelete)
			}
		})
		mux.HandleFunc("/api/users/", func(w http.ResponseWriter, r *http.Request) {
			rest := strings.TrimPrefix(r.URL.Path, "/api/users/")
			if rest == "" {
				http.NotFound(w, r)
				return
			}
			if id, ok := strings.CutSuffix(rest, "/change-role"); ok {
				if id == "" {
					http.NotFound(w, r)
					return
				}
				r = r.WithContext(ContextWithResourceID(r.Context(), id))
				if r.Method != http.MethodPatch {
					methodNotAllowed(w, http.MethodPatch)
					return
				}
				cfg.Users.ChangeRole(w, r)
				return
			}
			if strings.Contains(rest, "/") {
				http.NotFound(w, r)
				return
			}
			r = r.WithContext(ContextWithResourceID(r.Context(), rest))
			switch r.Method {
			case http.MethodPut:
				cfg.Users.Update(w, r)
			case http.MethodDelete:
				cfg.Users.Delete(w, r)
			default:
				methodNotAllowed(w, http.MethodPut, http.MethodDelete)
			}
		})
	}

	if cfg.Clients != nil {
		mux.HandleFunc("/api/clients", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Clients.List(w, r)
		})
	}

	if cfg.Stats != nil {
		mux.HandleFunc("/api/stats/appointments", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Stats.AppointmentsCount(w, r)
		})
		mux.HandleFunc("/api/stats/users", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Stats.UsersCount(w, r)
		})
	}

	if cfg.Settings != nil {
		mux.HandleFunc("/api/settings", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Settings.Show(w, r)
			case http.MethodPost:
				cfg.Settings.Update(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
	}

	var handler http.Handler = mux
	if len(cfg.Middleware) > 0 {
		for i := len(cfg.Middleware) - 1; i >= 0; i-- {
			if cfg.Middleware[i] != nil {
				handler = cfg.Middleware[i](handler)
			}
		}
	}

	return handler
}

type catalogHandlers struct {
	list   http.HandlerFunc
	create http.HandlerFunc
	edit   http.HandlerFunc
	update http.HandlerFunc
	delete http.HandlerFunc
}

// registerCatalogRoutes wires the shared catalog route shape: collection GET,
// POST {base}/create, GET/PUT {base}/{id}/edit and DELETE {base}/{id}.
func registerCatalogRoutes(mux *http.ServeMux, base string, h catalogHandlers) {
	mux.HandleFunc(base, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w, http.MethodGet)
			return
		}
		h.list(w, r)
	})
	mux.HandleFunc(base+"/create", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			methodNotAllowed(w, http.MethodPost)
			return
		}
		h.create(w, r)
	})
	mux.HandleFunc(base+"/", func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, base+"/")
		if rest == "" || rest == "create" {
			http.NotFound(w, r)
			return
		}
		if id, ok := strings.CutSuffix(rest, "/edit"); ok {
			if id == "" {
				http.NotFound(w, r)
				return
			}
			r = r.WithContext(ContextWithResourceID(r.Context(), id))
			switch r.Method {
			case http.MethodGet:
				h.edit(w, r)
			case http.MethodPut:
				h.update(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPut)
			}
			return
		}
		if strings.Contains(rest, "/") {
			http.NotFound(w, r)
			return
		}
		r = r.WithContext(ContextWithResourceID(r.Context(), rest))
		if r.Method != http.MethodDelete {
			methodNotAllowed(w, http.MethodDelete)
			return
		}
		h.delete(w, r)
	})
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	if len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
	}
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
