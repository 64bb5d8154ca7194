// Package web serves the public menu and the admin panel.
package web

import (
	"crypto/rand"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"food-menu/models"
	"food-menu/services"
	"food-menu/session"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxUploadBytes = 10 << 20

type Options struct {
	Menu     *services.Menu
	Admin    *services.Admin
	Verifier services.Verifier
	Sessions *session.Manager
	Log      zerolog.Logger
	// UploadDir is served at /uploads/ when set (disk image backend).
	UploadDir string
	// CSRFKey authenticates the CSRF cookie. A random key is generated when empty.
	CSRFKey      []byte
	SecureCookie bool
}

type Handler struct {
	menu      *services.Menu
	admin     *services.Admin
	verifier  services.Verifier
	sessions  *session.Manager
	log       zerolog.Logger
	templates map[string]*template.Template
}

// NewRouter builds the HTTP routes.
func NewRouter(opts Options) (http.Handler, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	h := &Handler{
		menu:      opts.Menu,
		admin:     opts.Admin,
		verifier:  opts.Verifier,
		sessions:  opts.Sessions,
		log:       opts.Log,
		templates: tmpl,
	}

	protect, err := csrfProtect(opts.CSRFKey, opts.SecureCookie, h.log)
	if err != nil {
		return nil, err
	}

	router := mux.NewRouter()
	router.Use(recoverer(h.log), requestLogger(h.log), protect, h.withSession)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, `{"alive": true}`)
	}).Methods("GET")

	router.HandleFunc("/", h.showMenu).Methods("GET")
	router.HandleFunc("/menu", h.showMenu).Methods("GET")
	router.HandleFunc("/login", h.loginForm).Methods("GET")
	router.HandleFunc("/login", h.login).Methods("POST")
	router.HandleFunc("/logout", h.logout).Methods("GET")

	router.HandleFunc("/admin", h.requireLogin(h.dashboard)).Methods("GET")
	router.HandleFunc("/admin/add", h.requireLogin(h.addProduct)).Methods("POST")
	router.HandleFunc("/admin/edit/{id:[0-9]+}", h.requireLogin(h.editProduct)).Methods("POST")
	router.HandleFunc("/admin/delete/{id:[0-9]+}", sameOrigin(h.requireLogin(h.deleteProduct))).Methods("GET")

	if h.admin.CategoriesEditable() {
		router.HandleFunc("/admin/category/add", h.requireLogin(h.addCategory)).Methods("POST")
		router.HandleFunc("/admin/category/update", h.requireLogin(h.updateCategory)).Methods("POST")
		router.HandleFunc("/admin/category/delete/{id:[0-9]+}", sameOrigin(h.requireLogin(h.deleteCategory))).Methods("GET")
	}

	if opts.UploadDir != "" {
		router.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadDir))))
	}
	return router, nil
}

// csrfProtect checks the form token on every unsafe request. Plain HTTP
// requests are marked so the origin check does not demand an https Referer.
func csrfProtect(key []byte, secure bool, log zerolog.Logger) (mux.MiddlewareFunc, error) {
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate csrf key: %w", err)
		}
	}
	protect := csrf.Protect(key,
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Warn().Err(csrf.FailureReason(r)).Str("path", r.URL.Path).Msg("csrf check failed")
			http.Error(w, "Forbidden - invalid or missing form token. Reload the page and try again.", http.StatusForbidden)
		})),
	)
	return func(next http.Handler) http.Handler {
		checked := protect(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.TLS == nil && !secure {
				r = csrf.PlaintextHTTPRequest(r)
			}
			checked.ServeHTTP(w, r)
		})
	}, nil
}

var templateFuncs = template.FuncMap{
	"price": func(d decimal.Decimal) string { return d.StringFixed(2) },
}

func parseTemplates() (map[string]*template.Template, error) {
	pages := []string{"menu", "login", "admin"}
	out := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		t, err := template.New("base.html").Funcs(templateFuncs).ParseFS(templateFS, "templates/base.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		out[page] = t
	}
	return out, nil
}

type pageData struct {
	Title       string
	LoggedIn    bool
	Flashes     []session.Flash
	Placeholder string
	Error       string
	Menu        models.MenuView
	Dashboard   services.Dashboard
	// CategoriesEditable enables the category management forms.
	CategoriesEditable bool
	Uncategorized      string
	CSRFField          template.HTML
}

// render pops the session flashes into the page, saves the session and writes page.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, data pageData) {
	s := h.session(r)
	data.LoggedIn = s.LoggedIn()
	data.Flashes = s.PopFlashes()
	data.Placeholder = models.PlaceholderImage
	data.Uncategorized = models.Uncategorized
	data.CSRFField = csrf.TemplateField(r)
	if err := h.sessions.Save(w, r, s); err != nil {
		h.log.Error().Err(err).Msg("save session")
	}

	t, ok := h.templates[page]
	if !ok {
		http.Error(w, "unknown page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.ExecuteTemplate(w, "base.html", data); err != nil {
		h.log.Error().Err(err).Str("page", page).Msg("render")
	}
}

// redirect saves the session, so queued flashes survive, then redirects.
func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, to string) {
	if err := h.sessions.Save(w, r, h.session(r)); err != nil {
		h.log.Error().Err(err).Msg("save session")
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}

func (h *Handler) flash(r *http.Request, category, message string) {
	h.session(r).AddFlash(category, message)
}
