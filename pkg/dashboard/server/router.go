package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
	"github.com/laszlocph/go-login/login/github"
	"github.com/laszlocph/go-login/login/logger"
	"github.com/simantic-io/simantic/cmd/dashboard/config"
	"github.com/simantic-io/simantic/pkg/dashboard/git/customScm"
	"github.com/simantic-io/simantic/pkg/dashboard/model"
	"github.com/simantic-io/simantic/pkg/dashboard/server/session"
	"github.com/simantic-io/simantic/pkg/dashboard/server/streaming"
	"github.com/simantic-io/simantic/pkg/dashboard/storage"
	"github.com/simantic-io/simantic/pkg/dashboard/store"
	log "github.com/sirupsen/logrus"
)

var adminAuth *jwtauth.JWTAuth

func SetupRouter(
	config *config.Config,
	clientHub *streaming.ClientHub,
	store *store.Store,
	gitService customScm.CustomGitService,
	resumeStore *storage.ResumeStore,
) *chi.Mux {
	adminAuth = jwtauth.New("HS256", []byte(config.JWTSecret), nil)
	_, tokenString, _ := adminAuth.Encode(map[string]interface{}{"user_id": "simantic-admin"})
	log.Infof("Admin JWT is %s\n", tokenString)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.NoCache)

	r.Use(middleware.WithValue("clientHub", clientHub))
	r.Use(middleware.WithValue("store", store))
	r.Use(middleware.WithValue("config", config))
	r.Use(middleware.WithValue("gitService", gitService))
	r.Use(middleware.WithValue("resumeStore", resumeStore))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:9000", "http://127.0.0.1:9000"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-TOKEN", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	publicRoutes(r)
	userRoutes(r)
	adminRoutes(r)
	oauthRoutes(config, r)

	r.Group(func(r chi.Router) {
		r.Use(session.SetUser())
		r.Get("/logout", logout)
		r.Get("/ws/", func(w http.ResponseWriter, r *http.Request) {
			user, userSet := r.Context().Value("user").(*model.User)
			if !userSet {
				http.Error(w, http.StatusText(401), 401)
				return
			}
			streaming.ServeWs(clientHub, user.Login, w, r)
		})
	})

	if config.PitchDeckURL != "" {
		r.Get("/pitchdeck", http.RedirectHandler(config.PitchDeckURL, http.StatusSeeOther).ServeHTTP)
	}

	resumesDir := http.Dir(resumeStore.Root())
	r.Get("/files/*", func(w http.ResponseWriter, r *http.Request) {
		fs := http.StripPrefix("/files", http.FileServer(resumesDir))
		fs.ServeHTTP(w, r)
	})

	filesDir := http.Dir("./web/build")
	fileServer(r, "/", filesDir)
	fileServer(r, "/login", filesDir)
	fileServer(r, "/about", filesDir)
	fileServer(r, "/join", filesDir)
	fileServer(r, "/case-studies", filesDir)
	fileServer(r, "/enterprise-contact", filesDir)
	protectedFileServer(r, "/dashboard", filesDir)
	protectedFileServer(r, "/account", filesDir)
	protectedFileServer(r, "/invoice", filesDir)
	return r
}

func publicRoutes(r *chi.Mux) {
	r.Post("/api/githubOauth", githubOauthProxy)
	r.Options("/api/githubOauth", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.Post("/api/join", joinApplication)
	r.Post("/api/waitlist", waitlistSignup)
	r.Post("/api/enterpriseContact", enterpriseContact)
}

func userRoutes(r *chi.Mux) {
	r.Group(func(r chi.Router) {
		r.Use(session.SetUser())
		r.Use(session.SetCSRF())
		r.Use(session.MustUser())

		r.Get("/api/user", user)
		r.Get("/api/waitlistStatus", waitlistStatus)
		r.Post("/api/linkGithub", linkGithub)
		r.Post("/api/unlinkProvider", unlinkProvider)

		// everything the dashboard shows sits behind the waitlist
		r.Group(func(r chi.Router) {
			r.Use(session.MustAccepted())

			r.Get("/api/gitRepos", gitRepos)
			r.Get("/api/invoice", invoiceData)
			r.Post("/api/togglePin", togglePin)
			r.Get("/api/repo/{owner}/{name}/branches", branches)
			r.Get("/api/repo/{owner}/{name}/commits", commits)
			r.Get("/api/repo/{owner}/{name}/contents", browseRepo)
		})
	})
}

func adminRoutes(r *chi.Mux) {
	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(adminAuth))
		r.Use(jwtauth.Authenticator(adminAuth))
		r.Use(mustAdmin)

		r.Post("/admin/acceptUser", acceptUser)
		r.Post("/admin/revokeUser", revokeUser)
	})
}

func oauthRoutes(config *config.Config, r *chi.Mux) {
	dumper := logger.DiscardDumper()
	if config.Github.Debug {
		dumper = logger.StandardDumper()
	}
	loginMiddleware := &github.Config{
		ClientID:     config.Github.ClientID,
		ClientSecret: config.Github.ClientSecret,
		Scope:        []string{"repo", "read:user", "user:email"},
		Dumper:       dumper,
	}

	r.Group(func(r chi.Router) {
		// a set session turns the callbacks into link flows
		r.Use(session.SetUser())

		r.Get("/auth/google", googleAuth)
		r.Get("/auth/google/callback", googleAuthCallback)

		r.Handle("/auth", loginMiddleware.Handler(
			http.HandlerFunc(auth),
		))
		r.Handle("/auth/github", loginMiddleware.Handler(
			http.HandlerFunc(auth),
		))
	})
}

func mustAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, _ := jwtauth.FromContext(r.Context())
		userId := claims["user_id"]
		if userId != "simantic-admin" {
			http.Error(w, "Unauthorized", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// static files from a http.FileSystem
func fileServer(r chi.Router, path string, root http.FileSystem) {
	if strings.ContainsAny(path, "{}*") {
		panic("FileServer does not permit any URL parameters.")
	}

	if path != "/" && path[len(path)-1] != '/' {
		r.Get(path, http.RedirectHandler(path+"/", http.StatusMovedPermanently).ServeHTTP)
		path += "/"
	}
	path += "*"

	r.Get(path, func(w http.ResponseWriter, r *http.Request) {
		ctx := chi.RouteContext(r.Context())
		pathPrefix := strings.TrimSuffix(ctx.RoutePattern(), "/*")
		fs := http.StripPrefix(pathPrefix, http.FileServer(root))
		fs.ServeHTTP(w, r)
	})
}

// protectedFileServer redirects to the login page instead of serving
// the app shell when there is no session. The deep link survives the
// roundtrip in the redirect query.
func protectedFileServer(r chi.Router, path string, root http.FileSystem) {
	r.Group(func(r chi.Router) {
		r.Use(session.SetUser())

		r.Get(path, appShell(path, root))
		r.Get(path+"/*", appShell(path, root))
	})
}

func appShell(path string, root http.FileSystem) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, userSet := r.Context().Value("user").(*model.User)
		if !userSet {
			http.Redirect(w, r, "/login?redirect="+r.URL.Path, http.StatusSeeOther)
			return
		}

		// the explorer's deep links are all served the app shell, the
		// route is re-derived client side
		fs := http.StripPrefix(r.URL.Path, http.FileServer(root))
		fs.ServeHTTP(w, r)
	}
}
