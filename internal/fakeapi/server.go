// Package fakeapi serves an in-memory, reqres-compatible user directory.
// It backs the client tests and lets the console run without network access.
package fakeapi

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/userdesk/internal/common"
	"github.com/dmitrijs2005/userdesk/internal/logging"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const DefaultPerPage = 6

type Option func(*Server)

// WithAPIKey rejects requests that do not carry key in x-api-key.
func WithAPIKey(key string) Option {
	return func(s *Server) { s.apiKey = key }
}

// WithRequireToken makes the /users routes demand a bearer token issued by
// this server.
func WithRequireToken() Option {
	return func(s *Server) { s.requireToken = true }
}

// WithRateLimit limits requests per client IP; n <= 0 disables limiting.
func WithRateLimit(n int, window time.Duration) Option {
	return func(s *Server) {
		s.rateLimit = n
		s.rateWindow = window
	}
}

func WithPerPage(n int) Option {
	return func(s *Server) { s.perPage = n }
}

func WithLogger(l logging.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// Server holds the directory state and the issued tokens.
type Server struct {
	store    *Store
	validate *validator.Validate
	logger   logging.Logger
	newToken func() string

	apiKey       string
	requireToken bool
	rateLimit    int
	rateWindow   time.Duration
	perPage      int

	mu         sync.Mutex
	tokens     map[string]string
	failDelete map[int]int
}

// New returns a server over store. A nil store is seeded with SeedUsers.
func New(store *Store, opts ...Option) *Server {
	if store == nil {
		store = NewStore(SeedUsers()...)
	}
	s := &Server{
		store:      store,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		logger:     logging.Discard(),
		newToken:   func() string { return strings.ReplaceAll(uuid.NewString(), "-", "") },
		perPage:    DefaultPerPage,
		rateWindow: time.Minute,
		tokens:     make(map[string]string),
		failDelete: make(map[int]int),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Server) Store() *Store {
	return s.store
}

// FailDelete makes every DELETE of id answer with status until cleared
// with status 0.
func (s *Server) FailDelete(id, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		delete(s.failDelete, id)
		return
	}
	s.failDelete[id] = status
}

// RevokeTokens forgets every issued token, which is how an expired session
// looks to a client.
func (s *Server) RevokeTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.tokens)
}

func (s *Server) issueToken(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.newToken()
	s.tokens[t] = email
	return t
}

func (s *Server) tokenValid(t string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tokens[t]
	return ok
}

func (s *Server) deleteFailure(id int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failDelete[id]
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(s.accessLog)
	if s.rateLimit > 0 {
		r.Use(httprate.Limit(s.rateLimit, s.rateWindow,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
				writeError(w, http.StatusTooManyRequests, "Too many requests")
			}),
		))
	}
	if s.apiKey != "" {
		r.Use(s.checkAPIKey)
	}

	r.Post("/login", s.handleLogin)
	r.Group(func(gr chi.Router) {
		if s.requireToken {
			gr.Use(s.checkToken)
		}
		gr.Get("/users", s.handleList)
		gr.Get("/users/{id}", s.handleGet)
		gr.Put("/users/{id}", s.handleUpdate)
		gr.Patch("/users/{id}", s.handleUpdate)
		gr.Delete("/users/{id}", s.handleDelete)
	})
	return r
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"request_id", r.Header.Get(common.RequestIDHeader),
			"duration", time.Since(start),
		)
	})
}

func (s *Server) checkAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(common.APIKeyHeader) != s.apiKey {
			writeError(w, http.StatusUnauthorized, "Missing API key")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) checkToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get(common.AuthorizationHeader)
		token, found := strings.CutPrefix(h, common.BearerPrefix)
		if !found || !s.tokenValid(token) {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		next.ServeHTTP(w, r)
	})
}
