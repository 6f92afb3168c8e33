package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/jrsteele09/surf-club-server/accounts"
	"github.com/jrsteele09/surf-club-server/auth"
	"github.com/jrsteele09/surf-club-server/chat"
	"github.com/jrsteele09/surf-club-server/comments"
	"github.com/jrsteele09/surf-club-server/internal/config"
	"github.com/jrsteele09/surf-club-server/media"
	"github.com/jrsteele09/surf-club-server/posts"
)

// Services are the domain components the handlers delegate to.
type Services struct {
	Sessions *auth.SessionManager
	Accounts accounts.Repo
	Posts    *posts.Service
	Comments *comments.Service
}

type Server struct {
	env      string // Environment (e.g., "DEV", "PROD")
	mux      *http.ServeMux
	routes   []string
	cors     config.Cors
	sessions *auth.SessionManager
	accounts accounts.Repo
	posts    *posts.Service
	comments *comments.Service
	chat     *chat.Service
	media    *media.Presigner
}

type Option func(*Server)

// WithChatModel enables POST /chat/message.
func WithChatModel(model chat.Model) Option {
	return func(s *Server) {
		s.chat = chat.NewService(model)
	}
}

// WithPresigner enables POST /media/presign.
func WithPresigner(p *media.Presigner) Option {
	return func(s *Server) {
		s.media = p
	}
}

func New(cfg *config.Config, services Services, options ...Option) (*Server, error) {
	if services.Sessions == nil || services.Accounts == nil || services.Posts == nil || services.Comments == nil {
		return nil, errors.New("[Server New] sessions, accounts, posts and comments are required")
	}

	s := &Server{
		env:      cfg.GetEnv(),
		mux:      http.NewServeMux(),
		cors:     cfg.Cors,
		sessions: services.Sessions,
		accounts: services.Accounts,
		posts:    services.Posts,
		comments: services.Comments,
		chat:     chat.NewService(nil),
	}
	for _, opt := range options {
		opt(s)
	}

	s.initRoutes()
	s.logRoutes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		if len(parts) > 1 {
			fmt.Println(formatRoute(parts[0], parts[1]))
		} else {
			fmt.Println(formatRoute("", parts[0]))
		}
	}
}

func formatRoute(method, path string) string {
	paddedMethod := fmt.Sprintf(" %-7s", method)
	color, ok := methodColors[method]
	if !ok {
		color = Gray
	}
	return fmt.Sprintf("[%-19s] %s", color+paddedMethod+ResetColor, path)
}
