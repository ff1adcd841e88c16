package account

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/mux"
	"github.com/n10ty/account/history"
	"github.com/n10ty/account/route"
	"github.com/n10ty/account/storage"
	"github.com/n10ty/account/token"
	"github.com/n10ty/account/userhistory"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 5 * time.Second

var openStorage = storage.NewStorage

// Server serves AccountState under the configured base path.
type Server struct {
	config   *Config
	storage  storage.Storage
	identity *identity
	handler  http.Handler
}

// NewServer opens the configured storage and mounts the account routes.
// components override or complete the history components served by default.
func NewServer(config *Config, components route.Components) (*Server, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}

	s, err := openStorage(config.Storage)
	if err != nil {
		return nil, err
	}

	srv, err := NewServerWithStorage(config, s, components)
	if err != nil {
		if c, ok := s.(io.Closer); ok {
			if cerr := c.Close(); cerr != nil {
				log.Errorf("close storage: %s", cerr)
			}
		}
		return nil, err
	}
	return srv, nil
}

func NewServerWithStorage(config *Config, s storage.Storage, components route.Components) (*Server, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}

	srv := &Server{
		config:   config,
		storage:  s,
		identity: newIdentity(config),
	}

	all := route.Components{
		history.Component:     history.NewComponent(s),
		userhistory.Component: userhistory.NewComponent(s),
	}
	for name, h := range components {
		all[name] = h
	}

	opts := []route.Option{
		route.WithAuthenticator(srv.identity.trace),
		route.WithObserver(srv.recordActivation),
	}
	if config.DescribeMissing {
		opts = append(opts, route.WithFallback(route.Describe))
	}

	switch config.Router {
	case RouterGin:
		if !log.IsLevelEnabled(log.DebugLevel) {
			gin.SetMode(gin.ReleaseMode)
		}
		engine := gin.New()
		engine.Use(gin.Recovery())
		if err := route.MountGin(engine, config.BasePath, AccountState, all, opts...); err != nil {
			return nil, err
		}
		srv.handler = engine
	default:
		router := mux.NewRouter()
		if err := route.MountGorilla(router, config.BasePath, AccountState, all, opts...); err != nil {
			return nil, err
		}
		srv.handler = router
	}

	return srv, nil
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) Storage() storage.Storage {
	return s.storage
}

// Token signs a JWT for p, accepted by every guarded route of the server.
func (s *Server) Token(p token.Principal) (string, error) {
	return s.identity.Token(p)
}

// Run listens on the configured address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{Addr: s.config.Listen, Handler: s.handler}

	errc := make(chan error, 1)
	go func() {
		log.Infof("listening on %s, account routes under %q", s.config.Listen, s.config.BasePath)
		errc <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return httpServer.Shutdown(shutdownCtx)
	}
}

func (s *Server) Close() error {
	if c, ok := s.storage.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// recordActivation keeps an audit event, keyed by principal ID, for every
// route an authenticated principal activates. Anonymous activations are not recorded.
func (s *Server) recordActivation(r *http.Request, rt *route.Route) {
	p, err := token.FromRequest(r)
	if err != nil {
		return
	}

	err = s.storage.AddEvent(&storage.Event{
		Principal: p.ID,
		Type:      storage.EventRouteActivated,
		Date:      time.Now().UTC(),
		Data:      storage.EventData{"route": rt.Name, "path": r.URL.Path, "name": p.Name},
	})
	if err != nil {
		log.Errorf("record activation of %s by %s: %s", rt.Name, p.Name, err)
	}
}
