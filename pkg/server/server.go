package server

import (
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cerbhq/cerberus/pkg/config"
	"github.com/cerbhq/cerberus/pkg/keys"
	"github.com/cerbhq/cerberus/pkg/server/store"
)

// Stores bundles the storage interfaces the HTTP surface runs on.
type Stores struct {
	Tenants  store.TenantStore
	Projects store.ProjectStore
	Animas   store.AnimaStore
	ApiKeys  store.ApiKeyStore
	Health   store.HealthStore
}

type Server struct {
	Router *mux.Router
	DB     *gorm.DB
	Stores Stores
	Keys   *keys.Service
	Log    *zap.Logger
	Config config.Config
	srv    *http.Server
}

func NewServer(
	stores Stores,
	keyService *keys.Service,
	db *gorm.DB,
	log *zap.Logger,
	cfg config.Config,
) *Server {

	router := mux.NewRouter().UseEncodedPath()
	srv := &http.Server{
		Handler: handlers.LoggingHandler(os.Stdout, router),
		Addr:    cfg.BindAddress + ":" + cfg.Port,
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	return &Server{
		Router: router,
		DB:     db,
		Stores: stores,
		Keys:   keyService,
		Log:    log,
		Config: cfg,
		srv:    srv,
	}
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

// StartWithListener serves on an already bound listener. Used by tests that
// need an ephemeral port.
func (s *Server) StartWithListener(l net.Listener) error {
	return s.srv.Serve(l)
}
