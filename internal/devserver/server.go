// Package devserver is an in-memory implementation of the preptrack REST API.
// It backs the hidden devserver command and the client tests.
package devserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/julianstephens/preptrack/internal/logger"
	"github.com/julianstephens/preptrack/internal/models"
	"golang.org/x/crypto/bcrypt"
)

type Options struct {
	Secret     []byte
	TokenTTL   time.Duration
	BcryptCost int
	Now        func() time.Time
}

type account struct {
	user models.User
	hash []byte
}

type fault struct {
	method  string
	path    string
	status  int
	message string
}

// Server holds every user's data in memory behind one mutex
type Server struct {
	secret []byte
	ttl    time.Duration
	cost   int
	now    func() time.Time

	mu            sync.Mutex
	accounts      map[string]*account
	emails        map[string]string
	daily         map[string]map[string]models.DailyEntry
	mocks         map[string][]models.MockRecord
	skills        map[string][]models.SoftSkillSession
	notifications map[string][]models.Notification
	faults        []fault

	engine *gin.Engine
}

func New(opts Options) *Server {
	if len(opts.Secret) == 0 {
		opts.Secret = []byte(uuid.NewString())
	}
	if opts.TokenTTL == 0 {
		opts.TokenTTL = 30 * 24 * time.Hour
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Server{
		secret:        opts.Secret,
		ttl:           opts.TokenTTL,
		cost:          opts.BcryptCost,
		now:           opts.Now,
		accounts:      map[string]*account{},
		emails:        map[string]string{},
		daily:         map[string]map[string]models.DailyEntry{},
		mocks:         map[string][]models.MockRecord{},
		skills:        map[string][]models.SoftSkillSession{},
		notifications: map[string][]models.Notification{},
	}
	s.engine = s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("devserver listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// FailNext makes the next request matching method and path reply with status
// and message instead of being handled. Used to exercise client error paths.
func (s *Server) FailNext(method, path string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = append(s.faults, fault{method: method, path: path, status: status, message: message})
}

func (s *Server) routes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(), s.injectFaults())

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	api.POST("/auth/register", s.handleRegister)
	api.POST("/auth/login", s.handleLogin)

	authed := api.Group("")
	authed.Use(s.requireUser())

	authed.GET("/auth/profile", s.handleProfile)
	authed.PUT("/auth/profile", s.handleUpdateProfile)
	authed.PUT("/auth/password", s.handleUpdatePassword)
	authed.PUT("/auth/settings", s.handleUpdateSettings)

	authed.POST("/tracker", s.handleUpsertDaily)
	authed.GET("/tracker", s.handleListDaily)
	authed.GET("/tracker/stats/summary", s.handleDailyStats)
	authed.GET("/tracker/:date", s.handleGetDaily)
	authed.DELETE("/tracker/:date", s.handleDeleteDaily)

	authed.POST("/mock", s.handleCreateMock)
	authed.GET("/mock", s.handleListMocks)
	authed.GET("/mock/stats/summary", s.handleMockStats)
	authed.GET("/mock/:id", s.handleGetMock)
	authed.PUT("/mock/:id", s.handleUpdateMock)
	authed.DELETE("/mock/:id", s.handleDeleteMock)

	authed.POST("/softskills", s.handleCreateSkill)
	authed.GET("/softskills", s.handleListSkills)
	authed.GET("/softskills/stats/summary", s.handleSkillStats)
	authed.GET("/softskills/:id", s.handleGetSkill)
	authed.PUT("/softskills/:id", s.handleUpdateSkill)
	authed.DELETE("/softskills/:id", s.handleDeleteSkill)

	authed.GET("/notifications", s.handleListNotifications)
	authed.PUT("/notifications/read-all", s.handleReadAll)
	authed.PUT("/notifications/:id/read", s.handleRead)

	authed.POST("/ai/chat", s.handleChat)
	authed.GET("/insights/dashboard", s.handleDashboard)

	return r
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("devserver request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"took", time.Since(start))
	}
}

func (s *Server) injectFaults() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		for i, f := range s.faults {
			if f.method == c.Request.Method && strings.TrimPrefix(c.Request.URL.Path, "/api") == f.path {
				s.faults = append(s.faults[:i], s.faults[i+1:]...)
				s.mu.Unlock()
				abort(c, f.status, f.message)
				return
			}
		}
		s.mu.Unlock()
		c.Next()
	}
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}

func (s *Server) newID() string {
	return uuid.Must(uuid.NewV7()).String()
}
