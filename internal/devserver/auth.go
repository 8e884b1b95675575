package devserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/julianstephens/preptrack/internal/models"
	"golang.org/x/crypto/bcrypt"
)

const ctxUserID = "user_id"

type claims struct {
	ID string `json:"id"`
	jwt.RegisteredClaims
}

func (s *Server) signToken(userID string) (string, error) {
	now := s.now()
	c := claims{
		ID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
}

func (s *Server) parseToken(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", err
	}
	c, ok := parsed.Claims.(*claims)
	if !ok || c.ID == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return c.ID, nil
}

func (s *Server) requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			abort(c, http.StatusUnauthorized, "Not authorized, no token")
			return
		}
		id, err := s.parseToken(strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			abort(c, http.StatusUnauthorized, "Not authorized, token failed")
			return
		}
		s.mu.Lock()
		_, ok := s.accounts[id]
		s.mu.Unlock()
		if !ok {
			abort(c, http.StatusUnauthorized, "Not authorized, user not found")
			return
		}
		c.Set(ctxUserID, id)
		c.Next()
	}
}

func userID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

func (s *Server) handleRegister(c *gin.Context) {
	var req models.Registration
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		abort(c, http.StatusBadRequest, "Please provide all fields")
		return
	}
	if len(req.Password) < 6 {
		abort(c, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		abort(c, http.StatusInternalServerError, "Server error")
		return
	}

	s.mu.Lock()
	if _, taken := s.emails[req.Email]; taken {
		s.mu.Unlock()
		abort(c, http.StatusBadRequest, "User already exists")
		return
	}
	u := models.User{
		ID:                   s.newID(),
		Name:                 req.Name,
		Email:                req.Email,
		Role:                 "student",
		CreatedAt:            s.now().UTC(),
		NotificationsEnabled: true,
	}
	s.accounts[u.ID] = &account{user: u, hash: hash}
	s.emails[u.Email] = u.ID
	s.seedNotifications(u.ID)
	s.mu.Unlock()

	token, err := s.signToken(u.ID)
	if err != nil {
		abort(c, http.StatusInternalServerError, "Server error")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "token": token, "user": u})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req models.Credentials
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		abort(c, http.StatusBadRequest, "Please provide email and password")
		return
	}

	s.mu.Lock()
	var acct *account
	if id, ok := s.emails[strings.ToLower(strings.TrimSpace(req.Email))]; ok {
		acct = s.accounts[id]
	}
	s.mu.Unlock()

	// 400 rather than 401 so a failed sign-in does not trip the client's
	// global session reset.
	if acct == nil || bcrypt.CompareHashAndPassword(acct.hash, []byte(req.Password)) != nil {
		abort(c, http.StatusBadRequest, "Invalid credentials")
		return
	}

	token, err := s.signToken(acct.user.ID)
	if err != nil {
		abort(c, http.StatusInternalServerError, "Server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "token": token, "user": acct.user})
}

func (s *Server) handleProfile(c *gin.Context) {
	s.mu.Lock()
	u := s.accounts[userID(c)].user
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"success": true, "user": u})
}

func (s *Server) handleUpdateProfile(c *gin.Context) {
	var req models.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	s.mu.Lock()
	defer s.mu.Unlock()
	acct := s.accounts[userID(c)]
	if email != "" && email != acct.user.Email {
		if _, taken := s.emails[email]; taken {
			abort(c, http.StatusBadRequest, "Email already in use")
			return
		}
		delete(s.emails, acct.user.Email)
		s.emails[email] = acct.user.ID
		acct.user.Email = email
	}
	if req.Name != "" {
		acct.user.Name = req.Name
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": acct.user})
}

func (s *Server) handleUpdatePassword(c *gin.Context) {
	var req models.PasswordUpdate
	if err := c.ShouldBindJSON(&req); err != nil || req.CurrentPassword == "" || req.NewPassword == "" {
		abort(c, http.StatusBadRequest, "Please provide current and new password")
		return
	}
	if len(req.NewPassword) < 6 {
		abort(c, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	s.mu.Lock()
	acct := s.accounts[userID(c)]
	hash := acct.hash
	s.mu.Unlock()

	if bcrypt.CompareHashAndPassword(hash, []byte(req.CurrentPassword)) != nil {
		abort(c, http.StatusBadRequest, "Current password is incorrect")
		return
	}
	next, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.cost)
	if err != nil {
		abort(c, http.StatusInternalServerError, "Server error")
		return
	}

	s.mu.Lock()
	acct.hash = next
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password updated"})
}

func (s *Server) handleUpdateSettings(c *gin.Context) {
	var req models.SettingsUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.mu.Lock()
	acct := s.accounts[userID(c)]
	acct.user.NotificationsEnabled = req.NotificationsEnabled
	u := acct.user
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"success": true, "user": u})
}

// seedNotifications gives a new account something to show in the bell.
// Caller holds s.mu.
func (s *Server) seedNotifications(id string) {
	now := s.now().UTC()
	s.notifications[id] = []models.Notification{
		{
			ID:        s.newID(),
			Type:      models.NotificationInfo,
			Title:     "Welcome aboard",
			Message:   "Start by logging today's study habits in the daily tracker.",
			CreatedAt: now,
		},
		{
			ID:        s.newID(),
			Type:      models.NotificationReminder,
			Title:     "Take your first mock",
			Message:   "Record a mock exam to unlock the analysis hub.",
			CreatedAt: now.Add(time.Second),
		},
	}
}
