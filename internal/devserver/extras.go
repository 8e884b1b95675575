package devserver

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/julianstephens/preptrack/internal/models"
)

func (s *Server) handleListNotifications(c *gin.Context) {
	s.mu.Lock()
	out := append([]models.Notification(nil), s.notifications[userID(c)]...)
	s.mu.Unlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(out), "data": nonNil(out)})
}

func (s *Server) handleRead(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.notifications[userID(c)]
	for i := range list {
		if list[i].ID == c.Param("id") {
			list[i].IsRead = true
			c.JSON(http.StatusOK, gin.H{"success": true, "data": list[i]})
			return
		}
	}
	abort(c, http.StatusNotFound, "Notification not found")
}

func (s *Server) handleReadAll(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.notifications[userID(c)]
	for i := range list {
		list[i].IsRead = true
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "All notifications marked as read"})
}

// Notify appends a notification for the account with the given email.
// It lets the devserver command and tests simulate server-side events.
func (s *Server) Notify(email string, n models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.emails[strings.ToLower(email)]
	if !ok {
		return fmt.Errorf("no account for %s", email)
	}
	if n.ID == "" {
		n.ID = s.newID()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.now().UTC()
	}
	s.notifications[id] = append(s.notifications[id], n)
	return nil
}

func (s *Server) handleChat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		abort(c, http.StatusBadRequest, "Message is required")
		return
	}

	s.mu.Lock()
	mocks := s.mockList(userID(c))
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"success": true, "data": mentorReply(req, mocks)})
}

// mentorReply is a canned, data-aware answer standing in for the LLM
func mentorReply(req models.ChatRequest, mocks []models.MockRecord) string {
	var b strings.Builder
	if len(mocks) == 0 {
		b.WriteString("I don't see any mock results yet. Record a mock so I can tailor my advice. ")
	} else {
		latest := mocks[0]
		weakest, score := "VARC", latest.Scores.VARC
		if latest.Scores.LRDI < score {
			weakest, score = "LRDI", latest.Scores.LRDI
		}
		if latest.Scores.QA < score {
			weakest = "QA"
		}
		fmt.Fprintf(&b, "Your latest mock %q scored %.0f at the %.2f percentile; %s is your weakest section. ",
			latest.Name, latest.TotalScore(), latest.Percentile, weakest)
	}

	q := strings.ToLower(req.Message)
	switch {
	case strings.Contains(q, "quant") || strings.Contains(q, "qa"):
		b.WriteString("For Quants, revise arithmetic daily and attempt one timed sectional every other day.")
	case strings.Contains(q, "varc") || strings.Contains(q, "reading"):
		b.WriteString("For VARC, read one long editorial a day and summarise it in three lines.")
	case strings.Contains(q, "plan"):
		b.WriteString("Next week: two full mocks, three sectionals and a daily 30 minute analysis block.")
	default:
		b.WriteString("Keep analysing every mock for at least as long as you spent taking it.")
	}
	if len(req.ChatHistory) > 0 {
		fmt.Fprintf(&b, " (%d earlier messages considered.)", len(req.ChatHistory))
	}
	return b.String()
}

func (s *Server) handleDashboard(c *gin.Context) {
	uid := userID(c)
	s.mu.Lock()
	mocks := truncate(s.mockList(uid), limitParam(c))
	daily := s.dailyList(uid)
	skills := s.skillList(uid)
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"mocks":      mockStats(mocks),
		"tracker":    trackerStats(daily),
		"softSkills": skillStats(skills),
	}})
}
