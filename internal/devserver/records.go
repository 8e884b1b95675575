package devserver

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/julianstephens/preptrack/internal/models"
)

func limitParam(c *gin.Context) int {
	n, err := strconv.Atoi(c.Query("limit"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

// inRange applies the optional startDate/endDate query filters to a day
func inRange(c *gin.Context, day string) bool {
	d, err := time.Parse("2006-01-02", models.Day(day))
	if err != nil {
		return false
	}
	if v := c.Query("startDate"); v != "" {
		if start, err := parseQueryTime(v); err == nil && d.Before(start.Truncate(24*time.Hour)) {
			return false
		}
	}
	if v := c.Query("endDate"); v != "" {
		if end, err := parseQueryTime(v); err == nil && d.After(end) {
			return false
		}
	}
	return true
}

func parseQueryTime(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}

func (s *Server) handleUpsertDaily(c *gin.Context) {
	var e models.DailyEntry
	if err := c.ShouldBindJSON(&e); err != nil {
		abort(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	e.Date = models.Day(e.Date)
	if !models.ValidDate(e.Date) {
		abort(c, http.StatusBadRequest, "Please provide a valid date")
		return
	}
	if !e.Mood.Valid() {
		abort(c, http.StatusBadRequest, "Invalid mood")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	byDate := s.daily[userID(c)]
	if byDate == nil {
		byDate = map[string]models.DailyEntry{}
		s.daily[userID(c)] = byDate
	}
	if prev, ok := byDate[e.Date]; ok {
		e.ID = prev.ID
	} else {
		e.ID = s.newID()
	}
	byDate[e.Date] = e
	c.JSON(http.StatusOK, gin.H{"success": true, "data": e})
}

func (s *Server) dailyList(id string) []models.DailyEntry {
	out := make([]models.DailyEntry, 0, len(s.daily[id]))
	for _, e := range s.daily[id] {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

func (s *Server) handleListDaily(c *gin.Context) {
	s.mu.Lock()
	all := s.dailyList(userID(c))
	s.mu.Unlock()

	var out []models.DailyEntry
	for _, e := range all {
		if inRange(c, e.Date) {
			out = append(out, e)
		}
	}
	out = truncate(out, limitParam(c))
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(out), "data": nonNil(out)})
}

func (s *Server) handleGetDaily(c *gin.Context) {
	s.mu.Lock()
	e, ok := s.daily[userID(c)][c.Param("date")]
	s.mu.Unlock()
	if !ok {
		abort(c, http.StatusNotFound, "No entry found for this date")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": e})
}

func (s *Server) handleDeleteDaily(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	byDate := s.daily[userID(c)]
	if _, ok := byDate[c.Param("date")]; !ok {
		abort(c, http.StatusNotFound, "No entry found for this date")
		return
	}
	delete(byDate, c.Param("date"))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Entry deleted"})
}

func (s *Server) handleDailyStats(c *gin.Context) {
	s.mu.Lock()
	all := s.dailyList(userID(c))
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"success": true, "data": trackerStats(truncate(all, limitParam(c)))})
}

func trackerStats(entries []models.DailyEntry) models.TrackerStats {
	st := models.TrackerStats{TotalDays: len(entries)}
	for _, e := range entries {
		st.QuantDays += b2i(e.Quant)
		st.LRDIDays += b2i(e.LRDI)
		st.VARCDays += b2i(e.VARC)
		st.SoftSkillDays += b2i(e.SoftSkill)
		st.ExerciseDays += b2i(e.Exercise)
		st.GamingDays += b2i(e.Gaming)
	}
	return st
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

func validMock(m models.MockRecord) string {
	switch {
	case m.Name == "":
		return "Mock name is required"
	case !models.ValidDate(models.Day(m.Date)):
		return "Please provide a valid date"
	case !m.Slot.Valid():
		return "Invalid slot"
	case m.Percentile < 0 || m.Percentile > 100:
		return "Percentile must be between 0 and 100"
	case !m.Mood.Valid():
		return "Invalid mood"
	}
	return ""
}

func (s *Server) handleCreateMock(c *gin.Context) {
	var m models.MockRecord
	if err := c.ShouldBindJSON(&m); err != nil {
		abort(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := validMock(m); msg != "" {
		abort(c, http.StatusBadRequest, msg)
		return
	}
	m.Date = models.Day(m.Date)
	m.Total = m.Scores.Sum()

	s.mu.Lock()
	m.ID = s.newID()
	s.mocks[userID(c)] = append(s.mocks[userID(c)], m)
	s.mu.Unlock()
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": m})
}

// mockList returns the user's mocks newest first. Caller holds s.mu.
func (s *Server) mockList(id string) []models.MockRecord {
	out := append([]models.MockRecord(nil), s.mocks[id]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

func (s *Server) handleListMocks(c *gin.Context) {
	s.mu.Lock()
	all := s.mockList(userID(c))
	s.mu.Unlock()

	var out []models.MockRecord
	for _, m := range all {
		if inRange(c, m.Date) {
			out = append(out, m)
		}
	}
	out = truncate(out, limitParam(c))
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(out), "data": nonNil(out)})
}

func (s *Server) findMock(uid, id string) int {
	for i, m := range s.mocks[uid] {
		if m.ID == id {
			return i
		}
	}
	return -1
}

func (s *Server) handleGetMock(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.findMock(userID(c), c.Param("id"))
	if i < 0 {
		abort(c, http.StatusNotFound, "Mock not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": s.mocks[userID(c)][i]})
}

func (s *Server) handleUpdateMock(c *gin.Context) {
	var m models.MockRecord
	if err := c.ShouldBindJSON(&m); err != nil {
		abort(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := validMock(m); msg != "" {
		abort(c, http.StatusBadRequest, msg)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.findMock(userID(c), c.Param("id"))
	if i < 0 {
		abort(c, http.StatusNotFound, "Mock not found")
		return
	}
	m.ID = c.Param("id")
	m.Date = models.Day(m.Date)
	m.Total = m.Scores.Sum()
	s.mocks[userID(c)][i] = m
	c.JSON(http.StatusOK, gin.H{"success": true, "data": m})
}

func (s *Server) handleDeleteMock(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	uid := userID(c)
	i := s.findMock(uid, c.Param("id"))
	if i < 0 {
		abort(c, http.StatusNotFound, "Mock not found")
		return
	}
	s.mocks[uid] = append(s.mocks[uid][:i], s.mocks[uid][i+1:]...)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Mock deleted"})
}

func (s *Server) handleMockStats(c *gin.Context) {
	s.mu.Lock()
	recent := truncate(s.mockList(userID(c)), limitParam(c))
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"success": true, "data": mockStats(recent)})
}

// mockStats formats averages as fixed two-decimal strings, matching the
// production backend's toFixed output.
func mockStats(mocks []models.MockRecord) gin.H {
	if len(mocks) == 0 {
		return gin.H{
			"totalMocks":        0,
			"averagePercentile": "0.00",
			"highestPercentile": 0,
			"averageTotal":      "0.00",
			"averageScores":     gin.H{"varc": "0.00", "lrdi": "0.00", "qa": "0.00"},
		}
	}
	var pct, best, total, varc, lrdi, qa float64
	for _, m := range mocks {
		pct += m.Percentile
		total += m.TotalScore()
		varc += m.Scores.VARC
		lrdi += m.Scores.LRDI
		qa += m.Scores.QA
		if m.Percentile > best {
			best = m.Percentile
		}
	}
	n := float64(len(mocks))
	return gin.H{
		"totalMocks":        len(mocks),
		"averagePercentile": fixed(pct / n),
		"highestPercentile": best,
		"averageTotal":      fixed(total / n),
		"averageScores": gin.H{
			"varc": fixed(varc / n),
			"lrdi": fixed(lrdi / n),
			"qa":   fixed(qa / n),
		},
	}
}

func fixed(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func validSkill(sk models.SoftSkillSession) string {
	switch {
	case !sk.Type.Valid():
		return "Invalid skill type"
	case sk.Topic == "":
		return "Topic is required"
	case sk.Duration <= 0:
		return "Duration must be positive"
	case sk.Rating < models.MinRating || sk.Rating > models.MaxRating:
		return "Rating must be between 1 and 5"
	case !models.ValidDate(models.Day(sk.Date)):
		return "Please provide a valid date"
	}
	return ""
}

func (s *Server) handleCreateSkill(c *gin.Context) {
	var sk models.SoftSkillSession
	if err := c.ShouldBindJSON(&sk); err != nil {
		abort(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := validSkill(sk); msg != "" {
		abort(c, http.StatusBadRequest, msg)
		return
	}
	sk.Date = models.Day(sk.Date)

	s.mu.Lock()
	sk.ID = s.newID()
	s.skills[userID(c)] = append(s.skills[userID(c)], sk)
	s.mu.Unlock()
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": sk})
}

func (s *Server) skillList(id string) []models.SoftSkillSession {
	out := append([]models.SoftSkillSession(nil), s.skills[id]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

func (s *Server) handleListSkills(c *gin.Context) {
	s.mu.Lock()
	all := s.skillList(userID(c))
	s.mu.Unlock()

	var out []models.SoftSkillSession
	for _, sk := range all {
		if inRange(c, sk.Date) {
			out = append(out, sk)
		}
	}
	out = truncate(out, limitParam(c))
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(out), "data": nonNil(out)})
}

func (s *Server) findSkill(uid, id string) int {
	for i, sk := range s.skills[uid] {
		if sk.ID == id {
			return i
		}
	}
	return -1
}

func (s *Server) handleGetSkill(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.findSkill(userID(c), c.Param("id"))
	if i < 0 {
		abort(c, http.StatusNotFound, "Session not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": s.skills[userID(c)][i]})
}

func (s *Server) handleUpdateSkill(c *gin.Context) {
	var sk models.SoftSkillSession
	if err := c.ShouldBindJSON(&sk); err != nil {
		abort(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := validSkill(sk); msg != "" {
		abort(c, http.StatusBadRequest, msg)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.findSkill(userID(c), c.Param("id"))
	if i < 0 {
		abort(c, http.StatusNotFound, "Session not found")
		return
	}
	sk.ID = c.Param("id")
	sk.Date = models.Day(sk.Date)
	s.skills[userID(c)][i] = sk
	c.JSON(http.StatusOK, gin.H{"success": true, "data": sk})
}

func (s *Server) handleDeleteSkill(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	uid := userID(c)
	i := s.findSkill(uid, c.Param("id"))
	if i < 0 {
		abort(c, http.StatusNotFound, "Session not found")
		return
	}
	s.skills[uid] = append(s.skills[uid][:i], s.skills[uid][i+1:]...)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Session deleted"})
}

func (s *Server) handleSkillStats(c *gin.Context) {
	s.mu.Lock()
	all := s.skillList(userID(c))
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"success": true, "data": skillStats(truncate(all, limitParam(c)))})
}

func skillStats(sessions []models.SoftSkillSession) gin.H {
	byType := map[models.SkillType]int{}
	minutes, rating := 0, 0
	for _, sk := range sessions {
		byType[sk.Type]++
		minutes += sk.Duration
		rating += sk.Rating
	}
	avg := "0.00"
	if len(sessions) > 0 {
		avg = fixed(float64(rating) / float64(len(sessions)))
	}
	return gin.H{
		"totalSessions": len(sessions),
		"totalMinutes":  minutes,
		"averageRating": avg,
		"byType":        byType,
	}
}

// nonNil keeps empty lists encoding as [] rather than null
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
