// Package fakeapi is an in-memory implementation of the Currículo Xpress
// REST API, used by end-to-end tests through httptest. It mirrors the
// real service's observable behavior: JWT bearer auth with 401 on
// missing or invalid tokens, per-user archive collections, curriculum
// association endpoints with set semantics, archive deletion detaching
// the item from every curriculum, and a canned AI statement generator.
package fakeapi

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/curriculoxpress/cxpress/internal/client/models"
	"github.com/curriculoxpress/cxpress/internal/common"
)

type user struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"-"`
}

// entity is a stored record: arbitrary JSON fields plus the bookkeeping
// the real service stamps on.
type entity = map[string]any

type curriculumState struct {
	entity
	assoc map[models.Kind]map[string]bool
}

// Server holds all in-memory state behind one mutex; the test traffic is
// tiny and correctness beats parallelism here.
type Server struct {
	engine *gin.Engine
	secret []byte

	mu          sync.Mutex
	users       map[string]*user // by email
	items       map[models.Kind]map[string]entity
	curriculums map[string]*curriculumState
}

func New() *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		engine:      gin.New(),
		secret:      common.GenerateRandByteArray(32),
		users:       map[string]*user{},
		items:       map[models.Kind]map[string]entity{},
		curriculums: map[string]*curriculumState{},
	}
	for _, k := range archiveAndStatementKinds() {
		s.items[k] = map[string]entity{}
	}
	s.routes()
	return s
}

// Handler exposes the server for httptest.NewServer.
func (s *Server) Handler() http.Handler { return s.engine }

func archiveAndStatementKinds() []models.Kind {
	return append(models.ArchiveKinds(), models.KindStatements)
}

func (s *Server) routes() {
	s.engine.POST("/auth/register", s.register)
	s.engine.POST("/auth/login", s.login)

	authed := s.engine.Group("", s.requireAuth)
	for _, kind := range archiveAndStatementKinds() {
		k := kind
		authed.GET(k.Path(), func(c *gin.Context) { s.list(c, k) })
		authed.POST(k.Path(), func(c *gin.Context) { s.create(c, k) })
		authed.GET(k.Path()+"/:id", func(c *gin.Context) { s.get(c, k) })
		authed.PUT(k.Path()+"/:id", func(c *gin.Context) { s.update(c, k) })
		authed.DELETE(k.Path()+"/:id", func(c *gin.Context) { s.remove(c, k) })
	}

	authed.GET("/curriculums", s.listCurriculums)
	authed.POST("/curriculums", s.createCurriculum)
	authed.GET("/curriculums/:id", s.getCurriculum)
	authed.PUT("/curriculums/:id", s.updateCurriculum)
	authed.DELETE("/curriculums/:id", s.deleteCurriculum)

	for _, kind := range models.ArchiveKinds() {
		k := kind
		authed.POST("/curriculums/:id/"+string(k)+"/:itemId", func(c *gin.Context) { s.attach(c, k) })
		authed.DELETE("/curriculums/:id/"+string(k)+"/:itemId", func(c *gin.Context) { s.detach(c, k) })
	}

	authed.POST("/ai/generate-statement", s.generateStatement)
}

// ---- auth ----

func (s *Server) register(c *gin.Context) {
	var req models.RegisterUser
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name, email and password are required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[req.Email]; exists {
		c.JSON(http.StatusConflict, gin.H{"message": "email already registered"})
		return
	}

	u := &user{ID: uuid.NewString(), Name: req.Name, Email: req.Email, Password: req.Password}
	s.users[req.Email] = u
	c.JSON(http.StatusCreated, u)
}

func (s *Server) login(c *gin.Context) {
	var req models.LoginUser
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email and password are required"})
		return
	}

	s.mu.Lock()
	u, ok := s.users[req.Email]
	s.mu.Unlock()

	if !ok || u.Password != req.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid credentials"})
		return
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": u.ID,
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	}).SignedString(s.secret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not sign token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (s *Server) requireAuth(c *gin.Context) {
	header := c.GetHeader("Authorization")
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing bearer token"})
		return
	}

	token, err := jwt.Parse(raw, func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
		return
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
		return
	}

	c.Set("userID", sub)
	c.Next()
}

func userID(c *gin.Context) string { return c.GetString("userID") }

// ---- generic per-kind CRUD ----

func now() string { return time.Now().UTC().Format(time.RFC3339) }

func (s *Server) list(c *gin.Context, kind models.Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []entity{}
	for _, e := range s.items[kind] {
		if e["userId"] == userID(c) {
			out = append(out, e)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) create(c *gin.Context, kind models.Kind) {
	var body entity
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	body["id"] = uuid.NewString()
	body["userId"] = userID(c)
	body["createdAt"] = now()
	body["updatedAt"] = now()
	s.items[kind][body["id"].(string)] = body

	c.JSON(http.StatusCreated, body)
}

func (s *Server) find(c *gin.Context, kind models.Kind, id string) (entity, bool) {
	e, ok := s.items[kind][id]
	if !ok || e["userId"] != userID(c) {
		c.JSON(http.StatusNotFound, gin.H{"message": fmt.Sprintf("%s not found", kind)})
		return nil, false
	}
	return e, true
}

func (s *Server) get(c *gin.Context, kind models.Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.find(c, kind, c.Param("id")); ok {
		c.JSON(http.StatusOK, e)
	}
}

func (s *Server) update(c *gin.Context, kind models.Kind) {
	var patch entity
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.find(c, kind, c.Param("id"))
	if !ok {
		return
	}
	for k, v := range patch {
		e[k] = v
	}
	e["updatedAt"] = now()
	c.JSON(http.StatusOK, e)
}

// remove deletes an archive item and detaches it from every curriculum
// referencing it. The curriculums themselves survive.
func (s *Server) remove(c *gin.Context, kind models.Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := c.Param("id")
	if _, ok := s.find(c, kind, id); !ok {
		return
	}
	delete(s.items[kind], id)
	for _, cur := range s.curriculums {
		delete(cur.assoc[kind], id)
	}
	c.Status(http.StatusNoContent)
}

// ---- curriculums ----

func (s *Server) listCurriculums(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []entity{}
	for _, cur := range s.curriculums {
		if cur.entity["userId"] == userID(c) {
			out = append(out, s.curriculumDetail(cur))
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) createCurriculum(c *gin.Context) {
	var req models.CreateCurriculum
	if err := c.ShouldBindJSON(&req); err != nil || req.StatementID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "statementId is required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.items[models.KindStatements][req.StatementID]
	if !ok || st["userId"] != userID(c) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "statement not found"})
		return
	}

	cur := &curriculumState{
		entity: entity{
			"id":          uuid.NewString(),
			"title":       req.Title,
			"userId":      userID(c),
			"statementId": req.StatementID,
			"createdAt":   now(),
			"updatedAt":   now(),
		},
		assoc: map[models.Kind]map[string]bool{},
	}
	for _, k := range models.ArchiveKinds() {
		cur.assoc[k] = map[string]bool{}
	}
	s.curriculums[cur.entity["id"].(string)] = cur

	c.JSON(http.StatusCreated, s.curriculumDetail(cur))
}

// curriculumDetail embeds the statement and the associated item arrays,
// the shape GET /curriculums/:id returns.
func (s *Server) curriculumDetail(cur *curriculumState) entity {
	detail := entity{}
	for k, v := range cur.entity {
		detail[k] = v
	}

	detail["statement"] = s.items[models.KindStatements][cur.entity["statementId"].(string)]
	for _, kind := range models.ArchiveKinds() {
		arr := []entity{}
		for id := range cur.assoc[kind] {
			if e, ok := s.items[kind][id]; ok {
				arr = append(arr, e)
			}
		}
		detail[string(kind)] = arr
	}
	return detail
}

func (s *Server) findCurriculum(c *gin.Context, id string) (*curriculumState, bool) {
	cur, ok := s.curriculums[id]
	if !ok || cur.entity["userId"] != userID(c) {
		c.JSON(http.StatusNotFound, gin.H{"message": "curriculum not found"})
		return nil, false
	}
	return cur, true
}

func (s *Server) getCurriculum(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cur, ok := s.findCurriculum(c, c.Param("id")); ok {
		c.JSON(http.StatusOK, s.curriculumDetail(cur))
	}
}

func (s *Server) updateCurriculum(c *gin.Context) {
	var req models.UpdateCurriculum
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.findCurriculum(c, c.Param("id"))
	if !ok {
		return
	}
	if req.Title != nil {
		cur.entity["title"] = *req.Title
	}
	cur.entity["updatedAt"] = now()
	c.JSON(http.StatusOK, s.curriculumDetail(cur))
}

// deleteCurriculum removes the curriculum and its associations; the
// archive items themselves are untouched.
func (s *Server) deleteCurriculum(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.findCurriculum(c, c.Param("id")); !ok {
		return
	}
	delete(s.curriculums, c.Param("id"))
	c.Status(http.StatusNoContent)
}

// ---- associations ----

func (s *Server) attach(c *gin.Context, kind models.Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.findCurriculum(c, c.Param("id"))
	if !ok {
		return
	}
	if _, ok := s.find(c, kind, c.Param("itemId")); !ok {
		return
	}
	// Set membership: attaching twice is a no-op.
	cur.assoc[kind][c.Param("itemId")] = true
	c.Status(http.StatusNoContent)
}

func (s *Server) detach(c *gin.Context, kind models.Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.findCurriculum(c, c.Param("id"))
	if !ok {
		return
	}
	delete(cur.assoc[kind], c.Param("itemId"))
	c.Status(http.StatusNoContent)
}

// ---- AI ----

func (s *Server) generateStatement(c *gin.Context) {
	var req models.GenerateStatement
	if err := c.ShouldBindJSON(&req); err != nil || req.CurriculumID == "" || req.JobDescription == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "curriculumId and jobDescription are required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.findCurriculum(c, req.CurriculumID); !ok {
		return
	}

	st := entity{
		"id":        uuid.NewString(),
		"title":     req.Title,
		"text":      "Generated summary for: " + req.JobDescription,
		"userId":    userID(c),
		"createdAt": now(),
		"updatedAt": now(),
	}
	s.items[models.KindStatements][st["id"].(string)] = st

	c.JSON(http.StatusCreated, gin.H{"statement": st})
}
