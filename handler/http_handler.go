package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"apiprobe/storage"

	"github.com/gin-gonic/gin"
)

// HTTPHandler serves the user and structure API the smoke test probes.
type HTTPHandler struct {
	Engine *gin.Engine
	repo   storage.Repository
}

// NewHTTPHandler creates a new instance of HTTPHandler backed by repo.
func NewHTTPHandler(repo storage.Repository) *HTTPHandler {
	e := gin.New()
	e.Use(gin.Recovery(), logRequest())

	h := &HTTPHandler{Engine: e, repo: repo}
	h.setupRoutes()
	return h
}

func (h *HTTPHandler) setupRoutes() {
	h.Engine.GET("/health", h.health)

	api := h.Engine.Group("/api")
	{
		api.POST("/register", h.register)
		api.POST("/login", h.login)
		api.GET("/user/:email", h.getUser)
		api.POST("/user/:email/save-structure", h.saveStructure)
		api.GET("/user/:email/structures", h.listStructures)
	}
}

// ServeHTTP implements the http.Handler interface for HTTPHandler.
func (h *HTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.Engine.ServeHTTP(w, r)
}

func (h *HTTPHandler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *HTTPHandler) register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logAndReturnError(c, "fullName, email and password are required", http.StatusBadRequest)
		return
	}

	u, err := h.repo.CreateUser(req.FullName, req.Email, req.Password)
	if errors.Is(err, storage.ErrDuplicate) {
		logAndReturnError(c, "User already exists", http.StatusConflict)
		return
	}
	if err != nil {
		logAndReturnError(c, "Failed to register user", http.StatusInternalServerError, fmt.Sprintf("create user %s: %s", req.Email, err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    newUserResponse(u),
	})
}

func (h *HTTPHandler) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logAndReturnError(c, "email and password are required", http.StatusBadRequest)
		return
	}

	u, err := h.repo.Authenticate(req.Email, req.Password)
	if errors.Is(err, storage.ErrNotFound) {
		logAndReturnError(c, "Invalid email or password", http.StatusUnauthorized)
		return
	}
	if err != nil {
		logAndReturnError(c, "Failed to log in", http.StatusInternalServerError, fmt.Sprintf("authenticate %s: %s", req.Email, err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    newUserResponse(u),
	})
}

// userFromPath resolves the :email parameter, writing the error reply itself when
// the user cannot be loaded.
func (h *HTTPHandler) userFromPath(c *gin.Context) (*storage.User, bool) {
	email := c.Param("email")
	u, err := h.repo.GetUserByEmail(email)
	if errors.Is(err, storage.ErrNotFound) {
		logAndReturnError(c, "User not found", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		logAndReturnError(c, "Failed to load user", http.StatusInternalServerError, fmt.Sprintf("get user %s: %s", email, err))
		return nil, false
	}
	return u, true
}

func (h *HTTPHandler) getUser(c *gin.Context) {
	u, ok := h.userFromPath(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newUserResponse(u))
}

func (h *HTTPHandler) saveStructure(c *gin.Context) {
	u, ok := h.userFromPath(c)
	if !ok {
		return
	}

	var req SaveStructureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logAndReturnError(c, "name is required", http.StatusBadRequest)
		return
	}
	data := structureData{Nodes: req.Nodes, Bonds: req.Bonds}
	if data.Nodes == nil {
		data.Nodes = []map[string]any{}
	}
	if data.Bonds == nil {
		data.Bonds = []map[string]any{}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		logAndReturnError(c, "Failed to save structure", http.StatusInternalServerError, fmt.Sprintf("encode structure: %s", err))
		return
	}

	s, err := h.repo.CreateStructure(u.ID, req.Name, raw)
	if err != nil {
		logAndReturnError(c, "Failed to save structure", http.StatusInternalServerError, fmt.Sprintf("create structure for %s: %s", u.Email, err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Structure saved successfully",
		"structure": newStructureResponse(s),
	})
}

func (h *HTTPHandler) listStructures(c *gin.Context) {
	u, ok := h.userFromPath(c)
	if !ok {
		return
	}

	list, err := h.repo.ListStructures(u.ID)
	if err != nil {
		logAndReturnError(c, "Failed to list structures", http.StatusInternalServerError, fmt.Sprintf("list structures for %s: %s", u.Email, err))
		return
	}

	out := make([]StructureResponse, 0, len(list))
	for i := range list {
		out = append(out, newStructureResponse(&list[i]))
	}
	c.JSON(http.StatusOK, gin.H{"structures": out})
}
