package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"taskflow/internal/auth"
	"taskflow/internal/domain"
	"taskflow/internal/repository"
	"taskflow/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users   service.UserService
	tasks   service.TaskService
	tokens  *auth.TokenManager
	origins map[string]struct{}
	logger  *logrus.Logger
}

func NewHandler(users service.UserService, tasks service.TaskService, tokens *auth.TokenManager, corsOrigins []string, logger *logrus.Logger) *Handler {
	origins := make(map[string]struct{}, len(corsOrigins))
	for _, o := range corsOrigins {
		origins[o] = struct{}{}
	}
	return &Handler{
		users:   users,
		tasks:   tasks,
		tokens:  tokens,
		origins: origins,
		logger:  logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(h.requestLogger(), h.corsMiddleware())

	router.GET("/", h.root)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})
	router.POST("/register", h.register)
	router.POST("/login", h.login)

	authed := router.Group("", h.requireUser())
	{
		authed.POST("/task/", h.createTask)
		authed.GET("/tasks/", h.listMyTasks)
		authed.GET("/stats", h.stats)
	}

	admin := authed.Group("/admin", h.requireAdmin())
	{
		admin.PUT("/task/:id", h.updateTask)
		admin.DELETE("/task/:id", h.deleteTask)
		admin.GET("/users", h.listUsers)
		admin.GET("/tasks", h.listAllTasks)
		admin.DELETE("/user/:id", h.deleteUser)
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type taskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

type TaskResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	OwnerID     int64  `json:"owner_id"`
}

type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (h *Handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to TaskFlow API",
		"version": "1.0",
		"endpoints": gin.H{
			"register":     "/register",
			"login":        "/login",
			"create_task":  "/task/",
			"get_my_tasks": "/tasks/",
			"stats":        "/stats",
			"admin_endpoints": gin.H{
				"all_users":   "/admin/users",
				"all_tasks":   "/admin/tasks",
				"update_task": "/admin/task/{task_id}",
				"delete_task": "/admin/task/{task_id}",
				"delete_user": "/admin/user/{user_id}",
			},
		},
	})
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password required"})
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User " + user.Username + " registered successfully",
		"role":    user.Role,
	})
}

// login follows the OAuth2 password-grant convention: form-encoded
// username/password, bearer token in the response.
func (h *Handler) login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := h.users.Authenticate(c.Request.Context(), username, password)
	if err != nil {
		h.fail(c, err)
		return
	}

	token, err := h.tokens.Issue(user.Username, user.Role)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"role":         user.Role,
		"username":     user.Username,
	})
}

func (h *Handler) createTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	user := currentUser(c)
	task, err := h.tasks.Create(c.Request.Context(), user.ID, req.Title, req.Description, req.Completed)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, taskToResponse(task))
}

func (h *Handler) listMyTasks(c *gin.Context) {
	user := currentUser(c)
	if user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin should use /admin/tasks endpoint"})
		return
	}

	tasks, err := h.tasks.ListByOwner(c.Request.Context(), user.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tasksToResponse(tasks))
}

func (h *Handler) updateTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	task, err := h.tasks.Update(c.Request.Context(), id, req.Title, req.Description, req.Completed)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, taskToResponse(task))
}

func (h *Handler) deleteTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = UserResponse{
			ID:       users[i].ID,
			Username: users[i].Username,
			Role:     users[i].Role,
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) listAllTasks(c *gin.Context) {
	tasks, err := h.tasks.ListAll(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tasksToResponse(tasks))
}

func (h *Handler) deleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	caller := currentUser(c)
	deleted, err := h.users.Delete(c.Request.Context(), id, caller.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "User " + deleted.Username + " and all associated tasks deleted successfully",
	})
}

func (h *Handler) stats(c *gin.Context) {
	user := currentUser(c)
	stats, err := h.tasks.Stats(c.Request.Context(), user)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"role":            user.Role,
		"total_tasks":     stats.Total,
		"completed_tasks": stats.Completed,
		"pending_tasks":   stats.Pending,
		"completion_rate": stats.CompletionRate(),
	})
}

// fail maps service and repository errors onto HTTP status codes.
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUsernameTaken), errors.Is(err, service.ErrSelfDelete):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.logger.WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		OwnerID:     task.OwnerID,
	}
}

func tasksToResponse(tasks []domain.Task) []TaskResponse {
	resp := make([]TaskResponse, len(tasks))
	for i := range tasks {
		resp[i] = taskToResponse(&tasks[i])
	}
	return resp
}
