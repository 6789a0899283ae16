package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"practice-quiz-service/internal/app"
	"practice-quiz-service/internal/domain"
	"github.com/gin-gonic/gin"
)

// APIHandler serves the catalog, question documents, attempt history and
// the admin create/delete endpoints.
type APIHandler struct {
	quizzes      *app.QuizService
	admin        *app.AdminService
	historyLimit int
}

func NewAPIHandler(quizzes *app.QuizService, admin *app.AdminService, historyLimit int) *APIHandler {
	return &APIHandler{quizzes: quizzes, admin: admin, historyLimit: historyLimit}
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type createQuizRequest struct {
	QuizID      string `json:"quiz_id"`
	QuizName    string `json:"quiz_name"`
	Description string `json:"description"`
	FileContent string `json:"file_content"`
}

type createQuizResponse struct {
	Success            bool     `json:"success"`
	Message            string   `json:"message"`
	Filename           string   `json:"filename"`
	QuestionsProcessed int      `json:"questions_processed"`
	Skipped            []int    `json:"skipped,omitempty"`
	Warnings           []string `json:"warnings,omitempty"`
}

type deleteQuizRequest struct {
	Filename string `json:"filename"`
	QuizName string `json:"quiz_name"`
}

type deleteQuizResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Filename string `json:"filename"`
}

func (h *APIHandler) Catalog(c *gin.Context) {
	catalog, err := h.quizzes.Catalog(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalog)
}

func (h *APIHandler) QuizSet(c *gin.Context) {
	pool, err := h.quizzes.LoadPool(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pool)
}

func (h *APIHandler) Results(c *gin.Context) {
	limit := h.historyLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid limit"})
			return
		}
		if limit <= 0 || n < limit {
			limit = n
		}
	}
	records, err := h.quizzes.History(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	if records == nil {
		records = []domain.AttemptRecord{}
	}
	c.JSON(http.StatusOK, records)
}

func (h *APIHandler) CreateQuiz(c *gin.Context) {
	var req createQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid JSON: " + err.Error()})
		return
	}
	created, err := h.admin.CreateQuizSet(c.Request.Context(), app.CreateQuizSetRequest{
		ID:          req.QuizID,
		Name:        req.QuizName,
		Description: req.Description,
		Text:        req.FileContent,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, createQuizResponse{
		Success:            true,
		Message:            fmt.Sprintf("Quiz %q created successfully!", req.QuizName),
		Filename:           created.Set.ID,
		QuestionsProcessed: len(created.Report.Questions),
		Skipped:            created.Report.Skipped,
		Warnings:           created.Report.Warnings,
	})
}

func (h *APIHandler) DeleteQuiz(c *gin.Context) {
	var req deleteQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid JSON: " + err.Error()})
		return
	}
	set, err := h.admin.DeleteQuizSet(c.Request.Context(), req.Filename)
	if err != nil {
		writeError(c, err)
		return
	}
	name := req.QuizName
	if name == "" {
		name = set.Name
	}
	c.JSON(http.StatusOK, deleteQuizResponse{
		Success:  true,
		Message:  fmt.Sprintf("Quiz %q deleted successfully!", name),
		Filename: set.ID,
	})
}

func writeError(c *gin.Context, err error) {
	c.JSON(statusFor(err), errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	var cfgErr *domain.ConfigurationError
	var loadErr *domain.DataLoadError
	switch {
	case errors.Is(err, domain.ErrQuizSetNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidQuizSetID):
		return http.StatusBadRequest
	case errors.As(err, &loadErr):
		return http.StatusInternalServerError
	case errors.As(err, &cfgErr),
		errors.Is(err, domain.ErrMissingField),
		errors.Is(err, domain.ErrMalformedData):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
