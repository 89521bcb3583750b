package cases

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"tradecase-backend/internal/shared/server/middleware"
	"tradecase-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the cases service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches case routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/cases", h.createCase)
	rg.GET("/cases", h.listCases)
	rg.GET("/cases/:caseId", h.getCase)
}

type createCaseRequest struct {
	ClientName   string `json:"clientName"`
	ClientEmail  string `json:"clientEmail"`
	Title        string `json:"title"`
	IssueType    string `json:"issueType"`
	DeadlineDate string `json:"deadlineDate"`
}

func (h *Handler) createCase(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req createCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	var deadline *time.Time
	if req.DeadlineDate != "" {
		parsed, err := time.Parse("2006-01-02", req.DeadlineDate)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "deadlineDate must be YYYY-MM-DD", []map[string]string{
				{"field": "deadlineDate", "issue": "invalid_format"},
			})
			return
		}
		deadline = &parsed
	}

	created, err := h.Svc.Create(c.Request.Context(), userID, CreateInput{
		ClientName:   req.ClientName,
		ClientEmail:  req.ClientEmail,
		Title:        req.Title,
		IssueType:    req.IssueType,
		DeadlineDate: deadline,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "clientName and title are required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create case", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, caseResponse(created))
}

func (h *Handler) getCase(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	caseID := c.Param("caseId")

	found, err := h.Svc.Get(c.Request.Context(), userID, caseID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "case not found", nil)
		case errors.Is(err, ErrForbidden):
			respond.Error(c, http.StatusForbidden, "forbidden", "you do not have access to this case", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "case id is required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch case", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, caseResponse(found))
}

func (h *Handler) listCases(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}

	list, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list cases", nil)
		return
	}

	items := make([]gin.H, 0, len(list))
	for _, item := range list {
		items = append(items, caseResponse(item))
	}
	respond.JSON(c, http.StatusOK, gin.H{"cases": items})
}

func caseResponse(c Case) gin.H {
	resp := gin.H{
		"id":          c.ID,
		"clientName":  c.ClientName,
		"clientEmail": c.ClientEmail,
		"title":       c.Title,
		"issueType":   c.IssueType,
		"createdAt":   c.CreatedAt,
	}
	if c.DeadlineDate != nil {
		resp["deadlineDate"] = c.DeadlineDate.Format("2006-01-02")
	}
	return resp
}
