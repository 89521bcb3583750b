package gendocs

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"tradecase-backend/internal/intake"
	"tradecase-backend/internal/shared/server/middleware"
	"tradecase-backend/internal/shared/server/respond"
	"tradecase-backend/internal/strategy"
)

// Handler wires HTTP handlers to the generated-documents service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches user-facing document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/cases/:caseId/strategy", h.generateStrategy)
	rg.GET("/cases/:caseId/documents", h.listCaseDocuments)
	rg.GET("/documents/:id", h.getDocument)
	rg.GET("/documents/:id/download", h.downloadDocument)
}

// RegisterAdminRoutes attaches review-workflow routes to the admin group.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/documents/pending", h.listPending)
	rg.PUT("/documents/:id", h.updateDocument)
	rg.POST("/documents/:id/send", h.sendDocument)
}

type generateStrategyRequest struct {
	Kind           string   `json:"kind"`
	ClientName     string   `json:"clientName"`
	ClientEmail    string   `json:"clientEmail"`
	CaseTitle      string   `json:"caseTitle"`
	IssueType      string   `json:"issueType"`
	Description    string   `json:"description"`
	DisputedAmount *float64 `json:"disputedAmount"`
	Urgency        string   `json:"urgency"`
	IncidentDate   string   `json:"incidentDate"`
	DiscoveryDate  string   `json:"discoveryDate"`
	DeadlineDate   string   `json:"deadlineDate"`
	SupportingText string   `json:"supportingText"`
}

func (h *Handler) generateStrategy(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	caseID := c.Param("caseId")

	var req generateStrategyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	in := intake.CaseIntake{
		ClientName:     req.ClientName,
		ClientEmail:    req.ClientEmail,
		CaseTitle:      req.CaseTitle,
		IssueType:      intake.IssueType(req.IssueType),
		Description:    req.Description,
		DisputedAmount: req.DisputedAmount,
		Urgency:        intake.Urgency(req.Urgency),
		SupportingText: req.SupportingText,
	}
	for _, field := range []struct {
		raw  string
		dst  **time.Time
		name string
	}{
		{req.IncidentDate, &in.IncidentDate, "incidentDate"},
		{req.DiscoveryDate, &in.DiscoveryDate, "discoveryDate"},
		{req.DeadlineDate, &in.DeadlineDate, "deadlineDate"},
	} {
		if field.raw == "" {
			continue
		}
		parsed, err := time.Parse("2006-01-02", field.raw)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", field.name+" must be YYYY-MM-DD", []map[string]string{
				{"field": field.name, "issue": "invalid_format"},
			})
			return
		}
		*field.dst = &parsed
	}

	doc, err := h.Svc.GenerateStrategy(c.Request.Context(), userID, caseID, req.Kind, in)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "case not found", nil)
		case errors.Is(err, ErrForbidden):
			respond.Error(c, http.StatusForbidden, "forbidden", "you do not have access to this case", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate document", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, gin.H{
		"documentId": doc.ID,
		"status":     string(doc.Status),
		"kind":       string(doc.Kind),
		"fallback":   doc.Content.Fallback,
		"pdf":        downloadPath(doc.ID, "pdf"),
		"docx":       downloadPath(doc.ID, "docx"),
	})
}

func (h *Handler) getDocument(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	role := middleware.RoleFromContext(c)

	doc, err := h.Svc.Get(c.Request.Context(), userID, role, c.Param("id"))
	if err != nil {
		respondDocumentError(c, err, "failed to fetch document")
		return
	}
	respond.JSON(c, http.StatusOK, documentResponse(doc, true))
}

func (h *Handler) downloadDocument(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	role := middleware.RoleFromContext(c)

	reader, fileName, contentType, err := h.Svc.Download(c.Request.Context(), userID, role, c.Param("id"), c.Query("format"))
	if err != nil {
		respondDocumentError(c, err, "failed to download document")
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	// Headers are committed once the copy starts; errors here can only be
	// logged.
	if _, err := io.Copy(c.Writer, reader); err != nil {
		_ = c.Error(err)
	}
}

func (h *Handler) listCaseDocuments(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	list, err := h.Svc.ListByCase(c.Request.Context(), userID, c.Param("caseId"))
	if err != nil {
		respondDocumentError(c, err, "failed to list documents")
		return
	}

	items := make([]gin.H, 0, len(list))
	for _, doc := range list {
		items = append(items, documentResponse(doc, false))
	}
	respond.JSON(c, http.StatusOK, gin.H{"documents": items})
}

func (h *Handler) listPending(c *gin.Context) {
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

	list, err := h.Svc.ListPending(c.Request.Context(), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list pending documents", nil)
		return
	}

	items := make([]gin.H, 0, len(list))
	for _, doc := range list {
		items = append(items, documentResponse(doc, false))
	}
	respond.JSON(c, http.StatusOK, gin.H{"documents": items})
}

type updateDocumentRequest struct {
	Content *strategy.GeneratedContent `json:"content"`
	Status  string                     `json:"status"`
}

func (h *Handler) updateDocument(c *gin.Context) {
	documentID := c.Param("id")

	var req updateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.Content == nil && req.Status == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "content or status is required", nil)
		return
	}

	var (
		doc GeneratedDocument
		err error
	)
	if req.Content != nil {
		doc, err = h.Svc.Edit(c.Request.Context(), documentID, *req.Content)
		if err != nil {
			respondDocumentError(c, err, "failed to update document")
			return
		}
	}

	if req.Status != "" {
		target, ok := NormalizeStatus(req.Status)
		if !ok {
			respond.Error(c, http.StatusBadRequest, "validation_error", "unknown status", nil)
			return
		}
		switch target {
		case StatusReviewed:
			reviewerID := middleware.UserIDFromContext(c)
			doc, err = h.Svc.Review(c.Request.Context(), reviewerID, documentID)
		case StatusSent:
			respond.Error(c, http.StatusBadRequest, "validation_error", "use the send endpoint to deliver a document", nil)
			return
		default:
			err = ErrInvalidTransition
		}
		if err != nil {
			respondDocumentError(c, err, "failed to update document")
			return
		}
	}

	respond.JSON(c, http.StatusOK, documentResponse(doc, true))
}

type sendDocumentRequest struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

func (h *Handler) sendDocument(c *gin.Context) {
	var req sendDocumentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
			return
		}
	}

	doc, err := h.Svc.Send(c.Request.Context(), c.Param("id"), SendInput{
		Recipient: req.Recipient,
		Subject:   req.Subject,
		Body:      req.Body,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrDeliveryFailed):
			respond.Error(c, http.StatusBadGateway, "delivery_failed", "the mail provider rejected the message; the document was not marked sent", nil)
		default:
			respondDocumentError(c, err, "failed to send document")
		}
		return
	}

	respond.JSON(c, http.StatusOK, documentResponse(doc, false))
}

func respondDocumentError(c *gin.Context, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "you do not have access to this document", nil)
	case errors.Is(err, ErrInvalidTransition):
		respond.Error(c, http.StatusConflict, "invalid_transition", err.Error(), nil)
	case errors.Is(err, strategy.ErrInvalidContent):
		respond.Error(c, http.StatusBadRequest, "invalid_content", err.Error(), nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallbackMsg, nil)
	}
}

func documentResponse(doc GeneratedDocument, includeContent bool) gin.H {
	resp := gin.H{
		"id":        doc.ID,
		"caseId":    doc.CaseID,
		"kind":      string(doc.Kind),
		"status":    string(doc.Status),
		"fallback":  doc.Content.Fallback,
		"pdf":       downloadPath(doc.ID, "pdf"),
		"docx":      downloadPath(doc.ID, "docx"),
		"createdAt": doc.CreatedAt,
		"updatedAt": doc.UpdatedAt,
	}
	if includeContent {
		resp["content"] = doc.Content
	}
	if doc.ReviewedBy != nil {
		resp["reviewedBy"] = *doc.ReviewedBy
	}
	if doc.ReviewedAt != nil {
		resp["reviewedAt"] = *doc.ReviewedAt
	}
	if doc.SentTo != nil {
		resp["sentTo"] = *doc.SentTo
	}
	if doc.SentAt != nil {
		resp["sentAt"] = *doc.SentAt
	}
	return resp
}

func downloadPath(documentID, format string) string {
	return "/api/v1/documents/" + documentID + "/download?format=" + format
}
