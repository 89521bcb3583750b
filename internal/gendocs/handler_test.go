package gendocs_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"tradecase-backend/internal/bootstrap"
	"tradecase-backend/internal/shared/auth"
	"tradecase-backend/internal/shared/config"
)

func buildTestApp(t *testing.T) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		LocalStoreDir:   t.TempDir(),
		Env:             "dev",
		ObjectStoreType: "local",
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app
}

func bearerFor(t *testing.T, sub, role string) string {
	t.Helper()
	token, err := auth.SignJWT(auth.Claims{Sub: sub, Email: sub + "@example.com", Role: role})
	if err != nil {
		t.Fatalf("sign jwt: %v", err)
	}
	return "Bearer " + token
}

func doJSON(t *testing.T, router http.Handler, method, path, bearer string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", bearer)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func decodeBody(t *testing.T, resp *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func createTestCase(t *testing.T, router http.Handler, bearer string) string {
	t.Helper()
	resp := doJSON(t, router, http.MethodPost, "/api/v1/cases", bearer, gin.H{
		"clientName":  "Dana Smith",
		"clientEmail": "dana@example.com",
		"title":       "Unpaid final invoice",
		"issueType":   "payment_dispute",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create case: status %d, body %s", resp.Code, resp.Body.String())
	}
	var created struct {
		ID string `json:"id"`
	}
	decodeBody(t, resp, &created)
	if created.ID == "" {
		t.Fatalf("create case returned empty id")
	}
	return created.ID
}

func TestStrategyGenerationAndReviewFlow(t *testing.T) {
	app := buildTestApp(t)
	router := app.Router

	userBearer := bearerFor(t, "user-1", "")
	adminBearer := bearerFor(t, "admin-1", auth.RoleAdmin)

	caseID := createTestCase(t, router, userBearer)

	// Generate a strategy pack. No LLM key is configured, so the
	// deterministic fallback produces the content.
	resp := doJSON(t, router, http.MethodPost, "/api/v1/cases/"+caseID+"/strategy", userBearer, gin.H{
		"kind":           "strategy_pack",
		"issueType":      "payment_dispute",
		"disputedAmount": 15000.0,
		"description":    "Customer refuses to pay the final invoice.",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("generate strategy: status %d, body %s", resp.Code, resp.Body.String())
	}
	var generated struct {
		DocumentID string `json:"documentId"`
		Status     string `json:"status"`
		Fallback   bool   `json:"fallback"`
	}
	decodeBody(t, resp, &generated)
	if generated.DocumentID == "" {
		t.Fatalf("expected documentId, got empty")
	}
	if generated.Status != "draft" {
		t.Fatalf("status = %q, want draft", generated.Status)
	}
	if !generated.Fallback {
		t.Fatalf("expected fallback content without an LLM key")
	}

	// The pending queue is admin-only.
	respForbidden := doJSON(t, router, http.MethodGet, "/api/v1/admin/documents/pending", userBearer, nil)
	if respForbidden.Code != http.StatusForbidden {
		t.Fatalf("pending as user: status %d, want 403", respForbidden.Code)
	}

	respPending := doJSON(t, router, http.MethodGet, "/api/v1/admin/documents/pending", adminBearer, nil)
	if respPending.Code != http.StatusOK {
		t.Fatalf("pending as admin: status %d, body %s", respPending.Code, respPending.Body.String())
	}
	var pending struct {
		Documents []struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"documents"`
	}
	decodeBody(t, respPending, &pending)
	if len(pending.Documents) != 1 || pending.Documents[0].ID != generated.DocumentID {
		t.Fatalf("pending = %+v, want the generated document", pending.Documents)
	}

	// Review, then send. The noop mailer accepts delivery.
	respReview := doJSON(t, router, http.MethodPut, "/api/v1/admin/documents/"+generated.DocumentID, adminBearer, gin.H{
		"status": "reviewed",
	})
	if respReview.Code != http.StatusOK {
		t.Fatalf("review: status %d, body %s", respReview.Code, respReview.Body.String())
	}
	var reviewed struct {
		Status     string `json:"status"`
		ReviewedBy string `json:"reviewedBy"`
	}
	decodeBody(t, respReview, &reviewed)
	if reviewed.Status != "reviewed" || reviewed.ReviewedBy != "admin-1" {
		t.Fatalf("reviewed = %+v, want status reviewed by admin-1", reviewed)
	}

	respSend := doJSON(t, router, http.MethodPost, "/api/v1/admin/documents/"+generated.DocumentID+"/send", adminBearer, nil)
	if respSend.Code != http.StatusOK {
		t.Fatalf("send: status %d, body %s", respSend.Code, respSend.Body.String())
	}
	var sent struct {
		Status string `json:"status"`
		SentTo string `json:"sentTo"`
	}
	decodeBody(t, respSend, &sent)
	if sent.Status != "sent" || sent.SentTo != "dana@example.com" {
		t.Fatalf("sent = %+v, want status sent to dana@example.com", sent)
	}
}

func TestStrategyDownloadReturnsPDF(t *testing.T) {
	app := buildTestApp(t)
	router := app.Router

	userBearer := bearerFor(t, "user-1", "")
	caseID := createTestCase(t, router, userBearer)

	resp := doJSON(t, router, http.MethodPost, "/api/v1/cases/"+caseID+"/strategy", userBearer, gin.H{
		"kind":        "strategy_pack",
		"issueType":   "payment_dispute",
		"description": "Customer refuses to pay the final invoice.",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("generate strategy: status %d, body %s", resp.Code, resp.Body.String())
	}
	var generated struct {
		DocumentID string `json:"documentId"`
	}
	decodeBody(t, resp, &generated)

	respDl := doJSON(t, router, http.MethodGet, "/api/v1/documents/"+generated.DocumentID+"/download?format=pdf", userBearer, nil)
	if respDl.Code != http.StatusOK {
		t.Fatalf("download: status %d", respDl.Code)
	}
	if ct := respDl.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("content type = %q, want application/pdf", ct)
	}
	if !bytes.HasPrefix(respDl.Body.Bytes(), []byte("%PDF-")) {
		t.Fatalf("download body is not a PDF")
	}

	// Another user cannot see the document.
	strangerBearer := bearerFor(t, "user-2", "")
	respStranger := doJSON(t, router, http.MethodGet, "/api/v1/documents/"+generated.DocumentID, strangerBearer, nil)
	if respStranger.Code != http.StatusForbidden {
		t.Fatalf("stranger get: status %d, want 403", respStranger.Code)
	}
}

func TestStrategyRejectsBadDeadlineFormat(t *testing.T) {
	app := buildTestApp(t)
	router := app.Router

	userBearer := bearerFor(t, "user-1", "")
	caseID := createTestCase(t, router, userBearer)

	resp := doJSON(t, router, http.MethodPost, "/api/v1/cases/"+caseID+"/strategy", userBearer, gin.H{
		"kind":         "strategy_pack",
		"issueType":    "payment_dispute",
		"description":  "Customer refuses to pay the final invoice.",
		"deadlineDate": "10/03/2025",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "deadlineDate") {
		t.Fatalf("expected deadlineDate in error body, got %s", resp.Body.String())
	}
}
