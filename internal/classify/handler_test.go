package classify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newHandlerRouter(t *testing.T, svc *Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/v1/classifications", NewHandler(svc).Classify)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/classifications", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestClassifyEndpointCamelCase(t *testing.T) {
	svc := newTestService(stubVision{raw: json.RawMessage(goodAnalysisReply)}, nil)
	r := newHandlerRouter(t, svc)

	w := postJSON(t, r, `{"imageUrl": "https://example.com/bottle.jpg", "expectedCategory": "可回收垃圾"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var payload struct {
		Record Record `json:"classificationRecord"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if payload.Record.AIDetectedCategory != "可回收垃圾" {
		t.Fatalf("record = %+v", payload.Record)
	}
	if !payload.Record.IsCorrect {
		t.Fatalf("is_correct = false")
	}
}

func TestClassifyEndpointSnakeCase(t *testing.T) {
	svc := newTestService(stubVision{raw: json.RawMessage(goodAnalysisReply)}, nil)
	r := newHandlerRouter(t, svc)

	w := postJSON(t, r, `{"image_url": "https://example.com/bottle.jpg", "expected_category": "可回收垃圾"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var payload struct {
		Record Record `json:"classificationRecord"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if payload.Record.Score == 0 {
		t.Fatalf("snake_case body not honored: %+v", payload.Record)
	}
}

func TestClassifyEndpointUnusableInputStillAnswers(t *testing.T) {
	svc := newTestService(stubVision{}, nil)
	r := newHandlerRouter(t, svc)

	w := postJSON(t, r, `{"expectedCategory": "干垃圾"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; unusable input should still answer with a record", w.Code)
	}
	var payload struct {
		Record Record `json:"classificationRecord"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if payload.Record.Score != 0 || payload.Record.IsCorrect {
		t.Fatalf("record = %+v, want a zeroed failure record", payload.Record)
	}
}

func TestClassifyEndpointMalformedBody(t *testing.T) {
	svc := newTestService(stubVision{}, nil)
	r := newHandlerRouter(t, svc)

	w := postJSON(t, r, `[1, 2, 3`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for a malformed body", w.Code)
	}
	if !strings.Contains(w.Body.String(), "invalid_body") {
		t.Fatalf("body = %s, want the standardized error code", w.Body.String())
	}
}
