// internal/handlers/submit/handler_test.go
package submit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"intake-api/internal/common/logger"
	"intake-api/internal/notion"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		DatabaseID: "db-test",
		Timeout:    5 * time.Second,
	}
}

func createTestHandler(t *testing.T, notionHandler http.HandlerFunc) *Handler {
	server := httptest.NewServer(notionHandler)
	t.Cleanup(server.Close)

	client := notion.NewClient("test-token", notion.WithBaseURL(server.URL))
	loc, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)

	h := NewHandler(createTestConfig(), client, nil, loc, logger.NewTestLogger(t))
	h.now = func() time.Time {
		return time.Date(2026, 2, 26, 6, 30, 45, 0, time.UTC)
	}
	return h
}

func validInput() map[string]string {
	return map[string]string{
		"customerName":  "KimMinsu",
		"phone":         "010-1234-5678",
		"postcode":      "06236",
		"baseAddress":   "서울특별시 강남구 테헤란로 123",
		"detailAddress": "101동 202호",
		"fullAddress":   "서울특별시 강남구 테헤란로 123 101동 202호",
		"request":       "부재시 경비실에 맡겨주세요",
	}
}

func doSubmit(h *Handler, method string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, Endpoint, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func marshalInput(t *testing.T, input map[string]string) string {
	data, err := json.Marshal(input)
	require.NoError(t, err)
	return string(data)
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Handle_Success(t *testing.T) {
	var created map[string]interface{}

	h := createTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pages", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&created))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"page-abc"}`))
	})

	rec := doSubmit(h, http.MethodPost, marshalInput(t, validInput()))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var output Output
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &output))
	assert.True(t, output.Success)
	// 06:30:45 UTC is 15:30:45 in Seoul
	assert.Equal(t, "260226-153045-KimMinsu-5678", output.ReceiptTitle)

	parent := created["parent"].(map[string]interface{})
	assert.Equal(t, "db-test", parent["database_id"])
	props := created["properties"].(map[string]interface{})
	assert.Contains(t, props, "접수번호")
	assert.Contains(t, props, "처리상태")
}

func TestHandler_Handle_StripsWhitespaceFromReceiptName(t *testing.T) {
	h := createTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"page-abc"}`))
	})

	input := validInput()
	input["customerName"] = "Kim Min su"
	rec := doSubmit(h, http.MethodPost, marshalInput(t, input))

	var output Output
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &output))
	assert.Equal(t, "260226-153045-KimMinsu-5678", output.ReceiptTitle)
}

// ==========================
// Validation Tests
// ==========================

func TestHandler_Handle_ValidationFailures(t *testing.T) {
	tests := []struct {
		name          string
		method        string
		body          string
		expectedCode  int
		expectedError string
	}{
		{
			name:          "wrong method",
			method:        http.MethodGet,
			body:          "",
			expectedCode:  http.StatusMethodNotAllowed,
			expectedError: "Method not allowed",
		},
		{
			name:          "malformed json",
			method:        http.MethodPost,
			body:          "{not json",
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request",
		},
		{
			name:          "empty body",
			method:        http.MethodPost,
			body:          "",
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request",
		},
		{
			name:          "missing customer name",
			method:        http.MethodPost,
			body:          `{"phone":"010-1234-5678","postcode":"06236","baseAddress":"a","fullAddress":"a"}`,
			expectedCode:  http.StatusBadRequest,
			expectedError: "Missing required fields",
		},
		{
			name:          "empty required field",
			method:        http.MethodPost,
			body:          `{"customerName":"","phone":"010-1234-5678","postcode":"06236","baseAddress":"a","fullAddress":"a"}`,
			expectedCode:  http.StatusBadRequest,
			expectedError: "Missing required fields",
		},
		{
			name:          "missing everything",
			method:        http.MethodPost,
			body:          `{}`,
			expectedCode:  http.StatusBadRequest,
			expectedError: "Missing required fields",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notionCalled := false
			h := createTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
				notionCalled = true
			})

			rec := doSubmit(h, tt.method, tt.body)

			assert.Equal(t, tt.expectedCode, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedError, body["error"])
			assert.False(t, notionCalled)
		})
	}
}

func TestHandler_Handle_HoneypotRejection(t *testing.T) {
	notionCalled := false
	h := createTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		notionCalled = true
	})

	input := validInput()
	input["website"] = "http://spam.example.com"
	rec := doSubmit(h, http.MethodPost, marshalInput(t, input))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	// Bots get the same generic message as a parse failure
	assert.Equal(t, "Invalid request", body["error"])
	assert.False(t, notionCalled)
}

// ==========================
// Upstream Failure Tests
// ==========================

func TestHandler_Handle_UpstreamFailure(t *testing.T) {
	h := createTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"code":"internal_server_error","message":"notion is down"}`))
	})

	rec := doSubmit(h, http.MethodPost, marshalInput(t, validInput()))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "저장 실패", body["error"])
	assert.NotContains(t, rec.Body.String(), "notion is down")
}
