package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/technical/internal/domain/dto"
	"github.com/guttosm/technical/internal/logger"
)

type assertErr struct{}

func (assertErr) Error() string { return "boom" }

func TestToString(t *testing.T) {
	if s := toString(nil); s != "" {
		t.Fatalf("nil -> %q, want empty", s)
	}
	if s := toString("abc"); s != "abc" {
		t.Fatalf("string -> %q, want 'abc'", s)
	}
	if s := toString(123); s != "" {
		t.Fatalf("non-string -> %q, want empty", s)
	}
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	const incoming = "123e4567-e89b-12d3-a456-426614174000"

	cases := []struct {
		name   string
		header string
		reuse  bool
	}{
		{name: "generated", header: ""},
		{name: "valid incoming reused", header: incoming, reuse: true},
		{name: "invalid incoming replaced", header: "not-a-uuid"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.Use(RequestID())
			r.GET("/", func(c *gin.Context) {
				rid, _ := c.Get(RequestIDKey)
				c.String(200, toString(rid))
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set(RequestIDHeader, tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			got := w.Header().Get(RequestIDHeader)
			if got == "" || got != w.Body.String() {
				t.Fatalf("header %q and context %q must match and be set", got, w.Body.String())
			}
			if tc.reuse && got != incoming {
				t.Fatalf("expected incoming id to be reused, got %q", got)
			}
			if !tc.reuse && got == tc.header {
				t.Fatalf("expected a fresh id, got %q", got)
			}
		})
	}
}

func TestRequestLogger_WritesEntry(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	t.Setenv("LOG_PRETTY", "false")
	t.Setenv("LOG_LEVEL", "info")
	logger.InitWithWriter(&buf)
	t.Cleanup(logger.Init)

	r := gin.New()
	r.Use(RequestID(), RequestLogger())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/fail", func(c *gin.Context) { c.String(http.StatusInternalServerError, "x") })

	for _, path := range []string{"/ping", "/fail"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %q", len(lines), buf.String())
	}
	var first, second map[string]any
	_ = json.Unmarshal([]byte(lines[0]), &first)
	_ = json.Unmarshal([]byte(lines[1]), &second)
	if first["path"] != "/ping" || first["level"] != "info" || toString(first["request_id"]) == "" {
		t.Fatalf("unexpected first entry: %v", first)
	}
	if second["path"] != "/fail" || second["level"] != "error" {
		t.Fatalf("unexpected second entry: %v", second)
	}
}

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name    string
		handler gin.HandlerFunc
		code    int
		message string
	}{
		{
			name:    "plain error",
			handler: func(c *gin.Context) { _ = c.Error(assertErr{}) },
			code:    500,
			message: "Internal server error",
		},
		{
			name:    "error response passthrough",
			handler: func(c *gin.Context) { _ = c.Error(dto.NewErrorResponse("custom", nil)) },
			code:    500,
			message: "custom",
		},
		{
			name: "already written",
			handler: func(c *gin.Context) {
				_ = c.Error(assertErr{})
				c.String(http.StatusTeapot, "tea")
			},
			code: http.StatusTeapot,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.Use(ErrorHandler)
			r.GET("/", tc.handler)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			if w.Code != tc.code {
				t.Fatalf("code=%d", w.Code)
			}
			if tc.message == "" {
				return
			}
			var body dto.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Message != tc.message {
				t.Fatalf("message=%q, want %q", body.Message, tc.message)
			}
		})
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RecoveryMiddleware())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	if w.Code != 500 {
		t.Fatalf("code=%d", w.Code)
	}
	var body dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body.ErrorDetails != "boom" {
		t.Fatalf("unexpected body %s (err %v)", w.Body.String(), err)
	}
}

func TestRateLimiter(t *testing.T) {
	cases := []struct {
		name   string
		reqs   int
		lim    int
		expect int
	}{
		{name: "within limit", reqs: 2, lim: 3, expect: http.StatusOK},
		{name: "at limit", reqs: 3, lim: 3, expect: http.StatusOK},
		{name: "exceed limit", reqs: 5, lim: 3, expect: http.StatusTooManyRequests},
		{name: "disabled", reqs: 10, lim: 0, expect: http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			r := gin.New()
			r.Use(RateLimiter(tc.lim, time.Minute))
			r.GET("/", func(c *gin.Context) { c.String(200, "ok") })

			var last int
			for i := 0; i < tc.reqs; i++ {
				w := httptest.NewRecorder()
				r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
				last = w.Code
			}
			if last != tc.expect {
				t.Fatalf("expected %d, got %d", tc.expect, last)
			}
		})
	}
}

func TestRateLimiter_WindowResets(t *testing.T) {
	rl := newRateLimiter(1, time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	if !rl.allow("1.1.1.1") {
		t.Fatalf("first request must pass")
	}
	if rl.allow("1.1.1.1") {
		t.Fatalf("second request in window must be limited")
	}
	if !rl.allow("2.2.2.2") {
		t.Fatalf("other clients are counted separately")
	}
	now = now.Add(time.Minute)
	if !rl.allow("1.1.1.1") {
		t.Fatalf("request in a new window must pass")
	}
}

func TestAbortWithError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/err", func(c *gin.Context) {
		AbortWithError(c, http.StatusBadRequest, "bad stuff", assertErr{})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/err", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("code=%d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct == "" {
		t.Fatalf("expected content-type set")
	}
	var body dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.Message != "bad stuff" || body.ErrorDetails != "boom" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestTimeout(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Timeout(20 * time.Millisecond))
	r.GET("/", func(c *gin.Context) {
		deadline, ok := c.Request.Context().Deadline()
		if !ok || time.Until(deadline) > 20*time.Millisecond {
			c.String(http.StatusInternalServerError, "no deadline")
			return
		}
		<-c.Request.Context().Done()
		if !errors.Is(c.Request.Context().Err(), context.DeadlineExceeded) {
			c.String(http.StatusInternalServerError, "wrong err")
			return
		}
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("code=%d body=%s", w.Code, w.Body.String())
	}
}
