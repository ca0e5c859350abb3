package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestTokenHandler(t *testing.T) {
	t.Run("delivers the token on a valid callback", func(t *testing.T) {
		handler := NewTokenHandler("state-123")

		req := httptest.NewRequest(http.MethodGet, "/callback?state=state-123&music_user_token=user-token", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Authorization Successful") {
			t.Error("expected success page")
		}

		select {
		case result := <-handler.Result():
			if result.Error() != nil {
				t.Errorf("expected no error, got %v", result.Error())
			}
			if result.Token != "user-token" {
				t.Errorf("expected user-token, got %q", result.Token)
			}
		case <-time.After(time.Second):
			t.Fatal("expected a result on the channel")
		}
	})

	t.Run("rejects a state mismatch", func(t *testing.T) {
		handler := NewTokenHandler("state-123")

		req := httptest.NewRequest(http.MethodGet, "/callback?state=forged&music_user_token=user-token", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}

		result := <-handler.Result()
		if result.Error() == nil {
			t.Error("expected an error result")
		}
	})

	t.Run("missing token surfaces the consent error", func(t *testing.T) {
		handler := NewTokenHandler("state-123")

		req := httptest.NewRequest(http.MethodGet, "/callback?state=state-123&error=denied&error_description=user+declined", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}

		result := <-handler.Result()
		if result.Error() == nil || !strings.Contains(result.Error().Error(), "denied") {
			t.Errorf("expected consent error, got %v", result.Error())
		}
	})

	t.Run("second callback is rejected", func(t *testing.T) {
		handler := NewTokenHandler("state-123")

		first := httptest.NewRequest(http.MethodGet, "/callback?state=state-123&music_user_token=user-token", nil)
		handler.ServeHTTP(httptest.NewRecorder(), first)

		second := httptest.NewRequest(http.MethodGet, "/callback?state=state-123&music_user_token=other-token", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, second)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400 for replayed callback, got %d", rec.Code)
		}

		if result := <-handler.Result(); result.Token != "user-token" {
			t.Errorf("expected the first token to win, got %q", result.Token)
		}
	})

	t.Run("Routes", func(t *testing.T) {
		handler := NewTokenHandler("state")
		routes := handler.Routes()
		if len(routes) != 1 || routes[0] != "/callback" {
			t.Errorf("unexpected routes %v", routes)
		}
	})
}

func TestCallbackRouter(t *testing.T) {
	t.Run("routes a registered handler", func(t *testing.T) {
		router := NewCallbackRouter()
		handler := NewTokenHandler("state-123")
		router.Handler(handler)

		req := httptest.NewRequest(http.MethodGet, "/callback?state=state-123&music_user_token=tok", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("enforces the method on Handle", func(t *testing.T) {
		router := NewCallbackRouter()
		router.Handle(http.MethodGet, "/ping", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodPost, "/ping", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}
	})

	t.Run("applies middleware in order", func(t *testing.T) {
		router := NewCallbackRouter()
		order := []string{}

		router.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, "first")
				next.ServeHTTP(w, r)
			})
		})
		router.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, "second")
				next.ServeHTTP(w, r)
			})
		})

		router.Handle(http.MethodGet, "/ping", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "handler")
		}))

		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		router.ServeHTTP(httptest.NewRecorder(), req)

		if len(order) != 3 || order[0] != "first" || order[1] != "second" || order[2] != "handler" {
			t.Errorf("unexpected execution order %v", order)
		}
	})
}
