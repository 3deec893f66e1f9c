package upstream

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"users_manager_backend/platform/apperr"
	"users_manager_backend/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoReturnsBodyOnSuccess(t *testing.T) {
	var gotBody string
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("X-Request", "abc")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"org_1"}`))
	}))
	defer srv.Close()

	c := New(5*time.Second, logger.Discard())
	resp, err := c.Do(context.Background(), Request{
		Method:  http.MethodPost,
		URL:     srv.URL + "/api/v2/organizations",
		Headers: http.Header{"Authorization": []string{"Bearer t"}},
		Body:    []byte(`{"name":"acme"}`),
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, resp.Status)
	assert.Equal(t, `{"id":"org_1"}`, resp.Body)
	assert.Equal(t, "abc", resp.Headers.Get("X-Request"))
	assert.Equal(t, `{"name":"acme"}`, gotBody)
	assert.Equal(t, "Bearer t", gotAuth)
}

func TestDoMapsNon2xxToHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"statusCode":409,"error":"Conflict","message":"An organization with this name already exists."}`))
	}))
	defer srv.Close()

	c := New(5*time.Second, logger.Discard())
	_, err := c.Do(context.Background(), Request{Method: http.MethodPost, URL: srv.URL})
	require.Error(t, err)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusConflict, httpErr.Status)
	assert.Equal(t, "An organization with this name already exists.", httpErr.Message)

	appErr, ok := apperr.As(ToAppError(err))
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, appErr.HTTPStatus())
	assert.Equal(t, "An organization with this name already exists.", appErr.Message)
}

func TestDoFallsBackToStatusText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(5*time.Second, logger.Discard())
	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, URL: srv.URL})

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, "Unauthorized", httpErr.Message)
}

func TestDoMapsDialFailureToConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := New(time.Second, logger.Discard())
	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, URL: url})

	var connErr *ConnectionError
	require.True(t, errors.As(err, &connErr))

	appErr, ok := apperr.As(ToAppError(err))
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, appErr.HTTPStatus())
}

func TestDoRejectsMalformedURL(t *testing.T) {
	c := New(time.Second, nil)
	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, URL: "://bad"})

	var clientErr *ClientError
	require.True(t, errors.As(err, &clientErr))

	appErr, ok := apperr.As(ToAppError(err))
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPStatus())
}

func TestToAppErrorPassesThroughAppErrors(t *testing.T) {
	original := apperr.NotFound("missing")
	assert.Same(t, original, ToAppError(original))
	assert.NoError(t, ToAppError(nil))
}
