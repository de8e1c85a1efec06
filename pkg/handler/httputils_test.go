package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	cosmic "github.com/OfriRose/cosmic-canvas"

	"github.com/stretchr/testify/require"
)

func TestGetStringParam(t *testing.T) {

	tests := []struct {
		name     string
		payload  string
		param    string
		nilReq   bool
		expected string
	}{
		{
			name:     "Get valid value",
			payload:  "https://hehe.org/hehe?date=2013-09-30",
			param:    "date",
			expected: "2013-09-30",
		}, {
			name:     "Get trimmed value",
			payload:  "https://hehe.org/hehe?target=%20M16%20",
			param:    "target",
			expected: "M16",
		}, {
			name:     "Get empty string",
			payload:  "https://hehe.org/hehe?date=",
			param:    "date",
			expected: "",
		}, {
			name:     "Nil req",
			payload:  "https://hehe.org/hehe?date=2013-09-30",
			param:    "date",
			nilReq:   true,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {

			req, err := http.NewRequest(http.MethodGet, tt.payload, nil)
			require.NoError(t, err)

			if tt.nilReq {
				req = nil
			}

			actual := getStringParam(req, tt.param)
			require.Equal(t, tt.expected, actual)
		})
	}
}

func TestGetIntParam(t *testing.T) {

	tests := []struct {
		name        string
		payload     string
		expected    int
		expectedErr error
	}{
		{name: "default", payload: "https://hehe.org/hehe", expected: 30},
		{name: "value", payload: "https://hehe.org/hehe?limit=5", expected: 5},
		{name: "negative passes through", payload: "https://hehe.org/hehe?limit=-1", expected: -1},
		{name: "not a number", payload: "https://hehe.org/hehe?limit=five", expectedErr: errors.New("limit must be a number")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {

			req, err := http.NewRequest(http.MethodGet, tt.payload, nil)
			require.NoError(t, err)

			actual, err := getIntParam(req, "limit", 30)
			require.Equal(t, tt.expected, actual)

			if tt.expectedErr == nil {
				require.NoError(t, err)
			} else {
				require.Equal(t, tt.expectedErr.Error(), err.Error())
			}
		})
	}
}

func TestSendResponse(t *testing.T) {

	tests := []struct {
		name     string
		status   int
		Message  string
		data     any
		expected []byte
	}{
		{
			name:     "200",
			status:   http.StatusOK,
			Message:  "",
			data:     []string{"hehe1", "hehe2", "hehe3"},
			expected: []byte(`{"message":"","data":["hehe1","hehe2","hehe3"]}` + "\n"),
		}, {
			name:     "400",
			status:   http.StatusBadRequest,
			Message:  "some custom error",
			data:     nil,
			expected: []byte(`{"message":"some custom error","data":null}` + "\n"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			sendResponse(w, tt.status, tt.Message, tt.data)

			body, err := io.ReadAll(w.Result().Body)
			require.NoError(t, err)
			require.Equal(t, string(tt.expected), string(body))

			require.Equal(t, tt.status, w.Code)
			require.Equal(t, "application/json", w.Result().Header.Get("Content-Type"))
		})
	}
}

func TestErrorStatus(t *testing.T) {

	tests := []struct {
		err      error
		expected int
	}{
		{err: fmt.Errorf("%w: OVER_RATE_LIMIT", cosmic.ErrRateLimit), expected: http.StatusTooManyRequests},
		{err: cosmic.ErrInvalidKey, expected: http.StatusBadGateway},
		{err: fmt.Errorf("%w: timeout", cosmic.ErrNetwork), expected: http.StatusGatewayTimeout},
		{err: cosmic.ErrData, expected: http.StatusBadGateway},
		{err: fmt.Errorf("%w: date is in the future", cosmic.ErrQuery), expected: http.StatusBadRequest},
		{err: errors.New("boom"), expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		require.Equal(t, tt.expected, errorStatus(tt.err), "err %v", tt.err)
	}
}
