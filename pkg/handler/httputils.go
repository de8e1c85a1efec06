package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	cosmic "github.com/OfriRose/cosmic-canvas"

	"github.com/sirupsen/logrus"
)

// описание ответа сервера
type Response struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// вытягивает строку из запроса
func getStringParam(r *http.Request, name string) string {

	if r == nil {
		return ""
	}

	return strings.TrimSpace(r.URL.Query().Get(name))
}

// вытягивает число из запроса, пустой параметр дает значение по умолчанию
func getIntParam(r *http.Request, name string, def int) (int, error) {

	s := getStringParam(r, name)
	if s == "" {
		return def, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.New(name + " must be a number")
	}

	return n, nil
}

// все ответы уходят через одну функцию
func sendResponse(w http.ResponseWriter, status int, msg string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(Response{Message: msg, Data: data}); err != nil {
		logrus.Errorf("error while sending response %q", err)
	}
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, cosmic.ErrRateLimit):
		return http.StatusTooManyRequests
	case errors.Is(err, cosmic.ErrInvalidKey), errors.Is(err, cosmic.ErrData):
		return http.StatusBadGateway
	case errors.Is(err, cosmic.ErrNetwork):
		return http.StatusGatewayTimeout
	case errors.Is(err, cosmic.ErrQuery):
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

func sendError(w http.ResponseWriter, err error) {
	status := errorStatus(err)
	if status >= http.StatusInternalServerError {
		logrus.Errorf("request failed: %q", err)
	} else {
		logrus.Warnf("request failed: %q", err)
	}

	sendResponse(w, status, cosmic.UserMessage(err), nil)
}
