package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	cosmic "github.com/OfriRose/cosmic-canvas"
	"github.com/OfriRose/cosmic-canvas/pkg/consts"
	"github.com/OfriRose/cosmic-canvas/pkg/metrics"
	srvc "github.com/OfriRose/cosmic-canvas/pkg/service"

	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// запрос в архив с превью может занять больше времени чем APOD
const requestTimeout = 30 * time.Second

type Handler struct {
	services *srvc.Service
}

func NewHandler(services *srvc.Service) *Handler {
	return &Handler{services}
}

func (h *Handler) InitRoutes() *mux.Router {

	router := mux.NewRouter()
	router.Use(metricsMiddleware)

	router.HandleFunc("/heartbeat", heartbeat).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	v1 := router.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/apod", h.PictureOfDay).Methods(http.MethodGet)
	v1.HandleFunc("/apod/image", h.PictureImage).Methods(http.MethodGet)
	v1.HandleFunc("/observations", h.Observations).Methods(http.MethodGet)
	v1.HandleFunc("/compare", h.Compare).Methods(http.MethodGet)

	return router
}

func heartbeat(w http.ResponseWriter, r *http.Request) {
	httphelpers.TextOK(w, "OK")
}

// PictureOfDay отдает запись APOD за дату, без даты - за сегодня
func (h *Handler) PictureOfDay(w http.ResponseWriter, r *http.Request) {

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	entry, err := h.services.PictureOfDay(ctx, getStringParam(r, consts.ParamDate))
	if err != nil {
		sendError(w, err)
		return
	}

	sendResponse(w, http.StatusOK, "ok", entry)
}

// PictureImage редиректит на лучшую доступную картинку дня
func (h *Handler) PictureImage(w http.ResponseWriter, r *http.Request) {

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	u, err := h.services.ImageURL(ctx, getStringParam(r, consts.ParamDate))
	if err != nil {
		sendError(w, err)
		return
	}

	http.Redirect(w, r, u, http.StatusFound)
}

func (h *Handler) Observations(w http.ResponseWriter, r *http.Request) {

	telescope := cosmic.JWST
	if s := getStringParam(r, consts.ParamTelescope); s != "" {
		t, ok := cosmic.ParseTelescope(s)
		if !ok {
			sendResponse(w, http.StatusBadRequest, fmt.Sprintf("unknown telescope %q, use JWST or HST", s), nil)
			return
		}
		telescope = t
	}

	limit, err := getIntParam(r, consts.ParamLimit, consts.DefaultLimit)
	if err != nil {
		sendResponse(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	records, err := h.services.Observations(ctx, getStringParam(r, consts.ParamTarget), telescope, limit)
	if err != nil {
		sendError(w, err)
		return
	}

	// пустой результат это нормальное состояние, а не ошибка
	if len(records) == 0 {
		sendResponse(w, http.StatusOK, "no observations found", []cosmic.ObservationRecord{})
		return
	}

	sendResponse(w, http.StatusOK, "ok", records)
}

func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {

	name := getStringParam(r, consts.ParamName)
	if name == "" {
		sendResponse(w, http.StatusOK, "ok", h.services.ComparisonPairs())
		return
	}

	pair, ok := h.services.Comparison(name)
	if !ok {
		sendResponse(w, http.StatusNotFound, fmt.Sprintf("unknown comparison %q", name), nil)
		return
	}

	sendResponse(w, http.StatusOK, "ok", pair)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// путь берется из шаблона маршрута, чтобы query не раздувал метки
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		path := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				path = tpl
			}
		}

		metrics.HttpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(rec.status)).Inc()
		metrics.HttpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}
