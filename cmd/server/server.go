package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Simplici0/cabinetry/internal/export"
	"github.com/Simplici0/cabinetry/internal/model"
	"github.com/Simplici0/cabinetry/internal/pricing"
	"github.com/Simplici0/cabinetry/internal/store"
)

const (
	maxBodyBytes = 1 << 20
	xlsxType     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type server struct {
	log      *zap.Logger
	store    *store.Store
	engine   *pricing.Engine
	settings model.Settings
	metrics  *metrics
	gatherer prometheus.Gatherer
}

type metrics struct {
	calculations *prometheus.CounterVec
	duration     prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cabinetry_calculations_total",
			Help: "Section calculations by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cabinetry_calculation_duration_seconds",
			Help:    "Time spent loading context and pricing a section.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.calculations, m.duration)
	return m
}

// routes builds the router. gatherer may be nil to hide /metrics.
func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Post("/projects/{projectID}/calculate", s.handleProjectCalculate)
	r.Post("/projects/{projectID}/sections", s.handleSectionCreate)
	r.Get("/sections/{id}", s.handleSectionGet)
	r.Put("/sections/{id}", s.handleSectionPut)
	r.Post("/sections/{id}/calculate", s.handleSectionCalculate)
	r.Get("/sections/{id}/result", s.handleResultGet)
	r.Get("/sections/{id}/result.xlsx", s.handleResultXLSX)
	return r
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

// handleProjectCalculate prices a section against a project's context without
// persisting anything.
func (s *server) handleProjectCalculate(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(w, r, "projectID")
	if !ok {
		return
	}
	var sec model.Section
	if !decodeBody(w, r, &sec) {
		return
	}
	sec.ProjectID = projectID

	res, err := s.calculate(r, sec)
	if err != nil {
		s.fail(w, err, "calculate section")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *server) handleSectionCreate(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(w, r, "projectID")
	if !ok {
		return
	}
	var sec model.Section
	if !decodeBody(w, r, &sec) {
		return
	}
	sec.ID = 0
	sec.ProjectID = projectID

	saved, err := s.store.SaveSection(r.Context(), sec)
	if err != nil {
		s.fail(w, err, "create section")
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (s *server) handleSectionGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	sec, err := s.store.GetSection(r.Context(), id)
	if err != nil {
		s.fail(w, err, "load section")
		return
	}
	writeJSON(w, http.StatusOK, sec)
}

func (s *server) handleSectionPut(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var sec model.Section
	if !decodeBody(w, r, &sec) {
		return
	}
	sec.ID = id
	if sec.ProjectID == 0 {
		current, err := s.store.GetSection(r.Context(), id)
		if err != nil {
			s.fail(w, err, "load section")
			return
		}
		sec.ProjectID = current.ProjectID
	}

	saved, err := s.store.SaveSection(r.Context(), sec)
	if err != nil {
		s.fail(w, err, "save section")
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// handleSectionCalculate prices a stored section and snapshots the result.
func (s *server) handleSectionCalculate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	sec, err := s.store.GetSection(r.Context(), id)
	if err != nil {
		s.fail(w, err, "load section")
		return
	}
	res, err := s.calculate(r, sec)
	if err != nil {
		s.fail(w, err, "calculate section")
		return
	}
	snap, err := s.store.SaveResult(r.Context(), res)
	if err != nil {
		s.fail(w, err, "save result")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *server) handleResultGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	snap, err := s.store.LatestResult(r.Context(), id)
	if err != nil {
		s.fail(w, err, "load result")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *server) handleResultXLSX(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	snap, err := s.store.LatestResult(r.Context(), id)
	if err != nil {
		s.fail(w, err, "load result")
		return
	}
	body, err := export.Workbook(snap.Result)
	if err != nil {
		s.fail(w, err, "render workbook")
		return
	}

	w.Header().Set("Content-Type", xlsxType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="section-%d.xlsx"`, id))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (s *server) calculate(r *http.Request, sec model.Section) (pricing.Result, error) {
	start := time.Now()
	ctx, err := s.store.LoadContext(r.Context(), sec.ProjectID, s.settings)
	if err != nil {
		s.metrics.calculations.WithLabelValues("error").Inc()
		return pricing.Result{}, err
	}
	res := s.engine.Calculate(sec, ctx)
	s.metrics.duration.Observe(time.Since(start).Seconds())
	s.metrics.calculations.WithLabelValues("ok").Inc()
	return res, nil
}

// fail maps store errors to a status and logs anything unexpected.
func (s *server) fail(w http.ResponseWriter, err error, action string) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	s.log.Error(action+" failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, action+" failed")
}

func pathID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid "+param)
		return 0, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
