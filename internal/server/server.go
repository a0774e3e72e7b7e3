package server

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/iwvelando/mortgage-schedule/internal/cache"
	"github.com/iwvelando/mortgage-schedule/internal/config"
	"github.com/iwvelando/mortgage-schedule/internal/schedule"
	"github.com/iwvelando/mortgage-schedule/pkg/constants"
	"github.com/iwvelando/mortgage-schedule/pkg/input"
	"github.com/iwvelando/mortgage-schedule/pkg/loans"
	"github.com/iwvelando/mortgage-schedule/pkg/output"
	"github.com/iwvelando/mortgage-schedule/pkg/validation"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed static/*
var staticFiles embed.FS

// exportScenarioName names the single scenario of an exported configuration.
const exportScenarioName = "default"

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
	cache         cache.Cache
	generator     *loans.ScheduleGenerator
	metrics       *metrics
}

// NewHandler constructs the HTTP handler that serves the web UI, the schedule
// API and the Prometheus metrics. A nil cache disables caching.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string, scheduleCache cache.Cache) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	if scheduleCache == nil {
		scheduleCache = cache.Noop{}
	}

	h := &handler{
		logger:        logger,
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
		cache:         scheduleCache,
		generator:     loans.NewScheduleGenerator(logger),
		metrics:       newMetrics(),
	}

	mux := http.NewServeMux()

	// Single loan computation from form fields
	mux.HandleFunc("/api/schedule", h.metrics.instrument("/api/schedule", h.handleSchedule))

	// Scenario computation from an uploaded YAML configuration
	mux.HandleFunc("/api/schedule/upload", h.metrics.instrument("/api/schedule/upload", h.handleUpload))

	// Form fields serialized as a configuration file
	mux.HandleFunc("/api/export", h.metrics.instrument("/api/export", h.handleExport))

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	mux.Handle("/metrics", h.metrics.handler())

	// Static assets (web UI)
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	fileServer := http.FileServer(http.FS(sub))
	mux.Handle("/", fileServer)

	return mux
}

type scheduleResponse struct {
	Parameters loans.LoanParameters        `json:"parameters"`
	Result     loans.LoanComputationResult `json:"result"`
	Baseline   *loans.Savings              `json:"baseline,omitempty"`
	Warnings   []string                    `json:"warnings,omitempty"`
	Cached     bool                        `json:"cached"`
	Duration   string                      `json:"duration"`
}

type uploadResponse struct {
	Scenarios  []schedule.Schedule `json:"scenarios"`
	CSV        string              `json:"csv"`
	Warnings   []string            `json:"warnings,omitempty"`
	Duration   string              `json:"duration"`
	ConfigYAML string              `json:"configYaml,omitempty"`
}

func (h *handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSchedule"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()

	params, ok := h.decodeParameters(w, r, op)
	if !ok {
		return
	}

	result, cached := h.computeCached(r.Context(), params)
	elapsed := time.Since(start)

	response := scheduleResponse{
		Parameters: params,
		Result:     result.Result,
		Baseline:   result.Savings,
		Warnings:   validation.ValidateLoanParameters("request", params, 0),
		Cached:     cached,
		Duration:   elapsed.String(),
	}

	h.logger.Info("schedule computed",
		zap.String("op", op),
		zap.Int("payoffMonths", result.Result.PayoffMonths),
		zap.Bool("cached", cached),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) decodeParameters(w http.ResponseWriter, r *http.Request, op string) (loans.LoanParameters, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	var fields input.Fields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode loan parameters: %v", err), op)
		return loans.LoanParameters{}, false
	}

	params, err := fields.Parameters()
	if err == nil {
		err = validation.ValidateTerm(params)
	}
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return loans.LoanParameters{}, false
	}
	return params, true
}

// computeCached returns the schedule for params, reusing a cached copy when
// one exists. Cache failures are logged and otherwise ignored.
func (h *handler) computeCached(ctx context.Context, params loans.LoanParameters) (schedule.Schedule, bool) {
	const op = "server.computeCached"
	key := cache.Key(params)

	data, ok, err := h.cache.Get(ctx, key)
	if err != nil {
		h.logger.Warn("schedule cache read failed",
			zap.String("op", op),
			zap.String("key", key),
			zap.Error(err),
		)
	}
	if ok {
		var cached schedule.Schedule
		if err := json.Unmarshal(data, &cached); err == nil {
			h.metrics.cacheResults.WithLabelValues("hit").Inc()
			return cached, true
		}
		h.logger.Warn("discarding undecodable cache entry",
			zap.String("op", op),
			zap.String("key", key),
		)
	}
	h.metrics.cacheResults.WithLabelValues("miss").Inc()

	computed := schedule.Compute(h.generator, "request", params)

	encoded, err := json.Marshal(computed)
	if err != nil {
		h.logger.Warn("failed to encode schedule for cache",
			zap.String("op", op),
			zap.Error(err),
		)
		return computed, false
	}
	if err := h.cache.Set(ctx, key, encoded); err != nil {
		h.logger.Warn("schedule cache write failed",
			zap.String("op", op),
			zap.String("key", key),
			zap.Error(err),
		)
	}
	return computed, false
}

func (h *handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleUpload"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing configuration file", op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), op)
		return
	}

	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	warnings := cfg.ValidateConfiguration()

	results, err := schedule.GetSchedules(h.logger, *cfg)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to compute schedules: %v", err), op)
		return
	}

	elapsed := time.Since(start)
	response := uploadResponse{
		Scenarios:  results,
		CSV:        output.CsvString(results),
		Warnings:   warnings,
		Duration:   elapsed.String(),
		ConfigYAML: buf.String(),
	}

	h.logger.Info("scenario schedules computed",
		zap.String("op", op),
		zap.Int("scenarios", len(results)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleExport"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	params, ok := h.decodeParameters(w, r, op)
	if !ok {
		return
	}

	exported := config.Configuration{
		Common: config.FromLoanParameters(params),
		Scenarios: []config.Scenario{
			{Name: exportScenarioName, Active: true},
		},
	}

	yamlBytes, err := yaml.Marshal(exported)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode configuration: %v", err), op)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"configYaml": string(yamlBytes),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("schedule request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}
