// Package server exposes the planner over HTTP.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/finance-guide/internal/config"
	"github.com/iwvelando/finance-guide/internal/plan"
	"github.com/iwvelando/finance-guide/internal/report"
	"github.com/iwvelando/finance-guide/pkg/constants"
	"github.com/iwvelando/finance-guide/pkg/finance"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Keys written first when exporting a configuration, in this order.
var exportKeyOrder = []string{"language", "profile", "yearsToRetirement", "riskProfile", "goals", "logging", "output"}

type handler struct {
	logger          *zap.Logger
	maxUploadSize   int64
	version         string
	defaultLanguage string
	renderer        *report.Renderer
}

// Option customizes the handler built by NewHandler.
type Option func(*handler)

// WithDefaultLanguage sets the report language used when a request names none.
func WithDefaultLanguage(lang string) Option {
	return func(h *handler) {
		if strings.TrimSpace(lang) != "" {
			h.defaultLanguage = report.ParseLanguage(lang).String()
		}
	}
}

// NewHandler constructs the HTTP handler that serves the planning API.
// The renderer is required; callers build it once with report.NewRenderer.
func NewHandler(logger *zap.Logger, renderer *report.Renderer, maxUploadSize int64, version string, opts ...Option) (http.Handler, error) {
	if renderer == nil {
		return nil, errors.New("report renderer is required")
	}

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

	h := &handler{
		logger:          logger,
		maxUploadSize:   maxUploadSize,
		version:         trimmedVersion,
		defaultLanguage: constants.DefaultLanguage,
		renderer:        renderer,
	}
	for _, opt := range opts {
		opt(h)
	}

	mux := http.NewServeMux()

	// Plan from a JSON configuration
	mux.HandleFunc("/api/plan", h.handlePlan)

	// Plan from an uploaded YAML configuration
	mux.HandleFunc("/api/plan/upload", h.handlePlanUpload)

	// Monthly PAC for a single goal while it is being entered
	mux.HandleFunc("/api/goals/preview", h.handleGoalPreview)

	// Config serialization endpoint for editor downloads
	mux.HandleFunc("/api/editor/export", h.handleConfigExport)

	mux.HandleFunc("/api/version", h.handleVersion)

	return mux, nil
}

type planResponse struct {
	ID         string                 `json:"id"`
	Language   string                 `json:"language"`
	Plan       plan.Plan              `json:"plan"`
	Report     string                 `json:"report"`
	Warnings   []string               `json:"warnings,omitempty"`
	Duration   string                 `json:"duration"`
	Config     map[string]interface{} `json:"config,omitempty"`
	ConfigYAML string                 `json:"configYaml,omitempty"`
}

type goalPreviewRequest struct {
	Cost  float64 `json:"cost"`
	Years int     `json:"years"`
}

type goalPreviewResponse struct {
	MonthlyPAC float64 `json:"monthlyPac"`
	Months     int     `json:"months"`
	Feasible   bool    `json:"feasible"`
}

func (h *handler) handlePlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondDecodeError(w, err, "failed to decode configuration", "server.handlePlan")
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	configPayload := payload
	if rawConfig, ok := payload["config"]; ok {
		cfgMap, ok := rawConfig.(map[string]interface{})
		if !ok {
			h.respondErrorWithOp(w, http.StatusBadRequest, "invalid config payload: expected object", "server.handlePlan")
			return
		}
		configPayload = cfgMap
	}

	configBytes, err := yaml.Marshal(configPayload)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), "server.handlePlan")
		return
	}

	configMap, err := decodeYAMLToMap(configBytes)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to parse configuration: %v", err), "server.handlePlan")
		return
	}

	h.runPlan(w, r, configBytes, configMap, start, "server.handlePlan")
}

func (h *handler) handlePlanUpload(w http.ResponseWriter, r *http.Request) {
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
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), "server.handlePlanUpload")
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), "server.handlePlanUpload")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing configuration file", "server.handlePlanUpload")
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", "server.handlePlanUpload"),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), "server.handlePlanUpload")
		return
	}

	configBytes := buf.Bytes()
	configMap, err := decodeYAMLToMap(configBytes)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("error reading config data, %v", err), "server.handlePlanUpload")
		return
	}

	h.runPlan(w, r, configBytes, configMap, start, "server.handlePlanUpload")
}

func (h *handler) handleGoalPreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	var req goalPreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondDecodeError(w, err, "failed to decode goal", "server.handleGoalPreview")
		return
	}
	if req.Cost < 0 {
		h.respondErrorWithOp(w, http.StatusBadRequest, "goal cost cannot be negative", "server.handleGoalPreview")
		return
	}

	goal := finance.Goal{Cost: req.Cost, Years: req.Years}
	h.writeJSON(w, http.StatusOK, goalPreviewResponse{
		MonthlyPAC: finance.MonthlyPAC(goal.Cost, goal.Years),
		Months:     goal.Months(),
		Feasible:   goal.Feasible(),
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

func (h *handler) handleConfigExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondDecodeError(w, err, "failed to decode configuration", "server.handleConfigExport")
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	yamlBytes, err := marshalOrderedConfigYAML(payload)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), "server.handleConfigExport")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"configYaml": string(yamlBytes),
	})
}

func marshalOrderedConfigYAML(payload map[string]interface{}) ([]byte, error) {
	items := make([]orderedItem, 0, len(payload))
	seen := make(map[string]struct{})

	for _, key := range exportKeyOrder {
		if value, ok := payload[key]; ok {
			items = append(items, orderedItem{key: key, value: value})
			seen[key] = struct{}{}
		}
	}

	remainingKeys := make([]string, 0, len(payload))
	for key := range payload {
		if _, already := seen[key]; already {
			continue
		}
		remainingKeys = append(remainingKeys, key)
	}
	sort.Strings(remainingKeys)
	for _, key := range remainingKeys {
		items = append(items, orderedItem{key: key, value: payload[key]})
	}

	return yaml.Marshal(orderedConfig{items: items})
}

type orderedConfig struct {
	items []orderedItem
}

type orderedItem struct {
	key   string
	value interface{}
}

func (o orderedConfig) MarshalYAML() (interface{}, error) {
	mapNode := &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
	}

	for _, item := range o.items {
		keyNode := &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Value: item.key,
		}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(item.value); err != nil {
			return nil, err
		}
		mapNode.Content = append(mapNode.Content, keyNode, valueNode)
	}

	return mapNode, nil
}

// requestLanguage picks the report language: the lang query parameter, then
// the configuration, then the server default.
func (h *handler) requestLanguage(r *http.Request, cfg *config.Configuration, configMap map[string]interface{}) string {
	if lang := strings.TrimSpace(r.URL.Query().Get("lang")); lang != "" {
		return report.ParseLanguage(lang).String()
	}
	if _, ok := configMap["language"]; ok {
		return report.ParseLanguage(cfg.Language).String()
	}
	return h.defaultLanguage
}

func (h *handler) runPlan(w http.ResponseWriter, r *http.Request, configBytes []byte, configMap map[string]interface{}, start time.Time, op string) {
	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(configBytes))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	warnings := cfg.ValidateConfiguration()
	lang := h.requestLanguage(r, cfg, configMap)
	id := uuid.NewString()

	result := plan.Build(h.logger.With(zap.String("planId", id)), cfg.ToInput())

	rendered, err := h.renderer.Render(result, lang)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to render report: %v", err), op)
		return
	}

	elapsed := time.Since(start)

	h.logger.Info("plan computed",
		zap.String("op", op),
		zap.String("planId", id),
		zap.String("language", lang),
		zap.Bool("blocked", result.Blocked),
		zap.Int("goals", len(result.Goals.Goals)),
		zap.Duration("duration", elapsed),
	)

	if strings.EqualFold(r.URL.Query().Get("format"), constants.OutputFormatMarkdown) {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Header().Set("X-Plan-Id", id)
		w.WriteHeader(http.StatusOK)
		if _, err := io.WriteString(w, rendered); err != nil {
			h.logger.Warn("failed to write report",
				zap.String("op", op),
				zap.Error(err),
			)
		}
		return
	}

	if configMap == nil {
		configMap = make(map[string]interface{})
	}

	h.writeJSON(w, http.StatusOK, planResponse{
		ID:         id,
		Language:   lang,
		Plan:       result.Rounded(),
		Report:     rendered,
		Warnings:   warnings,
		Duration:   elapsed.String(),
		Config:     configMap,
		ConfigYAML: string(configBytes),
	})
}

func decodeYAMLToMap(data []byte) (map[string]interface{}, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return make(map[string]interface{}), nil
	}

	var result map[string]interface{}
	if err := yaml.Unmarshal(trimmed, &result); err != nil {
		return nil, err
	}
	if result == nil {
		result = make(map[string]interface{})
	}
	return result, nil
}

// respondDecodeError answers 413 when the body hit the upload limit and 400
// for any other decoding failure.
func (h *handler) respondDecodeError(w http.ResponseWriter, err error, msg string, op string) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("request exceeds limit of %d bytes", h.maxUploadSize), op)
		return
	}
	h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("%s: %v", msg, err), op)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("plan request failed",
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
		h.logger.Warn("failed to encode response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}
