package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/MeKo-Tech/colorparser/convert"
	"github.com/MeKo-Tech/colorparser/internal/ops"
	"github.com/MeKo-Tech/colorparser/internal/palette"
	"github.com/MeKo-Tech/colorparser/internal/swatch"
)

// Config configures the conversion API.
type Config struct {
	// PalettePath is an optional palette database served under /palette.
	PalettePath  string
	CacheControl string
}

// ConvertHandler serves the color conversions over HTTP.
type ConvertHandler struct {
	palette      *palette.Reader
	logger       *slog.Logger
	cacheControl string

	totalConverted atomic.Int64
	totalFailed    atomic.Int64
}

// Status reports request counters.
type Status struct {
	TotalConverted int64 `json:"total_converted"`
	TotalFailed    int64 `json:"total_failed"`
	Palette        bool  `json:"palette"`
}

type conversionResponse struct {
	Op     string `json:"op,omitempty"`
	Input  string `json:"input"`
	Output string `json:"output"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// NewConvertHandler creates the handler and opens the palette database if one
// is configured.
func NewConvertHandler(cfg Config, logger *slog.Logger) (*ConvertHandler, error) {
	h := &ConvertHandler{
		logger:       logger,
		cacheControl: cfg.CacheControl,
	}
	if h.cacheControl == "" {
		// Conversions are deterministic.
		h.cacheControl = "public, max-age=86400"
	}

	if cfg.PalettePath != "" {
		reader, err := palette.OpenReader(cfg.PalettePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open palette: %w", err)
		}
		h.palette = reader
	}

	return h, nil
}

// Handler returns the routed API wrapped in CORS headers.
func (h *ConvertHandler) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/status", h.serveStatus)
	mux.HandleFunc("/convert", h.serveConvert)
	mux.HandleFunc("/convert/", h.serveOp)
	mux.HandleFunc("/palette", h.servePalette)
	mux.HandleFunc("/swatch", h.serveSwatch)
	return WithCORS(mux)
}

// Status returns the current request counters.
func (h *ConvertHandler) Status() Status {
	return Status{
		TotalConverted: h.totalConverted.Load(),
		TotalFailed:    h.totalFailed.Load(),
		Palette:        h.palette != nil,
	}
}

// Close closes the palette database, if any.
func (h *ConvertHandler) Close() error {
	if h.palette == nil {
		return nil
	}
	return h.palette.Close()
}

func (h *ConvertHandler) serveStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	h.writeJSON(w, http.StatusOK, h.Status())
}

// serveConvert handles /convert?value=...&to=hex|rgb|hsl with input detection.
func (h *ConvertHandler) serveConvert(w http.ResponseWriter, r *http.Request) {
	value := r.URL.Query().Get("value")
	if value == "" {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing value parameter"})
		return
	}

	to, err := convert.ParseFormat(r.URL.Query().Get("to"))
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	out, err := convert.Convert(value, to)
	h.respond(w, "", value, out, err)
}

// serveOp handles /convert/{op}?value=... for one named operation.
func (h *ConvertHandler) serveOp(w http.ResponseWriter, r *http.Request) {
	op, ok := parseOpPath(r.URL.Path)
	if !ok {
		h.writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown conversion"})
		return
	}

	value := r.URL.Query().Get("value")
	if value == "" {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing value parameter"})
		return
	}

	out, err := op.Apply(value)
	h.respond(w, op.Name, value, out, err)
}

func (h *ConvertHandler) servePalette(w http.ResponseWriter, r *http.Request) {
	if h.palette == nil {
		h.writeJSON(w, http.StatusNotFound, errorResponse{Error: "no palette configured"})
		return
	}

	value := r.URL.Query().Get("value")
	if value == "" {
		entries, err := h.palette.Entries()
		if err != nil {
			h.log().Error("Failed to list palette", "error", err)
			h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to read palette"})
			return
		}
		h.writeJSON(w, http.StatusOK, entries)
		return
	}

	entry, err := h.palette.Lookup(value)
	if errors.Is(err, palette.ErrNotFound) {
		h.writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		h.log().Error("Failed to read palette entry", "value", value, "error", err)
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to read palette"})
		return
	}
	h.writeJSON(w, http.StatusOK, entry)
}

func (h *ConvertHandler) serveSwatch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := swatch.Options{Label: q.Get("label") != "false"}
	if s := q.Get("size"); s != "" {
		size, err := strconv.Atoi(s)
		if err != nil || size > 1024 {
			h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid size parameter"})
			return
		}
		opts.Size = size
	}

	sw, err := swatch.Render(q.Get("value"), opts)
	if err != nil {
		h.totalFailed.Add(1)
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Kind: convert.Kind(err)})
		return
	}
	h.totalConverted.Add(1)

	w.Header().Set("Cache-Control", h.cacheControl)
	w.Header().Set("Content-Type", "image/png")
	if err := sw.Encode(w); err != nil {
		h.log().Error("Failed to write swatch", "error", err)
	}
}

func (h *ConvertHandler) respond(w http.ResponseWriter, op, input, output string, err error) {
	if err != nil {
		h.totalFailed.Add(1)
		h.log().Debug("Conversion rejected", "op", op, "input", input, "error", err)
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Kind: convert.Kind(err)})
		return
	}

	h.totalConverted.Add(1)
	w.Header().Set("Cache-Control", h.cacheControl)
	h.writeJSON(w, http.StatusOK, conversionResponse{Op: op, Input: input, Output: output})
}

func (h *ConvertHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log().Error("Failed to write response", "error", err)
	}
}

func (h *ConvertHandler) log() *slog.Logger {
	if h.logger != nil {
		return h.logger
	}
	return slog.Default()
}

// parseOpPath parses a path like /convert/hex-to-rgb.
func parseOpPath(requestPath string) (ops.Op, bool) {
	name, ok := strings.CutPrefix(requestPath, "/convert/")
	if !ok || name == "" || strings.Contains(name, "/") {
		return ops.Op{}, false
	}
	return ops.Lookup(name)
}

// WithCORS allows cross-origin GET requests.
func WithCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD, OPTIONS")
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		next.ServeHTTP(w, r)
	})
}
