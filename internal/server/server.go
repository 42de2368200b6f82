// Package server exposes the billing model over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/Veraticus/poultry-receipt/internal/billing"
	"github.com/Veraticus/poultry-receipt/internal/export"
	"github.com/Veraticus/poultry-receipt/internal/ledger"
	"github.com/Veraticus/poultry-receipt/internal/receipt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxBodyBytes bounds a request body; a receipt input is tiny.
const maxBodyBytes = 64 << 10

// History lists issued receipts.
type History interface {
	List(ctx context.Context, limit int) ([]ledger.Entry, error)
	Find(ctx context.Context, ref string) (ledger.Entry, error)
}

// Handler bundles dependencies for HTTP handlers.
type Handler struct {
	service      *export.Service
	history      History
	defaultTheme string
}

// New constructs a Handler. history may be nil when the ledger is off.
func New(service *export.Service, history History, defaultTheme string) *Handler {
	if defaultTheme == "" {
		defaultTheme = receipt.DefaultTheme
	}
	return &Handler{service: service, history: history, defaultTheme: defaultTheme}
}

// Router wires up the HTTP API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.health)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/themes", h.listThemes)
		r.Post("/totals", h.computeTotals)
		r.Route("/receipts", func(r chi.Router) {
			r.Post("/render", h.renderReceipt)
			r.Get("/", h.listReceipts)
			r.Get("/{id}", h.getReceipt)
		})
	})

	return r
}

// Serve listens on addr until ctx ends, then shuts down gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Receipt server starting", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		slog.Info("Receipt server shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}
		return nil
	}
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type themeResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Default     bool   `json:"default"`
}

func (h *Handler) listThemes(w http.ResponseWriter, _ *http.Request) {
	names := receipt.ThemeNames()
	out := make([]themeResponse, 0, len(names))
	for _, name := range names {
		out = append(out, themeResponse{
			Name:        name,
			Description: receipt.ThemeDescription(name),
			Default:     name == h.defaultTheme,
		})
	}
	respondJSON(w, http.StatusOK, out)
}

type totalsResponse struct {
	Bills    []billing.PreviousBill `json:"displayableBills"`
	View     receipt.View           `json:"view"`
	Totals   billing.ReceiptTotals  `json:"totals"`
	CanIssue bool                   `json:"canIssue"`
}

func (h *Handler) computeTotals(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeInput(w, r)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, totalsResponse{
		Totals:   billing.ComputeTotals(in),
		Bills:    billing.FilterDisplayableBills(in.PreviousBills),
		View:     h.service.View(in),
		CanIssue: in.CanIssue(),
	})
}

func (h *Handler) renderReceipt(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeInput(w, r)
	if !ok {
		return
	}

	theme := r.URL.Query().Get("theme")
	if theme == "" {
		theme = h.defaultTheme
	}

	text, err := h.service.Render(in, theme)
	if errors.Is(err, receipt.ErrUnknownTheme) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to render receipt")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text + "\n"))
}

func (h *Handler) listReceipts(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		respondError(w, http.StatusNotFound, "receipt history is disabled")
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	entries, err := h.history.List(r.Context(), limit)
	if err != nil {
		slog.Error("Failed to list receipts", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list receipts")
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

func (h *Handler) getReceipt(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		respondError(w, http.StatusNotFound, "receipt history is disabled")
		return
	}

	entry, err := h.history.Find(r.Context(), chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		respondError(w, http.StatusNotFound, "receipt not found")
	case errors.Is(err, ledger.ErrAmbiguousID):
		respondError(w, http.StatusConflict, err.Error())
	case err != nil:
		slog.Error("Failed to get receipt", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to get receipt")
	default:
		respondJSON(w, http.StatusOK, entry)
	}
}

// decodeInput reads a ReceiptInput body. Bills without usable ids get
// fresh ones so every displayed bill is addressable.
func decodeInput(w http.ResponseWriter, r *http.Request) (billing.ReceiptInput, bool) {
	var in billing.ReceiptInput

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid receipt input: "+err.Error())
		return billing.ReceiptInput{}, false
	}

	return billing.EnsureIDs(in), true
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
