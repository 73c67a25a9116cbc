package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/talx-hub/points-ledger/internal/model"
)

type AdminHandler struct {
	logger *slog.Logger
	kpis   KPIProvider
	pinger Pinger
}

func (h *AdminHandler) GetKPIs(w http.ResponseWriter, r *http.Request) {
	kpis, err := h.kpis.GetKPIs(r.Context())
	if err != nil {
		writeError(r.Context(), h.logger, w, "failed to get KPIs", err)
		return
	}
	writeJSON(r.Context(), h.logger, w, http.StatusOK, kpis)
}

func (h *AdminHandler) Ping(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), model.DefaultRequestTimeout)
	defer cancel()

	if err := h.pinger.Ping(ctx); err != nil {
		h.logger.LogAttrs(ctx, slog.LevelError, "storage is unreachable",
			slog.Any(model.KeyLoggerError, err))
		http.Error(w, http.StatusText(http.StatusInternalServerError),
			http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}
