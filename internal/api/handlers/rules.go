package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/talx-hub/points-ledger/internal/api/dto"
	"github.com/talx-hub/points-ledger/internal/model/rule"
)

const URLParamID = "id"

type RuleHandler struct {
	logger *slog.Logger
	rules  RuleService
}

func (h *RuleHandler) ListRules(w http.ResponseWriter, r *http.Request) {
	list, err := h.rules.ListRules(r.Context())
	if err != nil {
		writeError(r.Context(), h.logger, w, "failed to list rules", err)
		return
	}

	resp := make([]dto.RuleResponse, 0, len(list))
	for _, rl := range list {
		resp = append(resp, dto.NewRuleResponse(rl))
	}
	writeJSON(r.Context(), h.logger, w, http.StatusOK, resp)
}

func (h *RuleHandler) GetRule(w http.ResponseWriter, r *http.Request) {
	rl, err := h.rules.GetRule(r.Context(), chi.URLParam(r, URLParamID))
	if err != nil {
		writeError(r.Context(), h.logger, w, "failed to get rule", err)
		return
	}
	writeJSON(r.Context(), h.logger, w, http.StatusOK, dto.NewRuleResponse(rl))
}

func (h *RuleHandler) CreateRule(w http.ResponseWriter, r *http.Request) {
	rl, ok := h.decodeRule(w, r, "")
	if !ok {
		return
	}

	created, err := h.rules.CreateRule(r.Context(), rl)
	if err != nil {
		writeError(r.Context(), h.logger, w, "failed to create rule", err)
		return
	}
	writeJSON(r.Context(), h.logger, w, http.StatusCreated, dto.NewRuleResponse(created))
}

func (h *RuleHandler) UpdateRule(w http.ResponseWriter, r *http.Request) {
	rl, ok := h.decodeRule(w, r, chi.URLParam(r, URLParamID))
	if !ok {
		return
	}

	if err := h.rules.UpdateRule(r.Context(), rl); err != nil {
		writeError(r.Context(), h.logger, w, "failed to update rule", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *RuleHandler) DeleteRule(w http.ResponseWriter, r *http.Request) {
	if err := h.rules.DeleteRule(r.Context(), chi.URLParam(r, URLParamID)); err != nil {
		writeError(r.Context(), h.logger, w, "failed to delete rule", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *RuleHandler) decodeRule(w http.ResponseWriter, r *http.Request, id string,
) (rule.Rule, bool) {
	var req dto.RuleRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return rule.Rule{}, false
	}
	if err := req.IsValid(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return rule.Rule{}, false
	}
	rl, err := req.ToRule(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return rule.Rule{}, false
	}
	return rl, true
}

func (h *RuleHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	list, err := h.rules.ListServices(r.Context())
	if err != nil {
		writeError(r.Context(), h.logger, w, "failed to list services", err)
		return
	}

	resp := make([]dto.ServiceResponse, 0, len(list))
	for _, s := range list {
		resp = append(resp, dto.NewServiceResponse(s))
	}
	writeJSON(r.Context(), h.logger, w, http.StatusOK, resp)
}

func (h *RuleHandler) GetService(w http.ResponseWriter, r *http.Request) {
	s, err := h.rules.GetService(r.Context(), chi.URLParam(r, URLParamID))
	if err != nil {
		writeError(r.Context(), h.logger, w, "failed to get service", err)
		return
	}
	writeJSON(r.Context(), h.logger, w, http.StatusOK, dto.NewServiceResponse(s))
}

func (h *RuleHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req dto.ServiceRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}
	if err := req.IsValid(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.rules.CreateService(r.Context(),
		rule.Service{Name: req.Name, Description: req.Description})
	if err != nil {
		writeError(r.Context(), h.logger, w, "failed to create service", err)
		return
	}
	writeJSON(r.Context(), h.logger, w, http.StatusCreated, dto.NewServiceResponse(created))
}
