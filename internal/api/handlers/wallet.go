package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/talx-hub/points-ledger/internal/api/dto"
	"github.com/talx-hub/points-ledger/internal/ledger"
)

const URLParamUserID = "userId"

type WalletHandler struct {
	logger *slog.Logger
	wallet WalletService
}

func (h *WalletHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := userIDFromContext(r.Context())
	if !ok {
		h.noUser(w, r)
		return
	}

	b, err := h.wallet.GetBalance(r.Context(), ownerID)
	if err != nil {
		writeError(r.Context(), h.logger, w, "failed to get balance", err)
		return
	}
	writeJSON(r.Context(), h.logger, w, http.StatusOK,
		dto.BalanceResponse{OwnerID: b.OwnerID, Balance: b.Balance})
}

func (h *WalletHandler) Earn(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := userIDFromContext(r.Context())
	if !ok {
		h.noUser(w, r)
		return
	}
	h.earn(w, r, ownerID, "")
}

func (h *WalletHandler) Burn(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := userIDFromContext(r.Context())
	if !ok {
		h.noUser(w, r)
		return
	}
	h.burn(w, r, ownerID, "")
}

// PessimisticEarn serves the row-locking path for the owner named in the URL.
func (h *WalletHandler) PessimisticEarn(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.pessimisticOwner(w, r)
	if !ok {
		return
	}
	h.earn(w, r, ownerID, ledger.StrategyPessimistic)
}

func (h *WalletHandler) PessimisticBurn(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.pessimisticOwner(w, r)
	if !ok {
		return
	}
	h.burn(w, r, ownerID, ledger.StrategyPessimistic)
}

// pessimisticOwner reads the owner from the URL. It must be the token subject.
func (h *WalletHandler) pessimisticOwner(w http.ResponseWriter, r *http.Request) (string, bool) {
	ownerID := strings.TrimSpace(chi.URLParam(r, URLParamUserID))
	if ownerID == "" {
		http.Error(w, "user id is empty", http.StatusBadRequest)
		return "", false
	}
	subject, ok := userIDFromContext(r.Context())
	if !ok {
		h.noUser(w, r)
		return "", false
	}
	if subject != ownerID {
		h.logger.LogAttrs(r.Context(), slog.LevelWarn, "wallet of another user requested",
			slog.String("user_id", subject),
			slog.String("owner_id", ownerID),
		)
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return "", false
	}
	return ownerID, true
}

func (h *WalletHandler) earn(w http.ResponseWriter, r *http.Request, ownerID, strategy string) {
	var req dto.EarnRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}
	if err := req.IsValid(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	money, err := req.Money()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, err := h.wallet.Earn(r.Context(), ledger.EarnRequest{
		ServiceID:   req.ServiceID,
		ExternalRef: req.ExternalRef,
		Description: req.Description,
		OwnerID:     ownerID,
		Strategy:    strategy,
		Amount:      money,
	})
	if err != nil {
		writeError(r.Context(), h.logger, w, "failed to earn points", err)
		return
	}
	h.writeMutation(w, r, b)
}

func (h *WalletHandler) burn(w http.ResponseWriter, r *http.Request, ownerID, strategy string) {
	var req dto.BurnRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}
	if err := req.IsValid(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, err := h.wallet.Burn(r.Context(), ledger.BurnRequest{
		ExternalRef: req.ExternalRef,
		Description: req.Description,
		OwnerID:     ownerID,
		Strategy:    strategy,
		Amount:      req.Amount,
	})
	if err != nil {
		writeError(r.Context(), h.logger, w, "failed to burn points", err)
		return
	}
	h.writeMutation(w, r, b)
}

func (h *WalletHandler) writeMutation(w http.ResponseWriter, r *http.Request, b ledger.Balance) {
	writeJSON(r.Context(), h.logger, w, http.StatusOK, dto.MutationResponse{
		OwnerID: b.OwnerID,
		Balance: b.Balance,
		Applied: b.Applied,
	})
}

func (h *WalletHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := userIDFromContext(r.Context())
	if !ok {
		h.noUser(w, r)
		return
	}

	skip, err := queryInt(r, "skip")
	if err != nil {
		http.Error(w, "bad skip", http.StatusBadRequest)
		return
	}
	take, err := queryInt(r, "take")
	if err != nil {
		http.Error(w, "bad take", http.StatusBadRequest)
		return
	}

	page, err := h.wallet.ListTransactions(r.Context(), ownerID, skip, take)
	if err != nil {
		writeError(r.Context(), h.logger, w, "failed to list transactions", err)
		return
	}
	writeJSON(r.Context(), h.logger, w, http.StatusOK,
		dto.NewTransactionsResponse(page.Items, page.Total))
}

func (h *WalletHandler) noUser(w http.ResponseWriter, r *http.Request) {
	h.logger.LogAttrs(r.Context(), slog.LevelError, "failed to find user id in context")
	http.Error(w, http.StatusText(http.StatusInternalServerError),
		http.StatusInternalServerError)
}

// queryInt reads an optional integer query parameter.
func queryInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw) //nolint: wrapcheck // caller replies 400
}
