package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/talx-hub/points-ledger/internal/ledger"
	"github.com/talx-hub/points-ledger/internal/model"
	"github.com/talx-hub/points-ledger/internal/model/rule"
	"github.com/talx-hub/points-ledger/internal/reporting"
	"github.com/talx-hub/points-ledger/internal/serviceerrs"
)

type WalletService interface {
	Earn(ctx context.Context, req ledger.EarnRequest) (ledger.Balance, error)
	Burn(ctx context.Context, req ledger.BurnRequest) (ledger.Balance, error)
	GetBalance(ctx context.Context, ownerID string) (ledger.Balance, error)
	ListTransactions(ctx context.Context, ownerID string, skip, take int) (ledger.Page, error)
}

type RuleService interface {
	ListRules(ctx context.Context) ([]rule.Rule, error)
	GetRule(ctx context.Context, id string) (rule.Rule, error)
	CreateRule(ctx context.Context, r rule.Rule) (rule.Rule, error)
	UpdateRule(ctx context.Context, r rule.Rule) error
	DeleteRule(ctx context.Context, id string) error

	ListServices(ctx context.Context) ([]rule.Service, error)
	GetService(ctx context.Context, id string) (rule.Service, error)
	CreateService(ctx context.Context, s rule.Service) (rule.Service, error)
}

type KPIProvider interface {
	GetKPIs(ctx context.Context) (reporting.KPIs, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler groups every endpoint the router serves.
type Handler struct {
	*AuthHandler
	*WalletHandler
	*RuleHandler
	*AdminHandler
}

func New(log *slog.Logger, secret []byte,
	wallet WalletService, rules RuleService, kpis KPIProvider, pinger Pinger,
) *Handler {
	return &Handler{
		AuthHandler:   &AuthHandler{logger: log, secret: secret},
		WalletHandler: &WalletHandler{logger: log, wallet: wallet},
		RuleHandler:   &RuleHandler{logger: log, rules: rules},
		AdminHandler:  &AdminHandler{logger: log, kpis: kpis, pinger: pinger},
	}
}

// statusFromError maps the service error taxonomy onto HTTP codes.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, serviceerrs.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, serviceerrs.ErrTokenExpired):
		return http.StatusUnauthorized
	case errors.Is(err, serviceerrs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, serviceerrs.ErrInsufficientBalance):
		return http.StatusUnprocessableEntity
	case errors.Is(err, serviceerrs.ErrConcurrencyExhausted),
		errors.Is(err, serviceerrs.ErrLockConflict),
		errors.Is(err, serviceerrs.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, serviceerrs.ErrMutationsBusy):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(ctx context.Context, log *slog.Logger, w http.ResponseWriter, msg string, err error) {
	code := statusFromError(err)
	level := slog.LevelDebug
	if code >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	log.LogAttrs(ctx, level, msg, slog.Any(model.KeyLoggerError, err))

	if code == http.StatusInternalServerError {
		http.Error(w, http.StatusText(code), code)
		return
	}
	http.Error(w, err.Error(), code)
}

func writeJSON(ctx context.Context, log *slog.Logger, w http.ResponseWriter, code int, v any) {
	w.Header().Set(model.HeaderContentType, "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.LogAttrs(ctx, slog.LevelError, "failed to encode response",
			slog.Any(model.KeyLoggerError, err))
	}
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Join(serviceerrs.ErrInvalidArgument, err)
	}
	return nil
}

func userIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(model.KeyContextUserID).(string)
	return id, ok && id != ""
}
