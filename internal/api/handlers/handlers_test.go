package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/talx-hub/points-ledger/internal/api/handlers/mocks"
	"github.com/talx-hub/points-ledger/internal/ledger"
	"github.com/talx-hub/points-ledger/internal/model"
	"github.com/talx-hub/points-ledger/internal/model/bonus"
	"github.com/talx-hub/points-ledger/internal/model/rule"
	"github.com/talx-hub/points-ledger/internal/reporting"
	"github.com/talx-hub/points-ledger/internal/serviceerrs"
	"github.com/talx-hub/points-ledger/internal/utils/auth"
)

const noUser = "dont-put-to-ctx"

type ResponseFixture struct {
	TestcaseName string          `json:"name"`
	Responses    json.RawMessage `json:"responses"`
}

func loadResponseFixtures(t *testing.T, file string) map[string]string {
	t.Helper()

	data, err := os.ReadFile(file)
	require.NoError(t, err)

	var temp []ResponseFixture
	require.NoError(t, json.Unmarshal(data, &temp))

	fixtures := make(map[string]string)
	for _, f := range temp {
		fixtures[f.TestcaseName] = string(f.Responses)
	}
	return fixtures
}

func newRequest(t *testing.T, method, target, body, userID string, params map[string]string,
) *http.Request {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	ctx := req.Context()
	if userID != noUser {
		ctx = context.WithValue(ctx, model.KeyContextUserID, userID)
	}
	if len(params) != 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

func serve(t *testing.T, h http.HandlerFunc, req *http.Request) (int, string) {
	t.Helper()

	rr := httptest.NewRecorder()
	h(rr, req)
	res := rr.Result()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	require.NoError(t, res.Body.Close())

	return res.StatusCode, string(body)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{serviceerrs.ErrInvalidArgument, http.StatusBadRequest},
		{serviceerrs.ErrTokenExpired, http.StatusUnauthorized},
		{fmt.Errorf("failed to get account: %w", serviceerrs.ErrNotFound), http.StatusNotFound},
		{serviceerrs.ErrInsufficientBalance, http.StatusUnprocessableEntity},
		{serviceerrs.ErrConcurrencyExhausted, http.StatusConflict},
		{serviceerrs.ErrLockConflict, http.StatusConflict},
		{serviceerrs.ErrAlreadyExists, http.StatusConflict},
		{serviceerrs.ErrMutationsBusy, http.StatusServiceUnavailable},
		{serviceerrs.ErrUnexpected, http.StatusInternalServerError},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantUserID string
		wantCode   int
		wantToken  bool
	}{
		{"known user", `{"userId":"user-1"}`, "user-1", http.StatusOK, true},
		{"fresh user", `{}`, "", http.StatusOK, true},
		{"too long id", fmt.Sprintf(`{"userId":%q}`, strings.Repeat("x", 200)), "", http.StatusBadRequest, false},
		{"decoding error #1", `42`, "", http.StatusBadRequest, false},
		{"decoding error #2", `{"userId":42}`, "", http.StatusBadRequest, false},
		{"empty body", ``, "", http.StatusBadRequest, false},
	}

	secret := []byte("super-secret-key")
	h := AuthHandler{
		logger: slog.Default(),
		secret: secret,
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			h.Login(rr, req)
			res := rr.Result()
			defer func() {
				require.NoError(t, res.Body.Close())
			}()

			assert.Equal(t, tt.wantCode, res.StatusCode)

			var cookieToken string
			for _, c := range res.Cookies() {
				if c.Name == auth.CookieName {
					cookieToken = c.Value
				}
			}
			assert.Equal(t, tt.wantToken, cookieToken != "")
			if !tt.wantToken {
				return
			}

			var resp struct {
				Token  string `json:"token"`
				UserID string `json:"userId"`
			}
			require.NoError(t, json.NewDecoder(res.Body).Decode(&resp))
			assert.Equal(t, cookieToken, resp.Token)
			if tt.wantUserID != "" {
				assert.Equal(t, tt.wantUserID, resp.UserID)
			} else {
				_, err := uuid.Parse(resp.UserID)
				assert.NoError(t, err)
			}

			claims, err := auth.CheckToken(resp.Token, secret)
			require.NoError(t, err)
			assert.Equal(t, resp.UserID, claims.UserID)
		})
	}
}

func TestWalletHandler_Earn(t *testing.T) {
	tests := []struct {
		name     string
		userID   string
		body     string
		wantCode int
		wantBody string
	}{
		{
			"happy",
			"user",
			`{"amount": 150.50, "externalRef": "ok"}`,
			http.StatusOK,
			`{"ownerId":"user","balance":15,"applied":true}`,
		},
		{
			"replay",
			"user",
			`{"amount": 150.50, "externalRef": "replay"}`,
			http.StatusOK,
			`{"ownerId":"user","balance":15,"applied":false}`,
		},
		{
			"unknown service",
			"user",
			`{"amount": 10, "serviceId": "22222222-2222-2222-2222-222222222222"}`,
			http.StatusNotFound,
			"",
		},
		{"below base amount", "user", `{"amount": 0.5, "externalRef": "small"}`, http.StatusBadRequest, ""},
		{"retries exhausted", "user", `{"amount": 1, "externalRef": "exhausted"}`, http.StatusConflict, ""},
		{"too busy", "user", `{"amount": 1, "externalRef": "busy"}`, http.StatusServiceUnavailable, ""},
		{"storage failure", "user", `{"amount": 1, "externalRef": "broken"}`, http.StatusInternalServerError, ""},
		{"zero amount", "user", `{"amount": 0}`, http.StatusBadRequest, ""},
		{"negative amount", "user", `{"amount": -3}`, http.StatusBadRequest, ""},
		{"not a number", "user", `{"amount": "abc"}`, http.StatusBadRequest, ""},
		{"bad service id", "user", `{"amount": 1, "serviceId": "car-wash"}`, http.StatusBadRequest, ""},
		{"bad body", "user", `{"amount":`, http.StatusBadRequest, ""},
		{"test retrieve userID from context failure", noUser, `{"amount": 1}`, http.StatusInternalServerError, ""},
	}

	wallet := mocks.NewMockWalletService(t)
	wallet.EXPECT().
		Earn(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, req ledger.EarnRequest) (ledger.Balance, error) {
			if req.ServiceID != nil {
				return ledger.Balance{}, serviceerrs.ErrNotFound
			}
			switch deref(req.ExternalRef) {
			case "ok":
				if req.Amount.TotalCents() != 15050 || req.Strategy != "" {
					return ledger.Balance{}, serviceerrs.ErrUnexpected
				}
				return ledger.Balance{OwnerID: req.OwnerID, Balance: 15, Applied: true}, nil
			case "replay":
				return ledger.Balance{OwnerID: req.OwnerID, Balance: 15}, nil
			case "small":
				return ledger.Balance{}, fmt.Errorf("failed to resolve points: %w",
					serviceerrs.ErrInvalidArgument)
			case "exhausted":
				return ledger.Balance{}, serviceerrs.ErrConcurrencyExhausted
			case "busy":
				return ledger.Balance{}, serviceerrs.ErrMutationsBusy
			default:
				return ledger.Balance{}, errors.New("connection reset by peer")
			}
		})

	h := WalletHandler{
		logger: slog.Default(),
		wallet: wallet,
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newRequest(t, http.MethodPost, "/earn", tt.body, tt.userID, nil)
			code, body := serve(t, h.Earn, req)

			assert.Equal(t, tt.wantCode, code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, body)
			}
		})
	}

	wallet.AssertNumberOfCalls(t, "Earn", 7)
}

func TestWalletHandler_Burn(t *testing.T) {
	tests := []struct {
		name     string
		userID   string
		body     string
		wantCode int
		wantBody string
	}{
		{
			"happy",
			"user",
			`{"amount": 40, "externalRef": "ok", "description": "coffee"}`,
			http.StatusOK,
			`{"ownerId":"user","balance":60,"applied":true}`,
		},
		{"insufficient balance", "user", `{"amount": 150, "externalRef": "poor"}`, http.StatusUnprocessableEntity, ""},
		{"lock conflict", "user", `{"amount": 1, "externalRef": "locked"}`, http.StatusConflict, ""},
		{"zero amount", "user", `{"amount": 0}`, http.StatusBadRequest, ""},
		{"fractional amount", "user", `{"amount": 1.5}`, http.StatusBadRequest, ""},
		{"test retrieve userID from context failure", noUser, `{"amount": 1}`, http.StatusInternalServerError, ""},
	}

	wallet := mocks.NewMockWalletService(t)
	wallet.EXPECT().
		Burn(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, req ledger.BurnRequest) (ledger.Balance, error) {
			switch deref(req.ExternalRef) {
			case "ok":
				if req.Amount != 40 || deref(req.Description) != "coffee" {
					return ledger.Balance{}, serviceerrs.ErrUnexpected
				}
				return ledger.Balance{OwnerID: req.OwnerID, Balance: 60, Applied: true}, nil
			case "poor":
				return ledger.Balance{}, serviceerrs.ErrInsufficientBalance
			default:
				return ledger.Balance{}, serviceerrs.ErrLockConflict
			}
		})

	h := WalletHandler{
		logger: slog.Default(),
		wallet: wallet,
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newRequest(t, http.MethodPost, "/burn", tt.body, tt.userID, nil)
			code, body := serve(t, h.Burn, req)

			assert.Equal(t, tt.wantCode, code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, body)
			}
		})
	}

	wallet.AssertNumberOfCalls(t, "Burn", 3)
}

func TestWalletHandler_pessimistic(t *testing.T) {
	wallet := mocks.NewMockWalletService(t)
	wallet.EXPECT().
		Earn(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, req ledger.EarnRequest) (ledger.Balance, error) {
			assert.Equal(t, ledger.StrategyPessimistic, req.Strategy)
			return ledger.Balance{OwnerID: req.OwnerID, Balance: 10, Applied: true}, nil
		}).Once()
	wallet.EXPECT().
		Burn(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, req ledger.BurnRequest) (ledger.Balance, error) {
			assert.Equal(t, ledger.StrategyPessimistic, req.Strategy)
			return ledger.Balance{OwnerID: req.OwnerID, Balance: 7, Applied: true}, nil
		}).Once()

	h := WalletHandler{
		logger: slog.Default(),
		wallet: wallet,
	}
	params := map[string]string{URLParamUserID: "u-42"}

	req := newRequest(t, http.MethodPost, "/earn", `{"amount": 10}`, "u-42", params)
	code, body := serve(t, h.PessimisticEarn, req)
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"ownerId":"u-42","balance":10,"applied":true}`, body)

	req = newRequest(t, http.MethodPost, "/burn", `{"amount": 3}`, "u-42", params)
	code, body = serve(t, h.PessimisticBurn, req)
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"ownerId":"u-42","balance":7,"applied":true}`, body)

	tests := []struct {
		name     string
		handler  http.HandlerFunc
		userID   string
		owner    string
		wantCode int
	}{
		{"empty owner", h.PessimisticEarn, "u-42", "", http.StatusBadRequest},
		{"earn for another user", h.PessimisticEarn, "mallory", "u-42", http.StatusForbidden},
		{"burn for another user", h.PessimisticBurn, "mallory", "u-42", http.StatusForbidden},
		{"test retrieve userID from context failure", h.PessimisticBurn, noUser, "u-42",
			http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newRequest(t, http.MethodPost, "/", `{"amount": 1}`, tt.userID,
				map[string]string{URLParamUserID: tt.owner})
			code, _ := serve(t, tt.handler, req)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestWalletHandler_GetBalance(t *testing.T) {
	tests := []struct {
		name     string
		userID   string
		wantCode int
		wantBody string
	}{
		{"existing", "user", http.StatusOK, `{"ownerId":"user","balance":100}`},
		{"missing", "stranger", http.StatusNotFound, ""},
		{"test retrieve userID from context failure", noUser, http.StatusInternalServerError, ""},
	}

	wallet := mocks.NewMockWalletService(t)
	wallet.EXPECT().
		GetBalance(mock.Anything, "user").
		Return(ledger.Balance{OwnerID: "user", Balance: 100}, nil)
	wallet.EXPECT().
		GetBalance(mock.Anything, "stranger").
		Return(ledger.Balance{}, fmt.Errorf("failed to get account of stranger: %w",
			serviceerrs.ErrNotFound))

	h := WalletHandler{
		logger: slog.Default(),
		wallet: wallet,
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newRequest(t, http.MethodGet, "/balance", "", tt.userID, nil)
			code, body := serve(t, h.GetBalance, req)

			assert.Equal(t, tt.wantCode, code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, body)
			}
		})
	}
}

func TestWalletHandler_ListTransactions(t *testing.T) {
	base, err := time.Parse(time.RFC3339, "1999-01-01T00:00:00Z")
	require.NoError(t, err)
	ref := "order-2"
	desc := "car wash"

	fixtures := loadResponseFixtures(t, "testdata/transactions_responses.json")

	tests := []struct {
		name     string
		query    string
		wantCode int
		wantBody string
	}{
		{"second page", "?skip=2&take=2", http.StatusOK, fixtures["second page"]},
		{"defaults", "", http.StatusOK, fixtures["defaults"]},
		{"bad skip", "?skip=x", http.StatusBadRequest, ""},
		{"bad take", "?take=1.5", http.StatusBadRequest, ""},
	}

	wallet := mocks.NewMockWalletService(t)
	wallet.EXPECT().
		ListTransactions(mock.Anything, "user", 2, 2).
		Return(ledger.Page{
			Items: []bonus.Transaction{
				{
					CreatedAt:    base.Add(2 * time.Second),
					ExternalRef:  &ref,
					ID:           "tx-2",
					AccountID:    "acc",
					Type:         bonus.TypeBurn,
					Amount:       5,
					BalanceAfter: 10,
				},
				{
					CreatedAt:    base.Add(time.Second),
					Description:  &desc,
					ID:           "tx-1",
					AccountID:    "acc",
					Type:         bonus.TypeEarn,
					Amount:       15,
					BalanceAfter: 15,
				},
			},
			Total: 4,
		}, nil)
	wallet.EXPECT().
		ListTransactions(mock.Anything, "user", 0, 0).
		Return(ledger.Page{Items: []bonus.Transaction{}}, nil)

	h := WalletHandler{
		logger: slog.Default(),
		wallet: wallet,
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newRequest(t, http.MethodGet, "/transactions"+tt.query, "", "user", nil)
			code, body := serve(t, h.ListTransactions, req)

			assert.Equal(t, tt.wantCode, code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, body)
			}
		})
	}

	wallet.AssertNumberOfCalls(t, "ListTransactions", 2)
}

func TestRuleHandler_list(t *testing.T) {
	fixtures := loadResponseFixtures(t, "testdata/rules_responses.json")
	carWashID := "11111111-1111-1111-1111-111111111111"
	carWash := "Car Wash"

	rules := mocks.NewMockRuleService(t)
	rules.EXPECT().
		ListRules(mock.Anything).
		Return([]rule.Rule{
			{
				ServiceID:           &carWashID,
				ServiceName:         &carWash,
				ID:                  "rule-1",
				RuleType:            rule.TypeEarning,
				BaseAmount:          model.NewAmount(100, 0),
				PointsPerBaseAmount: 10,
			},
			{
				ID:                  "rule-default",
				RuleType:            rule.TypeEarning,
				BaseAmount:          model.NewAmount(1, 0),
				PointsPerBaseAmount: 1,
				IsDefault:           true,
			},
		}, nil)
	rules.EXPECT().
		ListServices(mock.Anything).
		Return([]rule.Service{
			{ID: carWashID, Name: carWash, Description: "Self-service car wash"},
		}, nil)

	h := RuleHandler{
		logger: slog.Default(),
		rules:  rules,
	}

	code, body := serve(t, h.ListRules, newRequest(t, http.MethodGet, "/rules", "", noUser, nil))
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, fixtures["list rules"], body)

	code, body = serve(t, h.ListServices, newRequest(t, http.MethodGet, "/services", "", noUser, nil))
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, fixtures["list services"], body)
}

func TestRuleHandler_GetRule(t *testing.T) {
	rules := mocks.NewMockRuleService(t)
	rules.EXPECT().
		GetRule(mock.Anything, "rule-1").
		Return(rule.Rule{
			ID:                  "rule-1",
			RuleType:            rule.TypeEarning,
			BaseAmount:          model.NewAmount(100, 0),
			PointsPerBaseAmount: 10,
			IsDefault:           true,
		}, nil)
	rules.EXPECT().
		GetRule(mock.Anything, "missing").
		Return(rule.Rule{}, serviceerrs.ErrNotFound)

	h := RuleHandler{
		logger: slog.Default(),
		rules:  rules,
	}

	req := newRequest(t, http.MethodGet, "/rules/rule-1", "", noUser,
		map[string]string{URLParamID: "rule-1"})
	code, body := serve(t, h.GetRule, req)
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t,
		`{"id":"rule-1","ruleType":"EARNING","baseAmount":100.00,"pointsPerBaseAmount":10,"isDefault":true}`,
		body)

	req = newRequest(t, http.MethodGet, "/rules/missing", "", noUser,
		map[string]string{URLParamID: "missing"})
	code, _ = serve(t, h.GetRule, req)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestRuleHandler_CreateRule(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{
			"service rule",
			`{"serviceId":"11111111-1111-1111-1111-111111111111","baseAmount":100,"pointsPerBaseAmount":10}`,
			http.StatusCreated,
		},
		{
			"unknown service",
			`{"serviceId":"33333333-3333-3333-3333-333333333333","baseAmount":100,"pointsPerBaseAmount":10}`,
			http.StatusNotFound,
		},
		{"neither service nor default", `{"baseAmount":100,"pointsPerBaseAmount":10}`, http.StatusBadRequest},
		{"no points", `{"isDefault":true,"baseAmount":100}`, http.StatusBadRequest},
		{"bad base amount", `{"isDefault":true,"baseAmount":"x","pointsPerBaseAmount":1}`, http.StatusBadRequest},
		{"bad body", `[]`, http.StatusBadRequest},
	}

	rules := mocks.NewMockRuleService(t)
	rules.EXPECT().
		CreateRule(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, r rule.Rule) (rule.Rule, error) {
			if deref(r.ServiceID) != "11111111-1111-1111-1111-111111111111" {
				return rule.Rule{}, serviceerrs.ErrNotFound
			}
			r.ID = "new-rule"
			r.RuleType = rule.TypeEarning
			return r, nil
		})

	h := RuleHandler{
		logger: slog.Default(),
		rules:  rules,
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newRequest(t, http.MethodPost, "/rules", tt.body, noUser, nil)
			code, _ := serve(t, h.CreateRule, req)
			assert.Equal(t, tt.wantCode, code)
		})
	}

	rules.AssertNumberOfCalls(t, "CreateRule", 2)
}

func TestRuleHandler_UpdateRule_DeleteRule(t *testing.T) {
	rules := mocks.NewMockRuleService(t)
	rules.EXPECT().
		UpdateRule(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, r rule.Rule) error {
			if r.ID != "rule-1" {
				return serviceerrs.ErrNotFound
			}
			return nil
		})
	rules.EXPECT().DeleteRule(mock.Anything, "rule-1").Return(nil)
	rules.EXPECT().DeleteRule(mock.Anything, "missing").Return(serviceerrs.ErrNotFound)

	h := RuleHandler{
		logger: slog.Default(),
		rules:  rules,
	}

	body := `{"isDefault":true,"baseAmount":2,"pointsPerBaseAmount":3}`
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		method   string
		id       string
		body     string
		wantCode int
	}{
		{"update", h.UpdateRule, http.MethodPut, "rule-1", body, http.StatusNoContent},
		{"update missing", h.UpdateRule, http.MethodPut, "missing", body, http.StatusNotFound},
		{"update bad body", h.UpdateRule, http.MethodPut, "rule-1", `{`, http.StatusBadRequest},
		{"delete", h.DeleteRule, http.MethodDelete, "rule-1", "", http.StatusNoContent},
		{"delete missing", h.DeleteRule, http.MethodDelete, "missing", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newRequest(t, tt.method, "/rules/"+tt.id, tt.body, noUser,
				map[string]string{URLParamID: tt.id})
			code, _ := serve(t, tt.handler, req)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestRuleHandler_services(t *testing.T) {
	rules := mocks.NewMockRuleService(t)
	rules.EXPECT().
		CreateService(mock.Anything, rule.Service{Name: "Parking", Description: "Lot B"}).
		Return(rule.Service{ID: "svc-1", Name: "Parking", Description: "Lot B"}, nil)
	rules.EXPECT().
		CreateService(mock.Anything, rule.Service{Name: "Car Wash"}).
		Return(rule.Service{}, serviceerrs.ErrAlreadyExists)
	rules.EXPECT().
		GetService(mock.Anything, "svc-1").
		Return(rule.Service{ID: "svc-1", Name: "Parking", Description: "Lot B"}, nil)
	rules.EXPECT().
		GetService(mock.Anything, "missing").
		Return(rule.Service{}, serviceerrs.ErrNotFound)

	h := RuleHandler{
		logger: slog.Default(),
		rules:  rules,
	}

	code, body := serve(t, h.CreateService, newRequest(t, http.MethodPost, "/services",
		`{"name":"Parking","description":"Lot B"}`, noUser, nil))
	assert.Equal(t, http.StatusCreated, code)
	assert.JSONEq(t, `{"id":"svc-1","name":"Parking","description":"Lot B"}`, body)

	code, _ = serve(t, h.CreateService, newRequest(t, http.MethodPost, "/services",
		`{"name":"Car Wash"}`, noUser, nil))
	assert.Equal(t, http.StatusConflict, code)

	code, _ = serve(t, h.CreateService, newRequest(t, http.MethodPost, "/services",
		`{"description":"no name"}`, noUser, nil))
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = serve(t, h.GetService, newRequest(t, http.MethodGet, "/services/svc-1",
		"", noUser, map[string]string{URLParamID: "svc-1"}))
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"id":"svc-1","name":"Parking","description":"Lot B"}`, body)

	code, _ = serve(t, h.GetService, newRequest(t, http.MethodGet, "/services/missing",
		"", noUser, map[string]string{URLParamID: "missing"}))
	assert.Equal(t, http.StatusNotFound, code)
}

func TestAdminHandler_GetKPIs(t *testing.T) {
	kpis := mocks.NewMockKPIProvider(t)
	kpis.EXPECT().
		GetKPIs(mock.Anything).
		Return(reporting.KPIs{TotalEarned: 500, TotalBurned: 120, ActiveWallets: 7}, nil).
		Once()
	kpis.EXPECT().
		GetKPIs(mock.Anything).
		Return(reporting.KPIs{}, errors.New("connection refused")).
		Once()

	h := AdminHandler{
		logger: slog.Default(),
		kpis:   kpis,
	}

	code, body := serve(t, h.GetKPIs, newRequest(t, http.MethodGet, "/kpis", "", "admin", nil))
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"totalEarned":500,"totalBurned":120,"activeWallets":7}`, body)

	code, _ = serve(t, h.GetKPIs, newRequest(t, http.MethodGet, "/kpis", "", "admin", nil))
	assert.Equal(t, http.StatusInternalServerError, code)
}

func TestAdminHandler_Ping(t *testing.T) {
	pinger := mocks.NewMockPinger(t)
	pinger.EXPECT().Ping(mock.Anything).Return(nil).Once()
	pinger.EXPECT().Ping(mock.Anything).Return(errors.New("dial tcp: refused")).Once()

	h := AdminHandler{
		logger: slog.Default(),
		pinger: pinger,
	}

	code, _ := serve(t, h.Ping, newRequest(t, http.MethodGet, "/ping", "", noUser, nil))
	assert.Equal(t, http.StatusOK, code)

	code, _ = serve(t, h.Ping, newRequest(t, http.MethodGet, "/ping", "", noUser, nil))
	assert.Equal(t, http.StatusInternalServerError, code)
}
