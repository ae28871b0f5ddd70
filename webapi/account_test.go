package webapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/avelsk/bankledger/internal/fixtures/mocks"
	"github.com/avelsk/bankledger/pkg/domain"
	accountdomain "github.com/avelsk/bankledger/pkg/domain/account"
	accountsvc "github.com/avelsk/bankledger/pkg/service/account"
	"github.com/avelsk/bankledger/webapi"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTransferApp(t *testing.T, balances map[uuid.UUID]string) (*fiber.App, map[uuid.UUID]*accountdomain.Account) {
	t.Helper()
	accounts := make(map[uuid.UUID]*accountdomain.Account, len(balances))
	for id, balance := range balances {
		a, err := accountdomain.New(id, decimal.RequireFromString(balance))
		require.NoError(t, err)
		accounts[id] = a
	}
	repo := &mocks.AccountRepository{
		GetForUpdateFunc: func(ctx context.Context, userID uuid.UUID) (*accountdomain.Account, error) {
			a, ok := accounts[userID]
			if !ok {
				return nil, domain.ErrAccountNotFound
			}
			return a, nil
		},
	}
	uow := &mocks.UnitOfWork{Accounts: repo}

	cfg := accountsvc.DefaultConfig(discard())
	cfg.Policy.InitialDelay = time.Microsecond
	svc := accountsvc.New(uow, cfg, discard())

	app := fiber.New()
	webapi.AccountRoutes(app, svc)
	return app, accounts
}

func transferRequest(t *testing.T, caller string, body webapi.TransferRequest) *http.Request {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/transfer", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if caller != "" {
		req.Header.Set("X-User-ID", caller)
	}
	return req
}

func TestTransferEndpoint_Success(t *testing.T) {
	t.Parallel()
	from, to := uuid.New(), uuid.New()
	app, accounts := newTransferApp(t, map[uuid.UUID]string{from: "1000", to: "0"})

	resp, err := app.Test(transferRequest(t, from.String(), webapi.TransferRequest{
		TransferTo: to,
		Value:      "250.50",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, accounts[from].Balance.Equal(decimal.RequireFromString("749.50")))
	assert.True(t, accounts[to].Balance.Equal(decimal.RequireFromString("250.50")))
}

func TestTransferEndpoint_MissingIdentity(t *testing.T) {
	t.Parallel()
	to := uuid.New()
	app, _ := newTransferApp(t, map[uuid.UUID]string{to: "0"})

	resp, err := app.Test(transferRequest(t, "", webapi.TransferRequest{
		TransferTo: to,
		Value:      "10",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestTransferEndpoint_MalformedIdentity(t *testing.T) {
	t.Parallel()
	to := uuid.New()
	app, _ := newTransferApp(t, map[uuid.UUID]string{to: "0"})

	resp, err := app.Test(transferRequest(t, "not-a-uuid", webapi.TransferRequest{
		TransferTo: to,
		Value:      "10",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestTransferEndpoint_InsufficientFunds(t *testing.T) {
	t.Parallel()
	from, to := uuid.New(), uuid.New()
	app, _ := newTransferApp(t, map[uuid.UUID]string{from: "10", to: "0"})

	resp, err := app.Test(transferRequest(t, from.String(), webapi.TransferRequest{
		TransferTo: to,
		Value:      "10.01",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "application/problem+json", resp.Header.Get("Content-Type"))

	var pd webapi.ProblemDetails
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pd))
	assert.Equal(t, fiber.StatusUnprocessableEntity, pd.Status)
	assert.Equal(t, "Transfer failed", pd.Title)
}

func TestTransferEndpoint_UnknownReceiverIs404(t *testing.T) {
	t.Parallel()
	from := uuid.New()
	app, _ := newTransferApp(t, map[uuid.UUID]string{from: "100"})

	resp, err := app.Test(transferRequest(t, from.String(), webapi.TransferRequest{
		TransferTo: uuid.New(),
		Value:      "10",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestTransferEndpoint_SelfTransferIs400(t *testing.T) {
	t.Parallel()
	id := uuid.New()
	app, _ := newTransferApp(t, map[uuid.UUID]string{id: "100"})

	resp, err := app.Test(transferRequest(t, id.String(), webapi.TransferRequest{
		TransferTo: id,
		Value:      "10",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestTransferEndpoint_BadAmount(t *testing.T) {
	t.Parallel()
	from, to := uuid.New(), uuid.New()
	app, _ := newTransferApp(t, map[uuid.UUID]string{from: "100", to: "0"})

	for _, value := range []string{"", "abc", "0", "-5"} {
		resp, err := app.Test(transferRequest(t, from.String(), webapi.TransferRequest{
			TransferTo: to,
			Value:      value,
		}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "value %q", value)
	}
}

func TestBalanceEndpoint_ReturnsOwnAccount(t *testing.T) {
	t.Parallel()
	id := uuid.New()
	a, err := accountdomain.New(id, decimal.RequireFromString("750.25"))
	require.NoError(t, err)
	repo := &mocks.AccountRepository{
		GetByUserIDFunc: func(ctx context.Context, userID uuid.UUID) (*accountdomain.Account, error) {
			if userID != id {
				return nil, domain.ErrAccountNotFound
			}
			return a, nil
		},
	}
	svc := accountsvc.New(&mocks.UnitOfWork{Accounts: repo}, accountsvc.DefaultConfig(discard()), discard())
	app := fiber.New()
	webapi.AccountRoutes(app, svc)

	req := httptest.NewRequest(http.MethodGet, "/balance", nil)
	req.Header.Set("X-User-ID", id.String())
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope struct {
		Data accountdomain.Account `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.True(t, envelope.Data.Balance.Equal(decimal.RequireFromString("750.25")))

	req = httptest.NewRequest(http.MethodGet, "/balance", nil)
	req.Header.Set("X-User-ID", uuid.NewString())
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestTransferEndpoint_MissingTarget(t *testing.T) {
	t.Parallel()
	from := uuid.New()
	app, _ := newTransferApp(t, map[uuid.UUID]string{from: "100"})

	resp, err := app.Test(transferRequest(t, from.String(), webapi.TransferRequest{
		Value: "10",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
