package webapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	infracache "github.com/avelsk/bankledger/infra/cache"
	"github.com/avelsk/bankledger/internal/fixtures/mocks"
	userdomain "github.com/avelsk/bankledger/pkg/domain/user"
	"github.com/avelsk/bankledger/pkg/repository"
	usersvc "github.com/avelsk/bankledger/pkg/service/user"
	"github.com/avelsk/bankledger/webapi"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserApp(users *mocks.UserRepository) *fiber.App {
	uow := &mocks.UnitOfWork{Users: users, Accounts: &mocks.AccountRepository{}}
	svc := usersvc.New(uow, infracache.NewMemoryCache(), time.Minute, discard())
	app := fiber.New()
	webapi.UserRoutes(app, svc)
	return app
}

func jsonRequest(t *testing.T, method, target, caller string, body any) *http.Request {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if caller != "" {
		req.Header.Set("X-User-ID", caller)
	}
	return req
}

func TestSearchUsersEndpoint_PassesFilterThrough(t *testing.T) {
	t.Parallel()
	var got repository.UserSearchFilter
	var gotPage, gotSize int
	users := &mocks.UserRepository{
		SearchFunc: func(ctx context.Context, f repository.UserSearchFilter, page, size int) ([]*userdomain.User, error) {
			got, gotPage, gotSize = f, page, size
			return []*userdomain.User{userdomain.New("Anna Ivanova", time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC))}, nil
		},
	}
	app := newUserApp(users)

	req := httptest.NewRequest(http.MethodGet,
		"/users?name=Ann&email=a%40b.c&phone=%2B375291112233&dateOfBirth=1980-01-01&page=2&size=5", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, "Ann", got.Name)
	assert.Equal(t, "a@b.c", got.Email)
	assert.Equal(t, "+375291112233", got.Phone)
	assert.Equal(t, time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC), got.BornAfter)
	assert.Equal(t, 2, gotPage)
	assert.Equal(t, 5, gotSize)

	var envelope webapi.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, "Users found", envelope.Message)
}

func TestSearchUsersEndpoint_BadDateOfBirth(t *testing.T) {
	t.Parallel()
	app := newUserApp(&mocks.UserRepository{})

	req := httptest.NewRequest(http.MethodGet, "/users?dateOfBirth=01.02.1990", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSearchUsersEndpoint_NoIdentityRequired(t *testing.T) {
	t.Parallel()
	users := &mocks.UserRepository{
		SearchFunc: func(ctx context.Context, f repository.UserSearchFilter, page, size int) ([]*userdomain.User, error) {
			return nil, nil
		},
	}
	app := newUserApp(users)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAddEmailEndpoint_Created(t *testing.T) {
	t.Parallel()
	caller := uuid.New()
	users := &mocks.UserRepository{
		GetFunc: func(ctx context.Context, id uuid.UUID) (*userdomain.User, error) {
			return userdomain.New("Anna", time.Time{}), nil
		},
	}
	app := newUserApp(users)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/email", caller.String(),
		webapi.AddEmailRequest{Email: "anna@example.com"}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestAddEmailEndpoint_RequiresIdentity(t *testing.T) {
	t.Parallel()
	app := newUserApp(&mocks.UserRepository{})

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/email", "",
		webapi.AddEmailRequest{Email: "anna@example.com"}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAddEmailEndpoint_EmptyEmail(t *testing.T) {
	t.Parallel()
	app := newUserApp(&mocks.UserRepository{})

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/email", uuid.NewString(),
		webapi.AddEmailRequest{}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUpdateEmailEndpoint_ForeignRecordIs403(t *testing.T) {
	t.Parallel()
	owner := uuid.New()
	emailID := uuid.New()
	users := &mocks.UserRepository{
		GetEmailFunc: func(ctx context.Context, id uuid.UUID) (*userdomain.EmailData, error) {
			return &userdomain.EmailData{ID: emailID, UserID: owner, Email: "a@b.c"}, nil
		},
	}
	app := newUserApp(users)

	resp, err := app.Test(jsonRequest(t, http.MethodPut, "/email", uuid.NewString(),
		webapi.UpdateEmailRequest{ID: emailID, Email: "new@b.c"}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestDeletePhoneEndpoint_OwnerSucceeds(t *testing.T) {
	t.Parallel()
	caller := uuid.New()
	phoneID := uuid.New()
	users := &mocks.UserRepository{
		GetPhoneFunc: func(ctx context.Context, id uuid.UUID) (*userdomain.PhoneData, error) {
			return &userdomain.PhoneData{ID: phoneID, UserID: caller, Phone: "+375291112233"}, nil
		},
	}
	app := newUserApp(users)

	resp, err := app.Test(jsonRequest(t, http.MethodDelete, "/phone", caller.String(),
		webapi.DeleteContactRequest{ID: phoneID}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
