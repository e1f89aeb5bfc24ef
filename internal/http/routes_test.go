package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/finledger/finledger/internal/adapters/password"
	"github.com/finledger/finledger/internal/domain/model"
	apperrors "github.com/finledger/finledger/internal/errors"
	"github.com/finledger/finledger/internal/mocks"
	"github.com/finledger/finledger/internal/service"
)

const (
	testOwnerID = "6a1f8c3e-0000-4000-8000-000000000001"
	testTxID    = "6a1f8c3e-0000-4000-8000-000000000002"
)

type routerMocks struct {
	users        *mocks.MockUserRepository
	transactions *mocks.MockTransactionRepository
	budgets      *mocks.MockBudgetRepository
}

type testRouter struct {
	handler http.Handler
	mocks   routerMocks
	token   string
}

func newTestRouter(t *testing.T) *testRouter {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := routerMocks{
		users:        mocks.NewMockUserRepository(ctrl),
		transactions: mocks.NewMockTransactionRepository(ctrl),
		budgets:      mocks.NewMockBudgetRepository(ctrl),
	}

	tokens := newTestTokens(t)
	hasher := password.NewHasher(bcrypt.MinCost)

	auth := service.NewAuthService(service.AuthServiceOptions{
		Users:  m.users,
		Tokens: tokens,
		Hasher: hasher,
		Logger: discardLogger(),
	})
	handler := NewRouter(RouterServices{
		Auth:         auth,
		Transactions: service.NewTransactionService(service.TransactionServiceOptions{Transactions: m.transactions}),
		Budgets:      service.NewBudgetService(service.BudgetServiceOptions{Budgets: m.budgets}),
		Reports:      service.NewReportService(service.ReportServiceOptions{Transactions: m.transactions}),
		Tokens:       tokens,
		Logger:       discardLogger(),
	})

	token, err := tokens.Issue(testOwnerID, "alice@example.com")
	require.NoError(t, err)

	return &testRouter{handler: handler, mocks: m, token: token}
}

func (tr *testRouter) do(t *testing.T, method, path, body string, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if authed {
		req.Header.Set("Authorization", "Bearer "+tr.token)
	}
	rec := httptest.NewRecorder()
	tr.handler.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Health(t *testing.T) {
	tr := newTestRouter(t)

	rec := tr.do(t, http.MethodGet, "/healthz", "", false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = tr.do(t, http.MethodHead, "/healthz", "", false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestRouter_ProtectedRoutesFailClosed(t *testing.T) {
	tr := newTestRouter(t)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodPost, "/api/transactions"},
		{http.MethodGet, "/api/transactions"},
		{http.MethodPut, "/api/transactions/" + testTxID},
		{http.MethodDelete, "/api/transactions/" + testTxID},
		{http.MethodPost, "/api/budgets"},
		{http.MethodGet, "/api/budgets"},
		{http.MethodPut, "/api/budgets/" + testTxID},
		{http.MethodDelete, "/api/budgets/" + testTxID},
		{http.MethodGet, "/api/reports/monthly"},
	}

	for _, route := range routes {
		rec := tr.do(t, route.method, route.path, "", false)
		assert.Equalf(t, http.StatusUnauthorized, rec.Code, "%s %s must be gated", route.method, route.path)
		assert.JSONEq(t, `{"error":"unauthorized","message":"authentication required"}`, rec.Body.String())
	}
}

func TestRouter_Register(t *testing.T) {
	tr := newTestRouter(t)

	tr.mocks.users.EXPECT().EmailExists(gomock.Any(), "alice@example.com").Return(false, nil)
	tr.mocks.users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&model.User{
		ID:    testOwnerID,
		Email: "alice@example.com",
	}, nil)

	rec := tr.do(t, http.MethodPost, "/api/auth/register",
		`{"email":"alice@example.com","password":"secret password"}`, false)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "access_token")
}

func TestRouter_Register_DuplicateEmail(t *testing.T) {
	tr := newTestRouter(t)

	tr.mocks.users.EXPECT().EmailExists(gomock.Any(), "alice@example.com").Return(true, nil)

	rec := tr.do(t, http.MethodPost, "/api/auth/register",
		`{"email":"alice@example.com","password":"secret password"}`, false)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"conflict","message":"email already registered"}`, rec.Body.String())
}

func TestRouter_Register_InvalidBody(t *testing.T) {
	tr := newTestRouter(t)

	rec := tr.do(t, http.MethodPost, "/api/auth/register", `{"email":"bad","password":"x"}`, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = tr.do(t, http.MethodPost, "/api/auth/register", `not json`, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_Login(t *testing.T) {
	tr := newTestRouter(t)

	hash, err := password.NewHasher(bcrypt.MinCost).Hash("secret password")
	require.NoError(t, err)
	tr.mocks.users.EXPECT().GetByEmail(gomock.Any(), "alice@example.com").Return(&model.User{
		ID:           testOwnerID,
		Email:        "alice@example.com",
		PasswordHash: hash,
	}, nil)

	rec := tr.do(t, http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"secret password"}`, false)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "access_token")
}

func TestRouter_Login_FailureIsUniform(t *testing.T) {
	tr := newTestRouter(t)

	hash, err := password.NewHasher(bcrypt.MinCost).Hash("secret password")
	require.NoError(t, err)

	// Unknown email and wrong password produce byte-identical responses.
	tr.mocks.users.EXPECT().GetByEmail(gomock.Any(), "ghost@example.com").
		Return(nil, apperrors.NotFound("user not found"))
	unknownEmail := tr.do(t, http.MethodPost, "/api/auth/login",
		`{"email":"ghost@example.com","password":"whatever"}`, false)

	tr.mocks.users.EXPECT().GetByEmail(gomock.Any(), "alice@example.com").Return(&model.User{
		ID:           testOwnerID,
		Email:        "alice@example.com",
		PasswordHash: hash,
	}, nil)
	wrongPassword := tr.do(t, http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"wrong"}`, false)

	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, unknownEmail.Body.String(), wrongPassword.Body.String())
}

func TestRouter_Me(t *testing.T) {
	tr := newTestRouter(t)

	rec := tr.do(t, http.MethodGet, "/api/auth/me", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"`+testOwnerID+`","email":"alice@example.com"}`, rec.Body.String())
}

func TestRouter_CreateTransaction(t *testing.T) {
	tr := newTestRouter(t)

	tr.mocks.transactions.EXPECT().
		Create(gomock.Any(), testOwnerID, gomock.Any()).
		Return(&model.Transaction{ID: testTxID, UserID: testOwnerID, Amount: 42.5}, nil)

	rec := tr.do(t, http.MethodPost, "/api/transactions",
		`{"amount":42.5,"kind":"expense","category":"food","occurred_at":"2026-03-10T12:00:00Z"}`, true)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), testTxID)
}

func TestRouter_CreateTransaction_Invalid(t *testing.T) {
	tr := newTestRouter(t)

	rec := tr.do(t, http.MethodPost, "/api/transactions",
		`{"amount":-1,"kind":"expense","category":"food","occurred_at":"2026-03-10T12:00:00Z"}`, true)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation")
}

func TestRouter_ListTransactions_Filters(t *testing.T) {
	tr := newTestRouter(t)

	tr.mocks.transactions.EXPECT().
		ListForOwner(gomock.Any(), testOwnerID, gomock.Any()).
		DoAndReturn(func(_ any, _ string, opts *model.TransactionsListOptions) ([]*model.Transaction, error) {
			require.NotNil(t, opts.Kind)
			assert.Equal(t, model.TransactionKindExpense, *opts.Kind)
			require.NotNil(t, opts.Category)
			assert.Equal(t, "food", *opts.Category)
			require.NotNil(t, opts.From)
			assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), opts.From.UTC())
			assert.Equal(t, 10, opts.Limit)
			assert.Equal(t, 20, opts.Offset)
			return nil, nil
		})

	rec := tr.do(t, http.MethodGet,
		"/api/transactions?kind=expense&category=food&from=2026-03-01&limit=10&offset=20", "", true)

	require.Equal(t, http.StatusOK, rec.Code)
	// An empty result renders as an empty array, not null.
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestRouter_ListTransactions_BadKind(t *testing.T) {
	tr := newTestRouter(t)

	rec := tr.do(t, http.MethodGet, "/api/transactions?kind=sideways", "", true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_query")
}

func TestRouter_UpdateTransaction_NotOwned(t *testing.T) {
	tr := newTestRouter(t)

	tr.mocks.transactions.EXPECT().
		Update(gomock.Any(), testTxID, testOwnerID, gomock.Any()).
		Return(nil, apperrors.NotFound("transaction not found"))

	rec := tr.do(t, http.MethodPut, "/api/transactions/"+testTxID, `{"amount":5}`, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_DeleteTransaction(t *testing.T) {
	tr := newTestRouter(t)

	tr.mocks.transactions.EXPECT().Delete(gomock.Any(), testTxID, testOwnerID).Return(true, nil)
	rec := tr.do(t, http.MethodDelete, "/api/transactions/"+testTxID, "", true)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	tr.mocks.transactions.EXPECT().Delete(gomock.Any(), testTxID, testOwnerID).Return(false, nil)
	rec = tr.do(t, http.MethodDelete, "/api/transactions/"+testTxID, "", true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_CreateBudget(t *testing.T) {
	tr := newTestRouter(t)

	tr.mocks.budgets.EXPECT().
		Create(gomock.Any(), testOwnerID, gomock.Any()).
		Return(&model.Budget{ID: testTxID, UserID: testOwnerID}, nil)

	rec := tr.do(t, http.MethodPost, "/api/budgets",
		`{"year":2026,"month":3,"category":"food","limit_amount":400}`, true)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRouter_ListBudgets_Filters(t *testing.T) {
	tr := newTestRouter(t)

	tr.mocks.budgets.EXPECT().
		ListForOwner(gomock.Any(), testOwnerID, gomock.Any()).
		DoAndReturn(func(_ any, _ string, opts *model.BudgetsListOptions) ([]*model.Budget, error) {
			require.NotNil(t, opts.Year)
			assert.Equal(t, 2026, *opts.Year)
			require.NotNil(t, opts.Month)
			assert.Equal(t, 3, *opts.Month)
			return []*model.Budget{{ID: testTxID}}, nil
		})

	rec := tr.do(t, http.MethodGet, "/api/budgets?year=2026&month=3", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), testTxID)
}

func TestRouter_MonthlyReport(t *testing.T) {
	tr := newTestRouter(t)

	tr.mocks.transactions.EXPECT().
		SumByKind(gomock.Any(), testOwnerID, gomock.Any()).
		Return([]model.KindTotal{{Kind: model.TransactionKindExpense, Total: 120}}, nil)
	tr.mocks.transactions.EXPECT().
		SumByCategory(gomock.Any(), testOwnerID, gomock.Any()).
		Return([]model.CategoryTotal{{Category: "food", Total: 120}}, nil)

	rec := tr.do(t, http.MethodGet, "/api/reports/monthly?year=2026&month=3", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"food"`)
}

func TestRouter_MonthlyReport_BadMonth(t *testing.T) {
	tr := newTestRouter(t)

	rec := tr.do(t, http.MethodGet, "/api/reports/monthly?year=2026&month=0", "", true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// Full journey: register, spend the issued token on a write, then verify a
// tampered token is rejected with the same body as every other rejection.
func TestRouter_RegisterCreateRejectScenario(t *testing.T) {
	tr := newTestRouter(t)

	tr.mocks.users.EXPECT().EmailExists(gomock.Any(), "bob@example.com").Return(false, nil)
	tr.mocks.users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&model.User{
		ID:    testOwnerID,
		Email: "bob@example.com",
	}, nil)

	rec := tr.do(t, http.MethodPost, "/api/auth/register",
		`{"email":"bob@example.com","password":"secret password"}`, false)
	require.Equal(t, http.StatusCreated, rec.Code)

	var issued tokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &issued))
	require.NotEmpty(t, issued.AccessToken)

	tr.mocks.transactions.EXPECT().
		Create(gomock.Any(), testOwnerID, gomock.Any()).
		Return(&model.Transaction{ID: testTxID, UserID: testOwnerID}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/transactions",
		strings.NewReader(`{"amount":12.50,"kind":"expense","category":"food","occurred_at":"2026-03-10T00:00:00Z"}`))
	req.Header.Set("Authorization", "Bearer "+issued.AccessToken)
	rec = httptest.NewRecorder()
	tr.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
	req.Header.Set("Authorization", "Bearer "+issued.AccessToken+"tampered")
	rec = httptest.NewRecorder()
	tr.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"unauthorized","message":"authentication required"}`, rec.Body.String())
}
