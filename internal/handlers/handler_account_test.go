package handlers_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/bookkeeping_core/internal/apperrors"
	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
	portssvc "github.com/SscSPs/bookkeeping_core/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_core/internal/dto"
	"github.com/SscSPs/bookkeeping_core/internal/handlers"
	"github.com/SscSPs/bookkeeping_core/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// HandlerTestSuite drives the full route table against mocked services.
type HandlerTestSuite struct {
	suite.Suite
	router               *gin.Engine
	mockAccountService   *MockAccountService
	mockJournalService   *MockJournalService
	mockLedgerService    *MockLedgerService
	mockReportingService *MockReportingService
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	suite.mockAccountService = new(MockAccountService)
	suite.mockJournalService = new(MockJournalService)
	suite.mockLedgerService = new(MockLedgerService)
	suite.mockReportingService = new(MockReportingService)

	cfg := &config.Config{IsProduction: true, DefaultActor: "system"}
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Account:   suite.mockAccountService,
		Journal:   suite.mockJournalService,
		Ledger:    suite.mockLedgerService,
		Reporting: suite.mockReportingService,
	})
}

func (suite *HandlerTestSuite) TearDownTest() {
	suite.mockAccountService.AssertExpectations(suite.T())
	suite.mockJournalService.AssertExpectations(suite.T())
	suite.mockLedgerService.AssertExpectations(suite.T())
	suite.mockReportingService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) do(method, url, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, url, nil)
	} else {
		req = httptest.NewRequest(method, url, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) errorBody(w *httptest.ResponseRecorder) string {
	var body map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func sampleAccount(code string, accountType domain.AccountType) *domain.Account {
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	return &domain.Account{
		AccountID:   uuid.NewString(),
		Code:        code,
		Name:        "Cash",
		AccountType: accountType,
		Level:       1,
		IsActive:    true,
		Balance:     decimal.NewFromInt(250),
		DebitTotal:  decimal.NewFromInt(300),
		CreditTotal: decimal.NewFromInt(50),
		AuditFields: domain.AuditFields{CreatedAt: now, CreatedBy: "alice", LastUpdatedAt: now, LastUpdatedBy: "alice"},
	}
}

// --- Test Cases ---

func (suite *HandlerTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", "", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlerTestSuite) TestCreateAccount_Success() {
	account := sampleAccount("1010", domain.Asset)
	expectedReq := dto.CreateAccountRequest{Code: "1010", Name: "Cash", AccountType: domain.Asset}
	suite.mockAccountService.On("CreateAccount", mock.Anything, expectedReq, "alice").Return(account, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts",
		`{"code":"1010","name":"Cash","accountType":"ASSET"}`,
		map[string]string{"X-User-ID": "alice"})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(account.AccountID, resp.AccountID)
	suite.Equal(domain.DebitSide, resp.NormalSide)
	suite.True(decimal.NewFromInt(250).Equal(resp.Balance))
}

func (suite *HandlerTestSuite) TestCreateAccount_DefaultActor() {
	account := sampleAccount("2000", domain.Liability)
	suite.mockAccountService.On("CreateAccount", mock.Anything, mock.Anything, "system").Return(account, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", `{"code":"2000","name":"Payables","accountType":"LIABILITY"}`, nil)

	suite.Equal(http.StatusCreated, w.Code)
}

func (suite *HandlerTestSuite) TestCreateAccount_InvalidBody() {
	w := suite.do(http.MethodPost, "/api/v1/accounts", `{"name":"Cash"}`, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateAccount_DuplicateCode() {
	suite.mockAccountService.On("CreateAccount", mock.Anything, mock.Anything, "system").
		Return(nil, fmt.Errorf("create: %w", apperrors.ErrDuplicateCode)).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", `{"code":"1010","name":"Cash","accountType":"ASSET"}`, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(suite.errorBody(w), "account code already exists")
}

func (suite *HandlerTestSuite) TestGetAccount() {
	tests := []struct {
		name       string
		result     *domain.Account
		err        error
		wantStatus int
	}{
		{"found", sampleAccount("1010", domain.Asset), nil, http.StatusOK},
		{"not found", nil, apperrors.ErrNotFound, http.StatusNotFound},
		{"storage fault", nil, apperrors.NewAppError(500, "query failed", errors.New("conn reset")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.SetupTest()
			suite.mockAccountService.On("GetAccountByID", mock.Anything, "acc-1").Return(tt.result, tt.err).Once()

			w := suite.do(http.MethodGet, "/api/v1/accounts/acc-1", "", nil)

			suite.Equal(tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusInternalServerError {
				suite.Equal("Failed to retrieve account", suite.errorBody(w))
			}
			suite.mockAccountService.AssertExpectations(suite.T())
		})
	}
}

func (suite *HandlerTestSuite) TestListAccounts_PassesFilter() {
	accounts := []domain.Account{*sampleAccount("1010", domain.Asset), *sampleAccount("1020", domain.Asset)}
	filter := domain.AccountFilter{AccountType: domain.Asset, ActiveOnly: true}
	suite.mockAccountService.On("ListAccounts", mock.Anything, filter).Return(accounts, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts?accountType=ASSET&activeOnly=true", "", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListAccountsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Accounts, 2)
	suite.Equal("1020", resp.Accounts[1].Code)
}

func (suite *HandlerTestSuite) TestUpdateAccount_CodeLockedByActivity() {
	suite.mockAccountService.On("UpdateAccount", mock.Anything, "acc-1",
		mock.MatchedBy(func(req dto.UpdateAccountRequest) bool {
			return req.Code != nil && *req.Code == "1999"
		}), "bob").
		Return(nil, fmt.Errorf("%w: code cannot change", apperrors.ErrHasActivity)).Once()

	w := suite.do(http.MethodPut, "/api/v1/accounts/acc-1", `{"code":"1999"}`, map[string]string{"X-User-ID": "bob"})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteAccount() {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"deleted", nil, http.StatusNoContent},
		{"has activity", apperrors.ErrHasActivity, http.StatusConflict},
		{"has children", apperrors.ErrHasChildren, http.StatusConflict},
		{"not found", apperrors.ErrNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.SetupTest()
			suite.mockAccountService.On("DeleteAccount", mock.Anything, "acc-1").Return(tt.err).Once()

			w := suite.do(http.MethodDelete, "/api/v1/accounts/acc-1", "", nil)

			suite.Equal(tt.wantStatus, w.Code)
			suite.mockAccountService.AssertExpectations(suite.T())
		})
	}
}

// --- Run Test Suite ---
func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
