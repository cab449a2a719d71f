//go:build unit

package api_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"accept-broker/internal/domain/payment"
	"accept-broker/internal/handler/api"
	resdto "accept-broker/internal/handler/dto/response"
	"accept-broker/internal/handler/httperr"
	"accept-broker/internal/handler/validation"
	"accept-broker/internal/infra/authnet"
	"accept-broker/internal/pkg/errs"
	"accept-broker/internal/usecase/commands"
	"accept-broker/tests/common/builder"
	"accept-broker/tests/common/httptest"
	"accept-broker/tests/common/testutil"
	commandsmock "accept-broker/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type HostedHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBrokerCommands
	handler      *api.HostedHandler
}

func (s *HostedHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.Require().NoError(validation.Register())
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBrokerCommands(s.mockCtrl)
	s.handler = api.NewHostedHandler(s.mockCommands)

	s.router.POST("/accept-hosted-token", s.handler.AcceptHostedToken)
	s.router.POST("/get-hosted-profile-token", s.handler.HostedProfileToken)
}

func (s *HostedHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestHostedHandlerSuite(t *testing.T) {
	suite.Run(t, new(HostedHandlerTestSuite))
}

type testCaseBroker struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

func hostedResult() *commands.HostedTokenResult {
	return &commands.HostedTokenResult{
		Token:       "hosted-token",
		GatewayURL:  "https://test.authorize.net/payment/payment",
		ReferenceID: "ref-1",
		DisplayMode: payment.DisplayRedirect,
	}
}

// ================================================================================
// TestAcceptHostedToken
// ================================================================================

func (s *HostedHandlerTestSuite) TestAcceptHostedToken() {
	url := "/accept-hosted-token"
	reqBody := builder.NewHostedBuilder().BuildRequestDTO()

	bound := []testCaseBroker{
		{name: "amount with two decimals OK", mutate: testutil.Field("amount", "0.01"), expectCode: http.StatusOK},
		{name: "amount zero invalid", mutate: testutil.Field("amount", "0"), expectCode: http.StatusBadRequest},
		{name: "amount with three decimals invalid", mutate: testutil.Field("amount", "1.005"), expectCode: http.StatusBadRequest},
		{name: "amount negative invalid", mutate: testutil.Field("amount", -5), expectCode: http.StatusBadRequest},
		{name: "firstName length OK (50 chars)", mutate: testutil.Field("customerInfo.firstName", strings.Repeat("a", 50)), expectCode: http.StatusOK},
		{name: "firstName length invalid (51 chars)", mutate: testutil.Field("customerInfo.firstName", strings.Repeat("a", 51)), expectCode: http.StatusBadRequest},
	}

	missing := []testCaseBroker{
		{name: "missing field: amount (required)", mutate: testutil.Field("amount", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: customerInfo without existingCustomerEmail", mutate: testutil.Field("customerInfo", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: customerInfo.email (required)", mutate: testutil.Field("customerInfo.email", nil), expectCode: http.StatusBadRequest},
		{name: "customerInfo may be omitted for a returning customer", mutate: func(m map[string]any) {
			delete(m, "customerInfo")
			m["existingCustomerEmail"] = "jane@example.com"
		}, expectCode: http.StatusOK},
	}

	format := []testCaseBroker{
		{name: "customerInfo.email malformed", mutate: testutil.Field("customerInfo.email", "not-an-email"), expectCode: http.StatusBadRequest},
		{name: "existingCustomerEmail malformed", mutate: testutil.Field("existingCustomerEmail", "jane"), expectCode: http.StatusBadRequest},
		{name: "returnUrl not absolute is left to the page builder", mutate: testutil.Field("returnUrl", "shop/return"), expectCode: http.StatusOK},
		{name: "cancelUrl with another scheme is left to the page builder", mutate: testutil.Field("cancelUrl", "ftp://shop.example.com/cart"), expectCode: http.StatusOK},
		{name: "iframeCommunicatorUrl not absolute", mutate: testutil.Field("iframeCommunicatorUrl", "/communicator.html"), expectCode: http.StatusBadRequest},
		{name: "displayMode unknown", mutate: testutil.Field("displayMode", "popup"), expectCode: http.StatusBadRequest},
		{name: "displayMode lightbox OK", mutate: testutil.Field("displayMode", "lightbox"), expectCode: http.StatusOK},
		{name: "amount not a number", mutate: testutil.Field("amount", "abc"), expectCode: http.StatusBadRequest},
	}

	allValidationTestCases := [][]testCaseBroker{bound, missing, format}

	s.Run("success: returns token and reference id", func() {
		s.mockCommands.EXPECT().IssueHostedPaymentToken(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, in commands.HostedPaymentInput) (*commands.HostedTokenResult, error) {
				s.Equal("25", in.Amount)
				s.Require().NotNil(in.Customer)
				s.Equal("jane@example.com", in.Customer.Email)
				s.Equal("https://shop.example.com/return", in.ReturnURL)
				return hostedResult(), nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, testutil.DtoMap(s.T(), reqBody))

		var body resdto.HostedTokenResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Success)
		s.Equal("hosted-token", body.Token)
		s.Equal("ref-1", body.ReferenceID)
		s.Equal("redirect", body.DisplayMode)
		s.Nil(body.Debug)
	})

	s.Run("success: debug echoes the redacted exchange", func() {
		result := hostedResult()
		result.Exchange = authnet.Exchange{
			Request:  json.RawMessage(`{"getHostedPaymentPageRequest":{"merchantAuthentication":{"name":"[REDACTED]","transactionKey":"[REDACTED]"}}}`),
			Response: json.RawMessage(`{"token":"hosted-token"}`),
		}
		s.mockCommands.EXPECT().IssueHostedPaymentToken(gomock.Any(), gomock.Any()).Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			testutil.DtoMap(s.T(), reqBody, testutil.Field("debug", true)))

		var body resdto.HostedTokenResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().NotNil(body.Debug)
		s.Contains(string(body.Debug.Request), "[REDACTED]")
		s.NotContains(rec.Body.String(), "test-transaction-key")
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		for _, testCaseGroup := range allValidationTestCases {
			for _, tc := range testCaseGroup {
				s.Run(tc.name, func() {
					requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)

					if tc.expectCode == http.StatusOK {
						s.mockCommands.EXPECT().IssueHostedPaymentToken(gomock.Any(), gomock.Any()).
							Return(hostedResult(), nil).Times(1)
					}
					rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap)

					if tc.expectCode == http.StatusOK {
						httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
						return
					}
					httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, httperr.CodeValidation, "Invalid request")
				})
			}
		}
	})

	s.Run("error: field details name the offending field", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			testutil.DtoMap(s.T(), reqBody, testutil.Field("displayMode", "popup")))

		body := httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, httperr.CodeValidation, "Invalid request")
		s.Contains(body.Details, "DisplayMode")
	})

	s.Run("error: 400 on malformed JSON", func() {
		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, url, []byte(`{"amount":`),
			map[string]string{"Content-Type": "application/json"})

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, httperr.CodeValidation, "Invalid request")
	})

	s.Run("error: use-case failures map to status codes", func() {
		cases := []struct {
			name       string
			err        error
			expectCode int
			code       string
			msg        string
		}{
			{
				name:       "unknown returning customer is 404",
				err:        errs.Mark(errs.New("no profile for email"), errs.ErrCustomerNotFound),
				expectCode: http.StatusNotFound,
				code:       httperr.CodeCustomerNotFound,
				msg:        "Customer not found",
			},
			{
				name:       "use-case validation is 400 with its message",
				err:        errs.Validation("iframeCommunicatorUrl is required for embedded display modes"),
				expectCode: http.StatusBadRequest,
				code:       httperr.CodeValidation,
				msg:        "iframeCommunicatorUrl is required",
			},
			{
				name:       "gateway rejection is 400 with provider text",
				err:        &authnet.GatewayError{Operation: "getHostedPaymentPageRequest", Code: "E00007", Text: "User authentication failed due to invalid authentication values."},
				expectCode: http.StatusBadRequest,
				code:       httperr.CodeGateway,
				msg:        "User authentication failed",
			},
			{
				name:       "missing credentials is 500",
				err:        errs.ErrCredentialsNotConfigured,
				expectCode: http.StatusInternalServerError,
				code:       httperr.CodeCredentials,
				msg:        "not configured",
			},
			{
				name:       "anything else is 500",
				err:        errs.New("boom"),
				expectCode: http.StatusInternalServerError,
				code:       httperr.CodeInternal,
				msg:        "Internal server error",
			},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().IssueHostedPaymentToken(gomock.Any(), gomock.Any()).Return(nil, tc.err).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, testutil.DtoMap(s.T(), reqBody))

				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.code, tc.msg)
			})
		}
	})

	s.Run("error: gateway error carries gatewayCode and debug exchange", func() {
		gerr := &authnet.GatewayError{
			Operation: "getHostedPaymentPageRequest",
			Code:      "E00027",
			Text:      "The transaction was unsuccessful.",
			Exchange:  authnet.Exchange{Response: json.RawMessage(`{"messages":{"resultCode":"Error"}}`)},
		}
		s.mockCommands.EXPECT().IssueHostedPaymentToken(gomock.Any(), gomock.Any()).Return(nil, gerr).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			testutil.DtoMap(s.T(), reqBody, testutil.Field("debug", true)))

		body := httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, httperr.CodeGateway, "unsuccessful")
		s.Equal("E00027", body.Details["gatewayCode"])
		s.Require().NotNil(body.Debug)
		s.Contains(body.Debug, "response")
	})
}

// ================================================================================
// TestHostedProfileToken
// ================================================================================

func (s *HostedHandlerTestSuite) TestHostedProfileToken() {
	url := "/get-hosted-profile-token"
	reqBody := map[string]any{
		"customerProfileId": "500012345",
		"pageType":          "editPayment",
		"paymentProfileId":  "999",
		"returnUrl":         "https://shop.example.com/account",
	}

	s.Run("success: returns token for the requested page", func() {
		s.mockCommands.EXPECT().IssueHostedProfileToken(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, in commands.HostedProfileInput) (*commands.HostedTokenResult, error) {
				s.Equal("500012345", in.CustomerProfileID)
				s.Equal("editPayment", in.PageType)
				s.Equal("999", in.PaymentProfileID)
				return &commands.HostedTokenResult{
					Token:             "profile-token",
					GatewayURL:        "https://test.authorize.net/customer/editPayment",
					DisplayMode:       payment.DisplayRedirect,
					PageType:          payment.PageEditPayment,
					CustomerProfileID: in.CustomerProfileID,
					PaymentProfileID:  in.PaymentProfileID,
				}, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)

		var body resdto.HostedTokenResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("profile-token", body.Token)
		s.Equal("editPayment", body.PageType)
		s.Equal("https://test.authorize.net/customer/editPayment", body.GatewayURL)
	})

	cases := []testCaseBroker{
		{name: "missing field: customerProfileId (required)", mutate: testutil.Field("customerProfileId", nil), expectCode: http.StatusBadRequest},
		{name: "pageType unknown", mutate: testutil.Field("pageType", "deletePayment"), expectCode: http.StatusBadRequest},
		{name: "iframeCommunicatorUrl not absolute", mutate: testutil.Field("iframeCommunicatorUrl", "communicator.html"), expectCode: http.StatusBadRequest},
	}
	for _, tc := range cases {
		s.Run("error: "+tc.name, func() {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, testutil.DtoMap(s.T(), reqBody, tc.mutate))

			httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, httperr.CodeValidation, "Invalid request")
		})
	}

	s.Run("success: relative returnUrl is passed through", func() {
		s.mockCommands.EXPECT().IssueHostedProfileToken(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, in commands.HostedProfileInput) (*commands.HostedTokenResult, error) {
				s.Equal("/account", in.ReturnURL)
				return &commands.HostedTokenResult{Token: "profile-token", PageType: payment.PageEditPayment}, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			testutil.DtoMap(s.T(), reqBody, testutil.Field("returnUrl", "/account")))

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: page needing an ID without one is 400", func() {
		s.mockCommands.EXPECT().IssueHostedProfileToken(gomock.Any(), gomock.Any()).
			Return(nil, errs.Validation("paymentProfileId is required for editPayment")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			testutil.DtoMap(s.T(), reqBody, testutil.Field("paymentProfileId", nil)))

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, httperr.CodeValidation, "paymentProfileId is required")
	})
}
