//go:build unit

package commands_test

import (
	"context"

	"accept-broker/internal/domain/customer"
	"accept-broker/internal/infra/authnet"
	"accept-broker/internal/pkg/errs"
	"accept-broker/internal/usecase/commands"

	"go.uber.org/mock/gomock"
)

// ================================================================================
// CreateCustomerProfile
// ================================================================================

func (s *BrokerUseCaseTestSuite) TestCreateCustomerProfile() {
	s.Run("新規作成: ローカルキャッシュに保存", func() {
		s.SetupTest()
		s.gateway.EXPECT().Send(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req authnet.GatewayRequest) (*authnet.NormalizedResponse, error) {
				body := payloadOf(s.T(), req)
				s.Equal("jane@example.com", dig(body, "profile", "email"))
				s.Equal("Jane Doe", dig(body, "profile", "description"))
				s.Len(dig(body, "profile", "merchantCustomerId"), 20)
				return &authnet.NormalizedResponse{ResultCode: authnet.ResultOk, CustomerProfileID: "500012345"}, nil
			})
		s.expectWithin(1)
		s.profiles.EXPECT().Upsert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p *customer.Profile) error {
				s.Equal("500012345", p.GatewayProfileID())
				s.Equal("jane@example.com", p.Email().Value())
				s.Equal("98004", p.Address().Zip)
				return nil
			})

		got, err := s.sut.CreateCustomerProfile(s.ctx, *newCustomerInput())
		s.Require().NoError(err)
		s.Equal("500012345", got.CustomerProfileID)
		s.False(got.Existing)
	})

	s.Run("E00039: 既存プロファイルIDを再利用", func() {
		s.SetupTest()
		gerr := &authnet.GatewayError{
			Operation: "createCustomerProfileRequest",
			Code:      "E00039",
			Text:      "A duplicate record with ID 500012345 already exists.",
			Exchange:  authnet.Exchange{Response: []byte(`{"messages":{}}`)},
		}
		s.gateway.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil, gerr)
		s.expectWithin(1)
		s.profiles.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)

		got, err := s.sut.CreateCustomerProfile(s.ctx, *newCustomerInput())
		s.Require().NoError(err)
		s.Equal("500012345", got.CustomerProfileID)
		s.True(got.Existing)
		s.NotEmpty(got.Exchange.Response)
	})

	s.Run("その他のゲートウェイエラーは保存しない", func() {
		s.SetupTest()
		gerr := &authnet.GatewayError{Operation: "createCustomerProfileRequest", Code: "E00003", Text: "An error occurred during parsing of the request."}
		s.gateway.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil, gerr)

		_, err := s.sut.CreateCustomerProfile(s.ctx, *newCustomerInput())
		s.ErrorIs(err, errs.ErrGateway)
	})

	s.Run("ローカル保存の失敗はエラー", func() {
		s.SetupTest()
		s.gateway.EXPECT().Send(gomock.Any(), gomock.Any()).
			Return(&authnet.NormalizedResponse{ResultCode: authnet.ResultOk, CustomerProfileID: "500012345"}, nil)
		s.expectWithin(1)
		s.profiles.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(errs.ErrDatabaseOperationFailed)

		_, err := s.sut.CreateCustomerProfile(s.ctx, *newCustomerInput())
		s.ErrorIs(err, errs.ErrDatabaseOperationFailed)
	})

	s.Run("メール不正", func() {
		s.SetupTest()
		_, err := s.sut.CreateCustomerProfile(s.ctx, commands.CustomerInput{Email: "not-an-email"})
		s.True(errs.Is(err, errs.ErrValidation), "got %v", err)
	})
}
