//go:build unit

package commands_test

import (
	"context"

	"accept-broker/internal/domain/transaction"
	"accept-broker/internal/infra/authnet"
	"accept-broker/internal/pkg/errs"
	"accept-broker/internal/usecase/commands"

	"go.uber.org/mock/gomock"
)

func approvedTransaction(transID string) *authnet.NormalizedResponse {
	return &authnet.NormalizedResponse{
		ResultCode: authnet.ResultOk,
		TransactionResponse: &authnet.TransactionResponse{
			ResponseCode:  "1",
			AuthCode:      "ABC123",
			TransID:       transID,
			AccountNumber: "XXXX1111",
			AccountType:   "Visa",
			Messages:      authnet.List[authnet.TransactionMessage]{{Code: "1", Description: "This transaction has been approved."}},
		},
		Raw: []byte(`{"transactionResponse":{"transId":"` + transID + `"}}`),
	}
}

// ================================================================================
// ChargeCustomerProfile
// ================================================================================

func (s *BrokerUseCaseTestSuite) TestChargeCustomerProfile() {
	s.Run("保存済みプロファイルへの課金と監査記録", func() {
		s.SetupTest()
		s.gateway.EXPECT().Send(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req authnet.GatewayRequest) (*authnet.NormalizedResponse, error) {
				body := payloadOf(s.T(), req)
				s.Equal("500012345", dig(body, "transactionRequest", "profile", "customerProfileId"))
				s.Equal("999", dig(body, "transactionRequest", "profile", "paymentProfile", "paymentProfileId"))
				s.Equal("25.00", dig(body, "transactionRequest", "amount"))
				return approvedTransaction("60012345678"), nil
			})
		s.expectWithin(1)
		s.txns.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, txn *transaction.Transaction) (bool, error) {
				s.Equal("60012345678", txn.TransactionID())
				s.Equal(transaction.SourceDirect, txn.Source())
				s.Equal(transaction.StatusApproved, txn.Status())
				s.Equal("ref-1", txn.ReferenceID())
				s.Equal("999", txn.CustomerPaymentProfileID())
				return true, nil
			})

		got, err := s.sut.ChargeCustomerProfile(s.ctx, commands.ChargeProfileInput{
			CustomerProfileID:        "500012345",
			CustomerPaymentProfileID: "999",
			Amount:                   "25.00",
		})
		s.Require().NoError(err)
		s.Equal("60012345678", got.TransactionID)
		s.Equal("ABC123", got.AuthCode)
		s.Equal("This transaction has been approved.", got.Message)
		s.Equal("25.00", got.Amount.String())
	})

	s.Run("支払いプロファイル省略時は既定のものを使う", func() {
		s.SetupTest()
		gomock.InOrder(
			s.gateway.EXPECT().Send(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, req authnet.GatewayRequest) (*authnet.NormalizedResponse, error) {
					s.Equal("getCustomerProfileRequest", req.Operation)
					return &authnet.NormalizedResponse{
						ResultCode: authnet.ResultOk,
						Profile: &authnet.ProfileResponse{
							CustomerProfileID: "500012345",
							PaymentProfiles: authnet.List[authnet.PaymentProfile]{
								{CustomerPaymentProfileID: "998"},
								{CustomerPaymentProfileID: "999", DefaultPaymentProfile: true},
							},
						},
					}, nil
				}),
			s.gateway.EXPECT().Send(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, req authnet.GatewayRequest) (*authnet.NormalizedResponse, error) {
					body := payloadOf(s.T(), req)
					s.Equal("999", dig(body, "transactionRequest", "profile", "paymentProfile", "paymentProfileId"))
					return approvedTransaction("60012345679"), nil
				}),
		)
		s.expectWithin(1)
		s.txns.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(true, nil)

		got, err := s.sut.ChargeCustomerProfile(s.ctx, commands.ChargeProfileInput{CustomerProfileID: "500012345", Amount: "5"})
		s.Require().NoError(err)
		s.Equal("999", got.CustomerPaymentProfileID)
	})

	s.Run("支払いプロファイルがない", func() {
		s.SetupTest()
		s.gateway.EXPECT().Send(gomock.Any(), gomock.Any()).
			Return(&authnet.NormalizedResponse{ResultCode: authnet.ResultOk, Profile: &authnet.ProfileResponse{CustomerProfileID: "500012345"}}, nil)

		_, err := s.sut.ChargeCustomerProfile(s.ctx, commands.ChargeProfileInput{CustomerProfileID: "500012345", Amount: "5"})
		s.True(errs.Is(err, errs.ErrValidation), "got %v", err)
	})

	s.Run("拒否でも取引IDがあれば監査記録する", func() {
		s.SetupTest()
		declined := &authnet.NormalizedResponse{
			ResultCode: authnet.ResultOk,
			TransactionResponse: &authnet.TransactionResponse{
				ResponseCode: "2",
				TransID:      "60012345680",
				Errors:       authnet.List[authnet.TransactionError]{{ErrorCode: "2", ErrorText: "This transaction has been declined."}},
			},
		}
		gerr := &authnet.GatewayError{Operation: "createTransactionRequest", Code: "2", Text: "This transaction has been declined.", Response: declined}
		s.gateway.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil, gerr)
		s.expectWithin(1)
		s.txns.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, txn *transaction.Transaction) (bool, error) {
				s.Equal(transaction.StatusDeclined, txn.Status())
				return true, nil
			})

		_, err := s.sut.ChargeCustomerProfile(s.ctx, commands.ChargeProfileInput{
			CustomerProfileID:        "500012345",
			CustomerPaymentProfileID: "999",
			Amount:                   "25.00",
		})
		s.ErrorIs(err, errs.ErrGateway)
	})

	s.Run("監査記録の失敗は課金を失敗にしない", func() {
		s.SetupTest()
		s.gateway.EXPECT().Send(gomock.Any(), gomock.Any()).Return(approvedTransaction("60012345681"), nil)
		s.uow.EXPECT().Within(gomock.Any(), gomock.Any()).Return(errs.ErrDatabaseOperationFailed)

		got, err := s.sut.ChargeCustomerProfile(s.ctx, commands.ChargeProfileInput{
			CustomerProfileID:        "500012345",
			CustomerPaymentProfileID: "999",
			Amount:                   "25.00",
		})
		s.Require().NoError(err)
		s.Equal("60012345681", got.TransactionID)
	})

	s.Run("入力検証", func() {
		cases := []struct {
			name string
			in   commands.ChargeProfileInput
		}{
			{name: "プロファイルIDなし", in: commands.ChargeProfileInput{Amount: "5"}},
			{name: "金額なし", in: commands.ChargeProfileInput{CustomerProfileID: "500012345"}},
			{name: "金額小数3桁", in: commands.ChargeProfileInput{CustomerProfileID: "500012345", Amount: "1.005"}},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.SetupTest()
				_, err := s.sut.ChargeCustomerProfile(s.ctx, tc.in)
				s.True(errs.Is(err, errs.ErrValidation), "got %v", err)
			})
		}
	})
}

// ================================================================================
// ProcessPayment
// ================================================================================

func (s *BrokerUseCaseTestSuite) TestProcessPayment() {
	s.Run("Accept.jsトークンで決済", func() {
		s.SetupTest()
		s.gateway.EXPECT().Send(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req authnet.GatewayRequest) (*authnet.NormalizedResponse, error) {
				body := payloadOf(s.T(), req)
				s.Equal("nonce-value", dig(body, "transactionRequest", "payment", "opaqueData", "dataValue"))
				s.Equal("jane@example.com", dig(body, "transactionRequest", "customer", "email"))
				return approvedTransaction("60012345682"), nil
			})
		s.expectWithin(1)
		s.txns.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(true, nil)

		got, err := s.sut.ProcessPayment(s.ctx, commands.OpaquePaymentInput{
			DataDescriptor: "COMMON.ACCEPT.INAPP.PAYMENT",
			DataValue:      "nonce-value",
			Amount:         "12.34",
			Customer:       newCustomerInput(),
		})
		s.Require().NoError(err)
		s.Equal("60012345682", got.TransactionID)
		s.Equal("ref-1", got.ReferenceID)
	})

	s.Run("トークンなし", func() {
		s.SetupTest()
		_, err := s.sut.ProcessPayment(s.ctx, commands.OpaquePaymentInput{Amount: "12.34"})
		s.True(errs.Is(err, errs.ErrValidation), "got %v", err)
	})
}
