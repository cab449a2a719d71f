//go:build unit

package commands_test

import (
	"context"

	"accept-broker/internal/domain/transaction"
	"accept-broker/internal/infra/authnet"
	"accept-broker/internal/pkg/config"
	"accept-broker/internal/pkg/errs"
	"accept-broker/internal/usecase/commands"

	"go.uber.org/mock/gomock"
)

const testSignatureKey = "test-signature-key"

func signedWebhook(body string) commands.WebhookInput {
	return commands.WebhookInput{Body: []byte(body), Signature: authnet.Sign(testSignatureKey, []byte(body))}
}

const authCaptureBody = `{
	"notificationId": "d0e8e7fe-c3e7-4add-a480-27bc5ce28a1d",
	"eventType": "net.authorize.payment.authcapture.created",
	"eventDate": "2025-03-01T12:00:00.000Z",
	"webhookId": "63d6fea2-aa13-4b1d-a204-f5fbc15942b7",
	"payload": {
		"responseCode": 1,
		"authCode": "ABC123",
		"avsResponse": "Y",
		"authAmount": 25.00,
		"merchantReferenceId": "ref-1",
		"entityName": "transaction",
		"id": "60012345678"
	}
}`

// ================================================================================
// HandleWebhook
// ================================================================================

func (s *ReconcileUseCaseTestSuite) TestHandleWebhook() {
	s.Run("支払いイベント: 監査記録して相関を消費", func() {
		s.SetupTest()
		s.expectWithin(1)
		s.events.EXPECT().TryInsert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, ev *transaction.WebhookEvent) (bool, error) {
				s.Equal("d0e8e7fe-c3e7-4add-a480-27bc5ce28a1d", ev.NotificationID())
				return true, nil
			})
		s.txns.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, txn *transaction.Transaction) (bool, error) {
				s.Equal("60012345678", txn.TransactionID())
				s.Equal("ref-1", txn.ReferenceID())
				s.Equal("25.00", txn.Amount().String())
				s.Equal(transaction.StatusApproved, txn.Status())
				s.Equal(transaction.SourceWebhook, txn.Source())
				return true, nil
			})
		s.store.EXPECT().MarkUsed(gomock.Any(), "ref-1", baseTime).Return(true, nil)

		got, err := s.sut.HandleWebhook(s.ctx, signedWebhook(authCaptureBody))
		s.Require().NoError(err)
		s.True(got.Processed)
		s.False(got.Duplicate)
		s.Equal("net.authorize.payment.authcapture.created", got.EventType)
	})

	s.Run("再送は重複として確認応答のみ", func() {
		s.SetupTest()
		s.expectWithin(1)
		s.events.EXPECT().TryInsert(gomock.Any(), gomock.Any()).Return(false, nil)

		got, err := s.sut.HandleWebhook(s.ctx, signedWebhook(authCaptureBody))
		s.Require().NoError(err)
		s.True(got.Processed)
		s.True(got.Duplicate)
	})

	s.Run("不正な署名: 何も書かない", func() {
		s.SetupTest()
		in := signedWebhook(authCaptureBody)
		in.Signature = authnet.Sign("wrong-key", in.Body)

		got, err := s.sut.HandleWebhook(s.ctx, in)
		s.Nil(got)
		s.True(errs.Is(err, errs.ErrSignatureVerificationFailed), "got %v", err)
	})

	s.Run("署名ヘッダなし", func() {
		s.SetupTest()
		got, err := s.sut.HandleWebhook(s.ctx, commands.WebhookInput{Body: []byte(authCaptureBody)})
		s.Nil(got)
		s.True(errs.Is(err, errs.ErrSignatureVerificationFailed), "got %v", err)
	})

	s.Run("未知のイベントはprocessed:true", func() {
		s.SetupTest()
		s.expectWithin(1)
		s.events.EXPECT().TryInsert(gomock.Any(), gomock.Any()).Return(true, nil)

		body := `{"notificationId":"n-2","eventType":"net.authorize.customer.subscription.created","payload":{"id":"123"}}`
		got, err := s.sut.HandleWebhook(s.ctx, signedWebhook(body))
		s.Require().NoError(err)
		s.True(got.Processed)
		s.False(got.Duplicate)
	})

	s.Run("顧客削除イベントはローカルキャッシュを消す", func() {
		s.SetupTest()
		s.expectWithin(1)
		s.events.EXPECT().TryInsert(gomock.Any(), gomock.Any()).Return(true, nil)
		s.profiles.EXPECT().DeleteByGatewayID(gomock.Any(), "500012345").Return(true, nil)

		body := `{"notificationId":"n-3","eventType":"net.authorize.customer.deleted","payload":{"entityName":"customerProfile","id":"500012345"}}`
		got, err := s.sut.HandleWebhook(s.ctx, signedWebhook(body))
		s.Require().NoError(err)
		s.True(got.Processed)
	})

	s.Run("不正検知の拒否はdeclined", func() {
		s.SetupTest()
		s.expectWithin(1)
		s.events.EXPECT().TryInsert(gomock.Any(), gomock.Any()).Return(true, nil)
		s.txns.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, txn *transaction.Transaction) (bool, error) {
				s.Equal(transaction.StatusDeclined, txn.Status())
				return true, nil
			})

		body := `{"notificationId":"n-4","eventType":"net.authorize.payment.fraud.declined","payload":{"responseCode":4,"id":"60012345679"}}`
		_, err := s.sut.HandleWebhook(s.ctx, signedWebhook(body))
		s.Require().NoError(err)
	})

	s.Run("JSON不正は検証エラー", func() {
		s.SetupTest()
		_, err := s.sut.HandleWebhook(s.ctx, signedWebhook(`{"notificationId":`))
		s.True(errs.Is(err, errs.ErrValidation), "got %v", err)
	})

	s.Run("通知IDなしは検証エラー", func() {
		s.SetupTest()
		_, err := s.sut.HandleWebhook(s.ctx, signedWebhook(`{"eventType":"net.authorize.payment.void.created"}`))
		s.True(errs.Is(err, errs.ErrValidation), "got %v", err)
	})

	s.Run("保存失敗はエラー", func() {
		s.SetupTest()
		s.expectWithin(1)
		s.events.EXPECT().TryInsert(gomock.Any(), gomock.Any()).Return(false, errs.ErrDatabaseOperationFailed)

		_, err := s.sut.HandleWebhook(s.ctx, signedWebhook(authCaptureBody))
		s.ErrorIs(err, errs.ErrDatabaseOperationFailed)
	})

	s.Run("署名鍵未設定なら検証せずに処理", func() {
		s.SetupTest()
		cfg := config.NewTestConfig().AuthorizeNet
		cfg.SignatureKey = ""
		sut := s.newReconciler(cfg)
		s.expectWithin(1)
		s.events.EXPECT().TryInsert(gomock.Any(), gomock.Any()).Return(true, nil)

		body := `{"notificationId":"n-5","eventType":"net.authorize.payment.void.created","payload":{}}`
		got, err := sut.HandleWebhook(s.ctx, commands.WebhookInput{Body: []byte(body)})
		s.Require().NoError(err)
		s.True(got.Processed)
	})
}
