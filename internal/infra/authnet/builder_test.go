//go:build unit

package authnet

import (
	"encoding/json"
	"testing"

	"accept-broker/internal/domain/customer"
	"accept-broker/internal/domain/payment"
	"accept-broker/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCreds = Credentials{APILoginID: "login-id", TransactionKey: "txn-key"}

func mustMoney(t *testing.T, s string) payment.Money {
	t.Helper()
	m, err := payment.NewPositiveMoney(s)
	require.NoError(t, err)
	return m
}

func settingValue(t *testing.T, s Settings, name string) (string, bool) {
	t.Helper()
	for _, st := range s.Setting {
		if st.SettingName == name {
			return st.SettingValue, true
		}
	}
	return "", false
}

func returnOptionsOf(t *testing.T, s Settings) returnOptions {
	t.Helper()
	raw, ok := settingValue(t, s, "hostedPaymentReturnOptions")
	require.True(t, ok, "hostedPaymentReturnOptions missing")
	var opts returnOptions
	require.NoError(t, json.Unmarshal([]byte(raw), &opts))
	return opts
}

func TestBuildHostedPaymentRequest(t *testing.T) {
	b := NewBuilder(testCreds, Sandbox, "")
	info, err := customer.NewInfo("jane@example.com", customer.Address{FirstName: "Jane", LastName: "Doe", Zip: "98004"})
	require.NoError(t, err)

	t.Run("リダイレクトの戻り先にrefIdを付与", func(t *testing.T) {
		req, err := b.BuildHostedPaymentRequest(HostedPaymentParams{
			ReferenceID: "ref-1",
			Amount:      mustMoney(t, "25.00"),
			DisplayMode: payment.DisplayRedirect,
			Customer:    info,
			ReturnURL:   "https://shop.example.com/return?order=42",
			CancelURL:   "https://shop.example.com/cancel",
		})
		require.NoError(t, err)

		assert.Equal(t, "getHostedPaymentPageRequest", req.Operation)
		assert.Equal(t, ExpectToken, req.Expect)
		assert.Equal(t, "https://test.authorize.net/payment/payment", req.GatewayURL)

		payload := req.Payload.(hostedPaymentPageRequest)
		assert.Equal(t, "ref-1", payload.RefID)
		assert.Equal(t, "25.00", payload.TransactionRequest.Amount)
		assert.Equal(t, "authCaptureTransaction", payload.TransactionRequest.TransactionType)
		require.NotNil(t, payload.TransactionRequest.Order)
		assert.Equal(t, "ref-1", payload.TransactionRequest.Order.InvoiceNumber)
		require.NotNil(t, payload.TransactionRequest.Customer)
		assert.Equal(t, "jane@example.com", payload.TransactionRequest.Customer.Email)
		require.NotNil(t, payload.TransactionRequest.BillTo)
		assert.Equal(t, "98004", payload.TransactionRequest.BillTo.Zip)
		assert.Nil(t, payload.TransactionRequest.Profile)

		opts := returnOptionsOf(t, payload.HostedPaymentSettings)
		assert.Equal(t, "https://shop.example.com/return?order=42&refId=ref-1", opts.URL)
		assert.Equal(t, "https://shop.example.com/cancel", opts.CancelURL)
		assert.False(t, opts.ShowReceipt)

		btn, ok := settingValue(t, payload.HostedPaymentSettings, "hostedPaymentButtonOptions")
		require.True(t, ok)
		assert.JSONEq(t, `{"text":"Pay"}`, btn)
	})

	t.Run("クエリ付きキャンセルURLは省略", func(t *testing.T) {
		req, err := b.BuildHostedPaymentRequest(HostedPaymentParams{
			ReferenceID: "ref-1",
			Amount:      mustMoney(t, "10"),
			DisplayMode: payment.DisplayRedirect,
			ReturnURL:   "https://shop.example.com/return",
			CancelURL:   "https://shop.example.com/cancel?x=1",
		})
		require.NoError(t, err)

		opts := returnOptionsOf(t, req.Payload.(hostedPaymentPageRequest).HostedPaymentSettings)
		assert.Empty(t, opts.CancelURL)
		assert.Empty(t, opts.CancelURLText)
		assert.NotEmpty(t, opts.URL)
	})

	t.Run("戻り先なしはレシートを表示", func(t *testing.T) {
		req, err := b.BuildHostedPaymentRequest(HostedPaymentParams{
			Amount:      mustMoney(t, "10"),
			DisplayMode: payment.DisplayRedirect,
			ReturnURL:   "not a url",
		})
		require.NoError(t, err)

		opts := returnOptionsOf(t, req.Payload.(hostedPaymentPageRequest).HostedPaymentSettings)
		assert.True(t, opts.ShowReceipt)
		assert.Empty(t, opts.URL)
	})

	t.Run("埋め込み表示はコミュニケーターURLを設定", func(t *testing.T) {
		req, err := b.BuildHostedPaymentRequest(HostedPaymentParams{
			ReferenceID:           "ref-1",
			Amount:                mustMoney(t, "10"),
			DisplayMode:           payment.DisplayIframe,
			ReturnURL:             "https://shop.example.com/return",
			IframeCommunicatorURL: "https://shop.example.com/communicator.html",
		})
		require.NoError(t, err)

		settings := req.Payload.(hostedPaymentPageRequest).HostedPaymentSettings
		comm, ok := settingValue(t, settings, "hostedPaymentIFrameCommunicatorUrl")
		require.True(t, ok)
		assert.JSONEq(t, `{"url":"https://shop.example.com/communicator.html"}`, comm)

		opts := returnOptionsOf(t, settings)
		assert.Empty(t, opts.URL)
		assert.False(t, opts.ShowReceipt)
	})

	t.Run("埋め込み表示でコミュニケーターURLなしNG", func(t *testing.T) {
		_, err := b.BuildHostedPaymentRequest(HostedPaymentParams{
			Amount:      mustMoney(t, "10"),
			DisplayMode: payment.DisplayLightbox,
		})
		assert.True(t, errs.Is(err, errs.ErrValidation), "got %v", err)
	})

	t.Run("既存プロファイルはcustomerとbillToを置き換える", func(t *testing.T) {
		req, err := b.BuildHostedPaymentRequest(HostedPaymentParams{
			Amount:            mustMoney(t, "10"),
			DisplayMode:       payment.DisplayRedirect,
			Customer:          info,
			CustomerProfileID: "500012345",
		})
		require.NoError(t, err)

		tx := req.Payload.(hostedPaymentPageRequest).TransactionRequest
		require.NotNil(t, tx.Profile)
		assert.Equal(t, "500012345", tx.Profile.CustomerProfileID)
		assert.Nil(t, tx.Customer)
		assert.Nil(t, tx.BillTo)
	})

	t.Run("プロファイル作成指定", func(t *testing.T) {
		req, err := b.BuildHostedPaymentRequest(HostedPaymentParams{
			Amount:        mustMoney(t, "10"),
			DisplayMode:   payment.DisplayRedirect,
			Customer:      info,
			CreateProfile: true,
		})
		require.NoError(t, err)

		tx := req.Payload.(hostedPaymentPageRequest).TransactionRequest
		require.NotNil(t, tx.Profile)
		assert.True(t, tx.Profile.CreateProfile)
	})

	t.Run("金額ゼロNG", func(t *testing.T) {
		_, err := b.BuildHostedPaymentRequest(HostedPaymentParams{DisplayMode: payment.DisplayRedirect})
		assert.True(t, errs.Is(err, errs.ErrValidation), "got %v", err)
	})

	t.Run("認証情報未設定", func(t *testing.T) {
		nb := NewBuilder(Credentials{APILoginID: "login-id"}, Sandbox, "")
		_, err := nb.BuildHostedPaymentRequest(HostedPaymentParams{Amount: mustMoney(t, "10"), DisplayMode: payment.DisplayRedirect})
		assert.ErrorIs(t, err, errs.ErrCredentialsNotConfigured)
	})

	t.Run("ボディは操作名でラップされる", func(t *testing.T) {
		req, err := b.BuildHostedPaymentRequest(HostedPaymentParams{Amount: mustMoney(t, "10"), DisplayMode: payment.DisplayRedirect})
		require.NoError(t, err)

		body, err := json.Marshal(req)
		require.NoError(t, err)
		var top map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(body, &top))
		assert.Contains(t, top, "getHostedPaymentPageRequest")
		assert.Len(t, top, 1)
	})
}

func TestBuildHostedProfileRequest(t *testing.T) {
	b := NewBuilder(testCreds, Production, "")

	t.Run("editPaymentは管理ページURL", func(t *testing.T) {
		req, err := b.BuildHostedProfileRequest(HostedProfileParams{
			ReferenceID:       "ref-1",
			CustomerProfileID: "500012345",
			PageType:          payment.PageEditPayment,
			PaymentProfileID:  "999",
			DisplayMode:       payment.DisplayRedirect,
			ReturnURL:         "https://shop.example.com/profile",
		})
		require.NoError(t, err)

		assert.Equal(t, "https://accept.authorize.net/customer/manage", req.GatewayURL)
		settings := req.Payload.(hostedProfilePageRequest).HostedProfileSettings
		manage, _ := settingValue(t, settings, "hostedProfileManageOptions")
		assert.Equal(t, "showPayment", manage)
		mode, _ := settingValue(t, settings, "hostedProfileValidationMode")
		assert.Equal(t, "liveMode", mode)
		ret, _ := settingValue(t, settings, "hostedProfileReturnUrl")
		assert.Equal(t, "https://shop.example.com/profile?refId=ref-1", ret)
	})

	t.Run("addPaymentのパス", func(t *testing.T) {
		req, err := NewBuilder(testCreds, Sandbox, "").BuildHostedProfileRequest(HostedProfileParams{
			CustomerProfileID: "500012345",
			PageType:          payment.PageAddPayment,
			DisplayMode:       payment.DisplayRedirect,
		})
		require.NoError(t, err)

		assert.Equal(t, "https://test.authorize.net/customer/addPayment", req.GatewayURL)
		settings := req.Payload.(hostedProfilePageRequest).HostedProfileSettings
		_, ok := settingValue(t, settings, "hostedProfileManageOptions")
		assert.False(t, ok)
		mode, _ := settingValue(t, settings, "hostedProfileValidationMode")
		assert.Equal(t, "testMode", mode)
	})

	t.Run("ページ検証", func(t *testing.T) {
		cases := []struct {
			name   string
			params HostedProfileParams
		}{
			{
				name:   "プロファイルIDなしNG",
				params: HostedProfileParams{PageType: payment.PageManage, DisplayMode: payment.DisplayRedirect},
			},
			{
				name:   "editPaymentで支払いプロファイルIDなしNG",
				params: HostedProfileParams{CustomerProfileID: "1", PageType: payment.PageEditPayment, DisplayMode: payment.DisplayRedirect},
			},
			{
				name:   "editShippingで配送先IDなしNG",
				params: HostedProfileParams{CustomerProfileID: "1", PageType: payment.PageEditShipping, DisplayMode: payment.DisplayRedirect},
			},
			{
				name:   "未知のページ種別NG",
				params: HostedProfileParams{CustomerProfileID: "1", PageType: "delete", DisplayMode: payment.DisplayRedirect},
			},
			{
				name:   "埋め込み表示でコミュニケーターURLなしNG",
				params: HostedProfileParams{CustomerProfileID: "1", PageType: payment.PageManage, DisplayMode: payment.DisplayIframe},
			},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := b.BuildHostedProfileRequest(tc.params)
				assert.True(t, errs.Is(err, errs.ErrValidation), "got %v", err)
			})
		}
	})
}

func TestBuildTransactionRequests(t *testing.T) {
	b := NewBuilder(testCreds, Sandbox, "")

	t.Run("プロファイル課金", func(t *testing.T) {
		req, err := b.BuildChargeProfileRequest(ChargeProfileParams{
			CustomerProfileID: "500012345",
			PaymentProfileID:  "999",
			Amount:            mustMoney(t, "25.00"),
		})
		require.NoError(t, err)

		assert.Equal(t, ExpectApprovedTransaction, req.Expect)
		tx := req.Payload.(createTransactionRequest).TransactionRequest
		require.NotNil(t, tx.Profile)
		require.NotNil(t, tx.Profile.PaymentProfile)
		assert.Equal(t, "999", tx.Profile.PaymentProfile.PaymentProfileID)
	})

	t.Run("プロファイル課金でIDなしNG", func(t *testing.T) {
		_, err := b.BuildChargeProfileRequest(ChargeProfileParams{CustomerProfileID: "500012345", Amount: mustMoney(t, "1")})
		assert.True(t, errs.Is(err, errs.ErrValidation), "got %v", err)
	})

	t.Run("トークン決済", func(t *testing.T) {
		req, err := b.BuildOpaqueTransactionRequest(OpaqueTransactionParams{
			Amount:         mustMoney(t, "5"),
			DataDescriptor: "COMMON.ACCEPT.INAPP.PAYMENT",
			DataValue:      "nonce",
		})
		require.NoError(t, err)

		tx := req.Payload.(createTransactionRequest).TransactionRequest
		require.NotNil(t, tx.Payment)
		assert.Equal(t, "nonce", tx.Payment.OpaqueData.DataValue)
		assert.Nil(t, tx.Customer)
	})

	t.Run("トークンなしNG", func(t *testing.T) {
		_, err := b.BuildOpaqueTransactionRequest(OpaqueTransactionParams{Amount: mustMoney(t, "5")})
		assert.True(t, errs.Is(err, errs.ErrValidation), "got %v", err)
	})

	t.Run("プロファイル作成はメール必須", func(t *testing.T) {
		_, err := b.BuildCreateCustomerProfileRequest(CreateProfileParams{MerchantCustomerID: "m-1"})
		assert.True(t, errs.Is(err, errs.ErrValidation), "got %v", err)
	})

	t.Run("プロファイル取得", func(t *testing.T) {
		req, err := b.BuildGetCustomerProfileRequest("500012345")
		require.NoError(t, err)
		assert.Equal(t, ExpectProfile, req.Expect)
		assert.Equal(t, "500012345", req.Payload.(getCustomerProfileRequest).CustomerProfileID)
	})
}
