package commands

import (
	"context"
	"strings"

	"accept-broker/internal/domain/customer"
	"accept-broker/internal/domain/payment"
	"accept-broker/internal/domain/transaction"
	"accept-broker/internal/infra/authnet"
	"accept-broker/internal/pkg/errs"
	"accept-broker/internal/pkg/patch"
	"accept-broker/internal/usecase/shared"
)

func (uc *brokerUseCaseImpl) ChargeCustomerProfile(ctx context.Context, in ChargeProfileInput) (*ChargeResult, error) {
	profileID := strings.TrimSpace(in.CustomerProfileID)
	if profileID == "" {
		return nil, errs.Validation("customerProfileId is required")
	}
	amount, err := parseAmount(in.Amount)
	if err != nil {
		return nil, err
	}
	if err := uc.builder.CheckCredentials(); err != nil {
		return nil, err
	}

	paymentProfileID := strings.TrimSpace(in.CustomerPaymentProfileID)
	if paymentProfileID == "" {
		if paymentProfileID, err = uc.defaultPaymentProfile(ctx, profileID); err != nil {
			return nil, err
		}
	}

	refID, err := uc.newID(uc.clock.Now())
	if err != nil {
		return nil, errs.Wrap(err, "generate reference id")
	}
	req, err := uc.builder.BuildChargeProfileRequest(authnet.ChargeProfileParams{
		ReferenceID:       refID,
		CustomerProfileID: profileID,
		PaymentProfileID:  paymentProfileID,
		Amount:            amount,
	})
	if err != nil {
		return nil, err
	}

	return uc.sendTransaction(ctx, req, refID, amount, profileID, paymentProfileID)
}

func (uc *brokerUseCaseImpl) ProcessPayment(ctx context.Context, in OpaquePaymentInput) (*ChargeResult, error) {
	if in.DataDescriptor == "" || in.DataValue == "" {
		return nil, errs.Validation("opaqueData.dataDescriptor and opaqueData.dataValue are required")
	}
	amount, err := parseAmount(in.Amount)
	if err != nil {
		return nil, err
	}
	var info customer.Info
	if in.Customer != nil {
		if info, err = in.Customer.toInfo(); err != nil {
			return nil, err
		}
	}
	if err := uc.builder.CheckCredentials(); err != nil {
		return nil, err
	}

	refID, err := uc.newID(uc.clock.Now())
	if err != nil {
		return nil, errs.Wrap(err, "generate reference id")
	}
	req, err := uc.builder.BuildOpaqueTransactionRequest(authnet.OpaqueTransactionParams{
		ReferenceID:    refID,
		Amount:         amount,
		DataDescriptor: in.DataDescriptor,
		DataValue:      in.DataValue,
		Customer:       info,
	})
	if err != nil {
		return nil, err
	}

	return uc.sendTransaction(ctx, req, refID, amount, "", "")
}

// defaultPaymentProfile picks the profile's default payment profile, else the first one.
func (uc *brokerUseCaseImpl) defaultPaymentProfile(ctx context.Context, customerProfileID string) (string, error) {
	req, err := uc.builder.BuildGetCustomerProfileRequest(customerProfileID)
	if err != nil {
		return "", err
	}
	resp, err := uc.gateway.Send(ctx, req)
	if err != nil {
		return "", err
	}
	profiles := resp.Profile.PaymentProfiles
	if len(profiles) == 0 {
		return "", errs.Validation("customer profile has no payment profiles")
	}
	for _, pp := range profiles {
		if pp.DefaultPaymentProfile {
			return pp.CustomerPaymentProfileID, nil
		}
	}
	return profiles[0].CustomerPaymentProfileID, nil
}

// sendTransaction posts a createTransactionRequest and records a direct audit
// row for any reply that carries a transaction ID, approved or not.
func (uc *brokerUseCaseImpl) sendTransaction(ctx context.Context, req authnet.GatewayRequest, refID string, amount payment.Money, profileID, paymentProfileID string) (*ChargeResult, error) {
	resp, sendErr := uc.gateway.Send(ctx, req)
	if sendErr != nil {
		var gerr *authnet.GatewayError
		if errs.As(sendErr, &gerr) && gerr.Response != nil {
			uc.recordDirect(ctx, gerr.Response, refID, amount, profileID, paymentProfileID)
		}
		return nil, sendErr
	}
	uc.recordDirect(ctx, resp, refID, amount, profileID, paymentProfileID)

	tr := resp.TransactionResponse
	result := &ChargeResult{
		TransactionID:            tr.TransID,
		ReferenceID:              refID,
		ResponseCode:             tr.ResponseCode,
		AuthCode:                 tr.AuthCode,
		AVSResultCode:            tr.AVSResultCode,
		CVVResultCode:            tr.CVVResultCode,
		AccountNumber:            tr.AccountNumber,
		AccountType:              tr.AccountType,
		Amount:                   amount,
		CustomerProfileID:        profileID,
		CustomerPaymentProfileID: paymentProfileID,
		Exchange:                 resp.Exchange,
	}
	if len(tr.Messages) > 0 {
		result.Message = tr.Messages[0].Description
	}
	if tr.Profile != nil {
		result.CustomerProfileID = patch.FirstNonEmpty(tr.Profile.CustomerProfileID, profileID)
		result.CustomerPaymentProfileID = patch.FirstNonEmpty(tr.Profile.CustomerPaymentProfileID, paymentProfileID)
	}
	uc.logger.InfoContext(ctx, "direct transaction completed",
		"transaction_id", tr.TransID, "reference_id", refID, "response_code", tr.ResponseCode)
	return result, nil
}

// recordDirect never fails the caller: the charge already happened at the gateway.
func (uc *brokerUseCaseImpl) recordDirect(ctx context.Context, resp *authnet.NormalizedResponse, refID string, amount payment.Money, profileID, paymentProfileID string) {
	tr := resp.TransactionResponse
	if tr == nil || tr.TransID == "" || tr.TransID == "0" {
		return
	}
	txn, err := transaction.New(transaction.Params{
		TransactionID:            tr.TransID,
		ReferenceID:              refID,
		ResponseCode:             tr.ResponseCode,
		AuthCode:                 tr.AuthCode,
		Amount:                   amount,
		AccountNumber:            tr.AccountNumber,
		AccountType:              tr.AccountType,
		CustomerProfileID:        profileID,
		CustomerPaymentProfileID: paymentProfileID,
		Source:                   transaction.SourceDirect,
		RawResponse:              authnet.Redact(resp.Raw),
	}, uc.clock.Now())
	if err != nil {
		uc.logger.WarnContext(ctx, "skipping audit row", "reference_id", refID, "error", err)
		return
	}
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, ierr := tx.Transactions().Insert(ctx, txn)
		return ierr
	})
	if err != nil {
		uc.logger.ErrorContext(ctx, "failed to record direct transaction",
			"transaction_id", tr.TransID, "error", err, "stack", errs.ExtractStackLines(err, 8))
	}
	uc.metrics.RecordReconciliation(string(transaction.SourceDirect), txn.Status().String())
}
