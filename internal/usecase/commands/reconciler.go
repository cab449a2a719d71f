package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"accept-broker/internal/domain/correlation"
	"accept-broker/internal/domain/customer"
	"accept-broker/internal/domain/payment"
	"accept-broker/internal/domain/transaction"
	"accept-broker/internal/infra/telemetry"
	"accept-broker/internal/pkg/clock"
	"accept-broker/internal/pkg/config"
	"accept-broker/internal/pkg/errs"
	"accept-broker/internal/pkg/patch"
	"accept-broker/internal/usecase/shared"
)

const (
	cancelledMessage = "The payment was cancelled"
	declinedMessage  = "The payment was declined"
	errorMessage     = "The payment could not be completed"
)

// ReturnParams are the query parameters the gateway appends to the return URL.
type ReturnParams struct {
	Cancelled                bool
	TransactionID            string
	ResponseCode             string
	ResponseReasonText       string
	AuthCode                 string
	Amount                   string
	AccountNumber            string
	AccountType              string
	CustomerProfileID        string
	CustomerPaymentProfileID string
	ReferenceID              string
	// Raw is every received parameter, kept for the audit row.
	Raw map[string]string
}

// ReturnOutcome is what the result view is told.
type ReturnOutcome struct {
	Status        transaction.Status
	TransactionID string
	AuthCode      string
	Amount        string
	AccountNumber string
	AccountType   string
	ReferenceID   string
	Message       string
}

type reconcileUseCaseImpl struct {
	uow          shared.UnitOfWork
	store        shared.CorrelationStore
	clock        clock.Clock
	signatureKey string
	logger       *slog.Logger
	metrics      *telemetry.Metrics
}

func NewReconcileUseCase(
	uow shared.UnitOfWork,
	store shared.CorrelationStore,
	clk clock.Clock,
	cfg config.AuthorizeNetConfig,
	logger *slog.Logger,
	metrics *telemetry.Metrics,
) ReconcileCommands {
	return &reconcileUseCaseImpl{
		uow:          uow,
		store:        store,
		clock:        clk,
		signatureKey: cfg.SignatureKey,
		logger:       logger,
		metrics:      metrics,
	}
}

func (uc *reconcileUseCaseImpl) ReconcileReturn(ctx context.Context, p ReturnParams) (out ReturnOutcome) {
	out = ReturnOutcome{
		Status:        returnStatus(p),
		TransactionID: p.TransactionID,
		AuthCode:      p.AuthCode,
		Amount:        p.Amount,
		AccountNumber: p.AccountNumber,
		AccountType:   p.AccountType,
		ReferenceID:   p.ReferenceID,
	}

	defer func() {
		if r := recover(); r != nil {
			uc.logger.ErrorContext(ctx, "panic during return reconciliation", "reference_id", p.ReferenceID, "panic", r)
			out = failedOutcome(p)
		}
		uc.metrics.RecordReconciliation(string(transaction.SourceReturn), out.Status.String())
	}()

	var err error
	switch out.Status {
	case transaction.StatusApproved:
		err = uc.reconcileApproved(ctx, p)
	case transaction.StatusCancelled:
		out.Message = cancelledMessage
		err = uc.recordReturn(ctx, p, out.Status, nil, false)
	case transaction.StatusDeclined:
		out.Message = patch.FirstNonEmpty(p.ResponseReasonText, declinedMessage)
		err = uc.recordReturn(ctx, p, out.Status, nil, false)
	default:
		out.Message = errorMessage
		err = uc.recordReturn(ctx, p, out.Status, nil, false)
	}
	if err != nil {
		uc.logger.ErrorContext(ctx, "return reconciliation failed",
			"reference_id", p.ReferenceID,
			"transaction_id", p.TransactionID,
			"error", err,
			"stack", errs.ExtractStackLines(err, 10),
		)
		return failedOutcome(p)
	}

	uc.logger.InfoContext(ctx, "return reconciled",
		"status", out.Status.String(), "reference_id", p.ReferenceID, "transaction_id", p.TransactionID)
	return out
}

// returnStatus: cancellation wins over any response code.
func returnStatus(p ReturnParams) transaction.Status {
	if p.Cancelled {
		return transaction.StatusCancelled
	}
	return transaction.StatusFromResponseCode(p.ResponseCode)
}

func failedOutcome(p ReturnParams) ReturnOutcome {
	return ReturnOutcome{
		Status:        transaction.StatusError,
		TransactionID: p.TransactionID,
		ReferenceID:   p.ReferenceID,
		Message:       errorMessage,
	}
}

func (uc *reconcileUseCaseImpl) reconcileApproved(ctx context.Context, p ReturnParams) error {
	pending, firstUse := uc.consumeCorrelation(ctx, p.ReferenceID)
	return uc.recordReturn(ctx, p, transaction.StatusApproved, pending, firstUse)
}

// consumeCorrelation recovers the issuance context and marks it used. Missing,
// expired or unreadable records are tolerated and yield nil. firstUse is false
// only when the store reports the record was already consumed.
func (uc *reconcileUseCaseImpl) consumeCorrelation(ctx context.Context, refID string) (pending *correlation.Pending, firstUse bool) {
	if refID == "" {
		return nil, true
	}
	now := uc.clock.Now()

	rec, err := uc.store.Get(ctx, refID)
	switch {
	case err == nil && rec.IsExpired(now):
		uc.logger.WarnContext(ctx, "correlation record expired, ignoring its context",
			"reference_id", refID, "expired_at", rec.ExpiresAt())
	case err == nil:
		pending = rec
	case errs.Is(err, errs.ErrCorrelationNotFound):
		uc.logger.WarnContext(ctx, "no correlation record for reference id", "reference_id", refID)
	default:
		uc.logger.WarnContext(ctx, "correlation lookup failed", "reference_id", refID, "error", err)
	}

	flipped, err := uc.store.MarkUsed(ctx, refID, now)
	switch {
	case err != nil:
		uc.logger.WarnContext(ctx, "failed to mark correlation used", "reference_id", refID, "error", err)
	case !flipped:
		uc.logger.InfoContext(ctx, "correlation already consumed, skipping profile save", "reference_id", refID)
		return pending, false
	}
	return pending, true
}

// recordReturn writes the audit row and, when saveProfile is set for a
// profile-creating attempt, the local profile, in one transaction.
func (uc *reconcileUseCaseImpl) recordReturn(ctx context.Context, p ReturnParams, status transaction.Status, pending *correlation.Pending, saveProfile bool) error {
	now := uc.clock.Now()

	var txn *transaction.Transaction
	if p.TransactionID != "" && p.TransactionID != "0" {
		raw, err := json.Marshal(p.Raw)
		if err != nil {
			return errs.Wrap(err, "encode return parameters")
		}
		txn, err = transaction.New(transaction.Params{
			TransactionID:            p.TransactionID,
			ReferenceID:              p.ReferenceID,
			ResponseCode:             p.ResponseCode,
			AuthCode:                 p.AuthCode,
			Amount:                   returnAmount(p.Amount, pending),
			AccountNumber:            p.AccountNumber,
			AccountType:              p.AccountType,
			CustomerProfileID:        p.CustomerProfileID,
			CustomerPaymentProfileID: p.CustomerPaymentProfileID,
			Status:                   status,
			Source:                   transaction.SourceReturn,
			RawResponse:              raw,
		}, now)
		if err != nil {
			return err
		}
	} else if status == transaction.StatusApproved {
		uc.logger.WarnContext(ctx, "approved return without transaction id, no audit row written", "reference_id", p.ReferenceID)
	}

	var profile *customer.Profile
	if saveProfile {
		profile = uc.profileToUpsert(ctx, p, pending, now)
	}
	if txn == nil && profile == nil {
		return nil
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if txn != nil {
			created, err := tx.Transactions().Insert(ctx, txn)
			if err != nil {
				return err
			}
			if !created {
				uc.logger.InfoContext(ctx, "duplicate delivery, audit row already exists", "transaction_id", txn.TransactionID())
			}
		}
		if profile != nil {
			return tx.Profiles().Upsert(ctx, profile)
		}
		return nil
	})
}

// profileToUpsert returns nil unless profile creation was requested and both a
// gateway profile ID and a customer email are known.
func (uc *reconcileUseCaseImpl) profileToUpsert(ctx context.Context, p ReturnParams, pending *correlation.Pending, now time.Time) *customer.Profile {
	if pending == nil || !pending.CreateProfile() {
		return nil
	}
	profileID := patch.FirstNonEmpty(p.CustomerProfileID, pending.CustomerProfileID())
	if profileID == "" {
		return nil
	}
	info := pending.CustomerInfo()
	if info.Email().IsZero() {
		var err error
		if info, err = customer.NewInfo(pending.CustomerEmail(), info.Address()); err != nil {
			return nil
		}
	}
	profile, err := customer.NewProfile(info, profileID, now)
	if err != nil {
		uc.logger.WarnContext(ctx, "skipping profile upsert", "reference_id", p.ReferenceID, "error", err)
		return nil
	}
	return profile
}

// returnAmount prefers the gateway-echoed amount over the issuance snapshot.
func returnAmount(raw string, pending *correlation.Pending) payment.Money {
	if m, err := payment.ParseMoney(raw); err == nil {
		return m
	}
	if pending != nil {
		return pending.Amount()
	}
	return payment.Money{}
}
