package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"accept-broker/internal/domain/correlation"
	"accept-broker/internal/domain/customer"
	"accept-broker/internal/domain/payment"
	"accept-broker/internal/infra"
	"accept-broker/internal/infra/authnet"
	"accept-broker/internal/infra/telemetry"
	"accept-broker/internal/pkg/clock"
	"accept-broker/internal/pkg/config"
	"accept-broker/internal/pkg/errs"
	"accept-broker/internal/usecase/shared"
)

type brokerUseCaseImpl struct {
	uow     shared.UnitOfWork
	store   shared.CorrelationStore
	gateway shared.Gateway
	builder *authnet.Builder
	clock   clock.Clock
	newID   correlation.IDGenerator
	ttl     time.Duration
	logger  *slog.Logger
	metrics *telemetry.Metrics
}

type BrokerOption func(*brokerUseCaseImpl)

// WithReferenceIDGenerator replaces the reference ID source.
func WithReferenceIDGenerator(gen correlation.IDGenerator) BrokerOption {
	return func(uc *brokerUseCaseImpl) {
		uc.newID = gen
	}
}

func NewBrokerUseCase(
	uow shared.UnitOfWork,
	store shared.CorrelationStore,
	gateway shared.Gateway,
	builder *authnet.Builder,
	clk clock.Clock,
	cfg config.BrokerConfig,
	logger *slog.Logger,
	metrics *telemetry.Metrics,
	opts ...BrokerOption,
) BrokerCommands {
	uc := &brokerUseCaseImpl{
		uow:     uow,
		store:   store,
		gateway: gateway,
		builder: builder,
		clock:   clk,
		newID:   correlation.NewReferenceID,
		ttl:     cfg.CorrelationTTL,
		logger:  logger,
		metrics: metrics,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *brokerUseCaseImpl) IssueHostedPaymentToken(ctx context.Context, in HostedPaymentInput) (*HostedTokenResult, error) {
	amount, err := parseAmount(in.Amount)
	if err != nil {
		return nil, err
	}
	mode, err := payment.NewDisplayMode(in.DisplayMode)
	if err != nil {
		return nil, invalid(err)
	}

	var info customer.Info
	existingEmail := strings.TrimSpace(in.ExistingCustomerEmail)
	switch {
	case existingEmail != "":
	case in.Customer != nil:
		if info, err = in.Customer.toInfo(); err != nil {
			return nil, err
		}
	default:
		return nil, errs.Validation("customerInfo or existingCustomerEmail is required")
	}

	if err := authnet.ValidateDisplay(mode, in.IframeCommunicatorURL); err != nil {
		return nil, err
	}
	if err := uc.builder.CheckCredentials(); err != nil {
		return nil, err
	}

	var profileID string
	if existingEmail != "" {
		profile, err := uc.lookupReturningCustomer(ctx, existingEmail)
		if err != nil {
			return nil, err
		}
		profileID = profile.GatewayProfileID()
		info = profile.Info()
	}

	refID, err := uc.createCorrelation(ctx, correlation.PendingParams{
		CustomerInfo:          info,
		ExistingCustomerEmail: existingEmail,
		CustomerProfileID:     profileID,
		Amount:                amount,
		CreateProfile:         in.CreateProfile,
	})
	if err != nil {
		return nil, err
	}

	req, err := uc.builder.BuildHostedPaymentRequest(authnet.HostedPaymentParams{
		ReferenceID:           refID,
		Amount:                amount,
		DisplayMode:           mode,
		Customer:              info,
		CustomerProfileID:     profileID,
		CreateProfile:         in.CreateProfile,
		ReturnURL:             in.ReturnURL,
		CancelURL:             in.CancelURL,
		IframeCommunicatorURL: in.IframeCommunicatorURL,
	})
	if err != nil {
		return nil, err
	}

	resp, err := uc.gateway.Send(ctx, req)
	if err != nil {
		return nil, err
	}

	uc.logger.InfoContext(ctx, "hosted payment token issued",
		"reference_id", refID, "display_mode", mode.String(), "returning_customer", profileID != "")

	return &HostedTokenResult{
		Token:             resp.Token,
		GatewayURL:        req.GatewayURL,
		ReferenceID:       refID,
		DisplayMode:       mode,
		CustomerProfileID: profileID,
		Exchange:          resp.Exchange,
	}, nil
}

func (uc *brokerUseCaseImpl) IssueHostedProfileToken(ctx context.Context, in HostedProfileInput) (*HostedTokenResult, error) {
	pageType, err := payment.NewPageType(in.PageType)
	if err != nil {
		return nil, invalid(err)
	}
	mode, err := payment.NewDisplayMode(in.DisplayMode)
	if err != nil {
		return nil, invalid(err)
	}
	profileID := strings.TrimSpace(in.CustomerProfileID)
	if err := authnet.ValidateProfilePage(profileID, pageType, in.PaymentProfileID, in.ShippingAddressID); err != nil {
		return nil, err
	}
	if err := authnet.ValidateDisplay(mode, in.IframeCommunicatorURL); err != nil {
		return nil, err
	}
	if err := uc.builder.CheckCredentials(); err != nil {
		return nil, err
	}

	refID, err := uc.createCorrelation(ctx, correlation.PendingParams{CustomerProfileID: profileID})
	if err != nil {
		return nil, err
	}

	req, err := uc.builder.BuildHostedProfileRequest(authnet.HostedProfileParams{
		ReferenceID:           refID,
		CustomerProfileID:     profileID,
		PageType:              pageType,
		PaymentProfileID:      in.PaymentProfileID,
		ShippingAddressID:     in.ShippingAddressID,
		DisplayMode:           mode,
		ReturnURL:             in.ReturnURL,
		IframeCommunicatorURL: in.IframeCommunicatorURL,
	})
	if err != nil {
		return nil, err
	}

	resp, err := uc.gateway.Send(ctx, req)
	if err != nil {
		return nil, err
	}

	uc.logger.InfoContext(ctx, "hosted profile token issued",
		"reference_id", refID, "page_type", pageType.String(), "display_mode", mode.String())

	return &HostedTokenResult{
		Token:             resp.Token,
		GatewayURL:        req.GatewayURL,
		ReferenceID:       refID,
		DisplayMode:       mode,
		PageType:          pageType,
		CustomerProfileID: profileID,
		PaymentProfileID:  in.PaymentProfileID,
		ShippingAddressID: in.ShippingAddressID,
		Exchange:          resp.Exchange,
	}, nil
}

// lookupReturningCustomer never falls back to the new-customer flow.
func (uc *brokerUseCaseImpl) lookupReturningCustomer(ctx context.Context, rawEmail string) (*customer.Profile, error) {
	email, err := customer.NewEmail(rawEmail)
	if err != nil {
		return nil, invalid(errs.Wrap(err, "existingCustomerEmail"))
	}
	profile, err := uc.uow.CommandReads().ProfileByEmail(ctx, email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(errs.Newf("no customer profile found for %s", email.Value()), errs.ErrCustomerNotFound)
		}
		return nil, err
	}
	return profile, nil
}
