package queries

import (
	"context"
	"strings"

	"github.com/jinzhu/copier"

	"accept-broker/internal/infra/authnet"
	"accept-broker/internal/pkg/errs"
	"accept-broker/internal/usecase/shared"
)

type profileQueriesImpl struct {
	gateway shared.Gateway
	builder *authnet.Builder
}

func NewProfileQueries(gateway shared.Gateway, builder *authnet.Builder) ProfileQueries {
	return &profileQueriesImpl{gateway: gateway, builder: builder}
}

func (q *profileQueriesImpl) GetCustomerProfile(ctx context.Context, customerProfileID string) (*ProfileView, error) {
	customerProfileID = strings.TrimSpace(customerProfileID)
	if customerProfileID == "" {
		return nil, errs.Validation("customerProfileId is required")
	}
	if err := q.builder.CheckCredentials(); err != nil {
		return nil, err
	}
	req, err := q.builder.BuildGetCustomerProfileRequest(customerProfileID)
	if err != nil {
		return nil, err
	}
	resp, err := q.gateway.Send(ctx, req)
	if err != nil {
		return nil, err
	}
	view, err := toProfileView(resp.Profile)
	if err != nil {
		return nil, err
	}
	view.Exchange = resp.Exchange
	return view, nil
}

func toProfileView(p *authnet.ProfileResponse) (*ProfileView, error) {
	view := &ProfileView{}
	if p != nil {
		if err := copier.CopyWithOption(view, p, copier.Option{DeepCopy: true}); err != nil {
			return nil, errs.Wrap(err, "map customer profile")
		}
	}
	if view.PaymentProfiles == nil {
		view.PaymentProfiles = []PaymentProfileView{}
	}
	if view.ShippingAddresses == nil {
		view.ShippingAddresses = []ShippingAddressView{}
	}
	return view, nil
}
