package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"regexp"

	"accept-broker/internal/domain/customer"
	"accept-broker/internal/infra/authnet"
	"accept-broker/internal/pkg/errs"
	"accept-broker/internal/usecase/shared"
)

// E00039 is returned when a profile with the same merchantCustomerId or email exists.
const duplicateProfileCode = "E00039"

var duplicateProfileID = regexp.MustCompile(`ID\s+(\d+)`)

func (uc *brokerUseCaseImpl) CreateCustomerProfile(ctx context.Context, in CustomerInput) (*CreateProfileResult, error) {
	info, err := in.toInfo()
	if err != nil {
		return nil, err
	}

	req, err := uc.builder.BuildCreateCustomerProfileRequest(authnet.CreateProfileParams{
		MerchantCustomerID: merchantCustomerID(info.Email()),
		Description:        profileDescription(info),
		Customer:           info,
	})
	if err != nil {
		return nil, err
	}

	result := &CreateProfileResult{}
	resp, err := uc.gateway.Send(ctx, req)
	if err != nil {
		existingID, ok := existingProfileID(err)
		if !ok {
			return nil, err
		}
		uc.logger.InfoContext(ctx, "gateway profile already exists, reusing it", "customer_profile_id", existingID)
		result.CustomerProfileID = existingID
		result.Existing = true
		var gerr *authnet.GatewayError
		if errs.As(err, &gerr) {
			result.Exchange = gerr.Exchange
		}
	} else {
		result.CustomerProfileID = resp.CustomerProfileID
		result.Exchange = resp.Exchange
	}

	profile, err := customer.NewProfile(info, result.CustomerProfileID, uc.clock.Now())
	if err != nil {
		return nil, errs.Wrap(err, "build local customer profile")
	}
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Profiles().Upsert(ctx, profile)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// existingProfileID extracts the profile ID from a duplicate-profile rejection,
// e.g. "A duplicate record with ID 500012345 already exists."
func existingProfileID(err error) (string, bool) {
	var gerr *authnet.GatewayError
	if !errs.As(err, &gerr) || gerr.Code != duplicateProfileCode {
		return "", false
	}
	m := duplicateProfileID.FindStringSubmatch(gerr.Text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// merchantCustomerID is a stable 20-character key derived from the email.
func merchantCustomerID(email customer.Email) string {
	sum := sha256.Sum256([]byte(email.Value()))
	return hex.EncodeToString(sum[:])[:20]
}

func profileDescription(info customer.Info) string {
	a := info.Address()
	name := a.FirstName
	if a.LastName != "" {
		if name != "" {
			name += " "
		}
		name += a.LastName
	}
	if name == "" {
		return info.Email().Value()
	}
	return name
}
