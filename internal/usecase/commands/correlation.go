package commands

import (
	"context"

	"accept-broker/internal/domain/correlation"
	"accept-broker/internal/pkg/errs"
)

const maxReferenceIDAttempts = 3

var errReferenceIDExhausted = errs.New("could not allocate a unique reference id")

// createCorrelation stores a pending record and returns its reference ID.
// A store outage does not fail issuance: the ID is still returned and the
// reconciler falls back to gateway-supplied fields.
func (uc *brokerUseCaseImpl) createCorrelation(ctx context.Context, params correlation.PendingParams) (string, error) {
	now := uc.clock.Now()
	for attempt := 1; attempt <= maxReferenceIDAttempts; attempt++ {
		refID, err := uc.newID(now)
		if err != nil {
			return "", errs.Wrap(err, "generate reference id")
		}
		pending, err := correlation.NewPending(refID, params, now, uc.ttl)
		if err != nil {
			return "", errs.Wrap(err, "build correlation record")
		}

		err = uc.store.Create(ctx, pending)
		switch {
		case err == nil:
			return refID, nil
		case errs.Is(err, errs.ErrCorrelationExists):
			uc.logger.WarnContext(ctx, "reference id collision, regenerating", "reference_id", refID, "attempt", attempt)
			continue
		default:
			uc.metrics.RecordCorrelationDegraded()
			uc.logger.WarnContext(ctx, "correlation store unavailable, issuing without durable record",
				"reference_id", refID, "error", err)
			return refID, nil
		}
	}
	return "", errReferenceIDExhausted
}
