package commands

import "context"

//go:generate mockgen -source=ports.go -destination=../../../tests/mock/commands/mock_ports.go -package=commandsmock

type BrokerCommands interface {
	IssueHostedPaymentToken(ctx context.Context, in HostedPaymentInput) (*HostedTokenResult, error)
	IssueHostedProfileToken(ctx context.Context, in HostedProfileInput) (*HostedTokenResult, error)
	CreateCustomerProfile(ctx context.Context, in CustomerInput) (*CreateProfileResult, error)
	ChargeCustomerProfile(ctx context.Context, in ChargeProfileInput) (*ChargeResult, error)
	ProcessPayment(ctx context.Context, in OpaquePaymentInput) (*ChargeResult, error)
}

type ReconcileCommands interface {
	// ReconcileReturn always yields an outcome; internal failures become StatusError.
	ReconcileReturn(ctx context.Context, p ReturnParams) ReturnOutcome
	HandleWebhook(ctx context.Context, in WebhookInput) (*WebhookResult, error)
}
