package interfaces

import "context"

// CreateLinkInput describes a hosted payment-link request. Amount is always
// read from the stored milestone, never from caller input.
type CreateLinkInput struct {
	CustomerID    string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Amount        float64
	Purpose       string
	UniqueRef     string
}

// PayoutInput describes a payout transfer request.
type PayoutInput struct {
	BeneficiaryRef string
	Amount         float64
	UniqueRef      string
}

// IPaymentGateway abstracts the external payment provider (Cashfree).
//
// Callers never retry automatically; a failure is surfaced directly to the
// invoking request with milestone state unchanged.
type IPaymentGateway interface {
	CreateLink(ctx context.Context, in CreateLinkInput) (linkURL string, err error)
	RequestPayout(ctx context.Context, in PayoutInput) (transferID string, err error)
}
