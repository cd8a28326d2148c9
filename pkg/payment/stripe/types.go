package stripe

// Payment intent statuses returned by the Stripe API
const (
	StatusRequiresPaymentMethod = "requires_payment_method"
	StatusRequiresConfirmation  = "requires_confirmation"
	StatusProcessing            = "processing"
	StatusSucceeded             = "succeeded"
	StatusCanceled              = "canceled"
)

// PaymentIntent represents a Stripe payment intent
type PaymentIntent struct {
	ID           string `json:"id"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
	ClientSecret string `json:"client_secret"`
	Created      int64  `json:"created"`
	Description  string `json:"description"`
}

// Succeeded reports whether the payment intent has been paid
func (p *PaymentIntent) Succeeded() bool {
	return p.Status == StatusSucceeded
}

// CreateIntentRequest represents the parameters for creating a payment intent
type CreateIntentRequest struct {
	// Amount is the payment amount in the currency's smallest unit (cents)
	Amount int64

	// Description is an arbitrary string attached to the intent
	Description string
}

// ErrorResponse represents an error returned by the Stripe API
type ErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
