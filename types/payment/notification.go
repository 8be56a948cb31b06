package payment

// Notification is the asynchronous payment-status payload Midtrans posts to
// the webhook endpoint. Only the fields the reconciliation path needs are
// declared; the rest of the payload is ignored.
type Notification struct {
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionID     string `json:"transaction_id"`
	PaymentType       string `json:"payment_type"`
}

// Ack is the acknowledgement body returned to the gateway. The gateway only
// cares about the HTTP status, but an explicit body keeps responses uniform.
type Ack struct {
	Status string `json:"status"`
}
