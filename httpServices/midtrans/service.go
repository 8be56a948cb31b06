package httpServices

import (
	"bytes"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// SandboxBaseURL is the Snap sandbox endpoint; production deployments set
// MIDTRANS_BASE_URL to the live host.
const SandboxBaseURL = "https://app.sandbox.midtrans.com"

var ErrInvalidSignature = errors.New("midtrans: notification signature mismatch")

// SnapClient talks to the Midtrans Snap API and verifies async notifications.
type SnapClient struct {
	httpClient *http.Client
	baseURL    string
	serverKey  string
}

func NewClient(baseURL, serverKey string) *SnapClient {
	if baseURL == "" {
		baseURL = SandboxBaseURL
	}
	return &SnapClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:   baseURL,
		serverKey: serverKey,
	}
}

// CreateTransaction registers a pending charge and returns the Snap token the
// customer-side widget completes the payment with.
func (c *SnapClient) CreateTransaction(req SnapTransactionRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequest("POST", c.baseURL+"/snap/v1/transactions", bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(c.serverKey+":")))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", errors.New("Midtrans Snap API returned non-OK status: " + resp.Status)
	}

	var apiResp SnapTransactionResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", err
	}

	return apiResp.Token, nil
}

// VerifySignature checks the notification's signature_key:
// sha512(order_id + status_code + gross_amount + server_key). Notifications
// failing this check must never reach the reconciliation path.
func (c *SnapClient) VerifySignature(orderID, statusCode, grossAmount, signatureKey string) error {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + c.serverKey))
	expected := hex.EncodeToString(sum[:])
	if subtle.ConstantTimeCompare([]byte(expected), []byte(signatureKey)) != 1 {
		return ErrInvalidSignature
	}
	return nil
}
