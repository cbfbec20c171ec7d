// Package auth provides Bittrex API authentication using HMAC-SHA512 signatures.
package auth

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// Header names carried by every private request.
const (
	HeaderAPIKey       = "Api-Key"
	HeaderTimestamp    = "Api-Timestamp"
	HeaderContentHash  = "Api-Content-Hash"
	HeaderSignature    = "Api-Signature"
	HeaderSubaccountID = "Api-Subaccount-Id"
)

// Credentials holds the API key and secret for signing requests.
type Credentials struct {
	APIKey       string // API key from the Bittrex dashboard
	APISecret    string // Secret paired with APIKey
	SubaccountID string // Optional, empty for the master account
}

// NewCredentials validates and returns credentials.
func NewCredentials(apiKey, apiSecret, subaccountID string) (*Credentials, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if apiSecret == "" {
		return nil, fmt.Errorf("API secret is required")
	}

	return &Credentials{
		APIKey:       apiKey,
		APISecret:    apiSecret,
		SubaccountID: subaccountID,
	}, nil
}

// ContentHash returns the hex SHA-512 digest of body.
func ContentHash(body []byte) string {
	sum := sha512.Sum512(body)
	return hex.EncodeToString(sum[:])
}

// Sign computes the content hash and request signature.
// Message format: timestamp_ms + uri + METHOD + content_hash + subaccount_id
func Sign(secret string, timestampMs int64, uri, method string, body []byte, subaccountID string) (contentHash, signature string) {
	contentHash = ContentHash(body)

	var sb strings.Builder
	sb.Grow(20 + len(uri) + len(method) + len(contentHash) + len(subaccountID))
	sb.WriteString(strconv.FormatInt(timestampMs, 10))
	sb.WriteString(uri)
	sb.WriteString(strings.ToUpper(method))
	sb.WriteString(contentHash)
	sb.WriteString(subaccountID)

	mac := hmac.New(sha512.New, []byte(secret))
	_, _ = mac.Write([]byte(sb.String()))

	return contentHash, hex.EncodeToString(mac.Sum(nil))
}

// SignRequest generates authentication headers for a private API request.
// The caller must send exactly body and use the same timestamp; uri is the
// full request URL including any query string.
func (c *Credentials) SignRequest(timestampMs int64, method, uri string, body []byte) map[string]string {
	contentHash, signature := Sign(c.APISecret, timestampMs, uri, method, body, c.SubaccountID)

	headers := map[string]string{
		HeaderAPIKey:      c.APIKey,
		HeaderTimestamp:   strconv.FormatInt(timestampMs, 10),
		HeaderContentHash: contentHash,
		HeaderSignature:   signature,
	}
	if c.SubaccountID != "" {
		headers[HeaderSubaccountID] = c.SubaccountID
	}

	return headers
}
