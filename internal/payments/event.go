package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidSignature is returned when signature verification fails.
	ErrInvalidSignature = errors.New("invalid event signature")
	// ErrSignatureExpired is returned when the signed timestamp is
	// outside the replay window.
	ErrSignatureExpired = errors.New("event timestamp outside replay window")
	// ErrMalformedSignature is returned for unparseable signature headers.
	ErrMalformedSignature = errors.New("malformed signature header")
)

// DefaultSignatureTolerance is the default replay protection window
// for provider events.
const DefaultSignatureTolerance = 5 * time.Minute

// EventTypeAccountUpdated is sent when a connected account's
// requirements or capabilities change.
const EventTypeAccountUpdated = "account.updated"

// Event is a notification pushed by the payments provider.
type Event struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	Account string          `json:"account"`
	Data    json.RawMessage `json:"data"`
}

// signEvent computes the hex HMAC-SHA256 over "{timestamp}.{payload}".
func signEvent(secret string, timestamp int64, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", timestamp)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyEventSignature checks a provider signature header of the form
// "t=<unix>,v1=<hex>" against the raw payload, with replay protection.
func VerifyEventSignature(secret, header string, payload []byte, tolerance time.Duration) error {
	timestamp, signature, err := parseSignatureHeader(header)
	if err != nil {
		return err
	}

	now := time.Now().Unix()
	diff := now - timestamp
	if diff < 0 {
		diff = -diff
	}
	if diff > int64(tolerance.Seconds()) {
		return ErrSignatureExpired
	}

	expected := signEvent(secret, timestamp, payload)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrInvalidSignature
	}
	return nil
}

// parseSignatureHeader extracts the timestamp and v1 signature.
func parseSignatureHeader(header string) (int64, string, error) {
	var timestamp int64
	var signature string

	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "t":
			ts, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return 0, "", ErrMalformedSignature
			}
			timestamp = ts
		case "v1":
			signature = value
		}
	}

	if timestamp == 0 || signature == "" {
		return 0, "", ErrMalformedSignature
	}
	return timestamp, signature, nil
}
