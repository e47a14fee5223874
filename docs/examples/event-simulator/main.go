// Payrail Provider Event Simulator
//
// Signs and sends a fake provider event to a locally running Payrail
// server, for testing the /api/events endpoint without the real
// payments provider.
//
// Usage:
//   export PAYMENTS_EVENT_SECRET="whsec_your_secret_here"
//   go run main.go -account acct_123 -type account.updated
//
// The secret must match the PAYMENTS_EVENT_SECRET the server runs with.

package main

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

type event struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Account string `json:"account"`
}

func main() {
	var (
		target    = flag.String("url", "http://localhost:8080/api/events", "Event endpoint URL")
		accountID = flag.String("account", "", "Connected account ID (required)")
		eventType = flag.String("type", "account.updated", "Event type")
	)
	flag.Parse()

	secret := os.Getenv("PAYMENTS_EVENT_SECRET")
	if secret == "" {
		log.Fatal("PAYMENTS_EVENT_SECRET environment variable is required")
	}
	if *accountID == "" {
		log.Fatal("-account is required")
	}

	payload, err := json.Marshal(event{
		ID:      fmt.Sprintf("evt_sim_%d", time.Now().UnixNano()),
		Type:    *eventType,
		Account: *accountID,
	})
	if err != nil {
		log.Fatalf("marshal event: %v", err)
	}

	ts := time.Now().Unix()
	signature := fmt.Sprintf("t=%d,v1=%s", ts, sign(secret, ts, payload))

	req, err := http.NewRequest(http.MethodPost, *target, bytes.NewReader(payload))
	if err != nil {
		log.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Provider-Signature", signature)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("send event: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	log.Printf("%s -> %d", *target, resp.StatusCode)
	log.Printf("response: %s", body)
}

// sign computes the hex HMAC-SHA256 over "{timestamp}.{payload}",
// matching the server's verification scheme.
func sign(secret string, ts int64, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", ts)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}
