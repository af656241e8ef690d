package billing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"
)

func signPayload(t *testing.T, payload []byte, secret string, ts time.Time) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", ts.Unix())
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func TestVerifySignedPayload(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"invoice.payment_succeeded"}`)
	secret := "whsec_test"
	now := time.Unix(1700000000, 0)

	t.Run("valid signature", func(t *testing.T) {
		header := signPayload(t, payload, secret, now)
		if !verifySignedPayload(payload, header, secret, now) {
			t.Fatal("expected valid signature to verify")
		}
	})

	t.Run("extra v1 candidates are tolerated", func(t *testing.T) {
		header := "v1=deadbeef," + signPayload(t, payload, secret, now)
		if !verifySignedPayload(payload, header, secret, now) {
			t.Fatal("expected verification with extra candidate signatures")
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		header := signPayload(t, payload, "whsec_other", now)
		if verifySignedPayload(payload, header, secret, now) {
			t.Fatal("signature from wrong secret must not verify")
		}
	})

	t.Run("tampered payload", func(t *testing.T) {
		header := signPayload(t, payload, secret, now)
		if verifySignedPayload([]byte(`{"id":"evt_2"}`), header, secret, now) {
			t.Fatal("tampered payload must not verify")
		}
	})

	t.Run("stale timestamp", func(t *testing.T) {
		header := signPayload(t, payload, secret, now.Add(-6*time.Minute))
		if verifySignedPayload(payload, header, secret, now) {
			t.Fatal("timestamp outside tolerance must be rejected as replay")
		}
	})

	t.Run("timestamp just inside tolerance", func(t *testing.T) {
		header := signPayload(t, payload, secret, now.Add(-4*time.Minute))
		if !verifySignedPayload(payload, header, secret, now) {
			t.Fatal("timestamp inside tolerance should verify")
		}
	})

	t.Run("malformed header", func(t *testing.T) {
		for _, header := range []string{"", "t=abc,v1=00", "v1=00", "t=1700000000"} {
			if verifySignedPayload(payload, header, secret, now) {
				t.Fatalf("malformed header %q must not verify", header)
			}
		}
	})

	t.Run("empty secret", func(t *testing.T) {
		header := signPayload(t, payload, secret, now)
		if verifySignedPayload(payload, header, "", now) {
			t.Fatal("verification without a configured secret must fail")
		}
	})
}
