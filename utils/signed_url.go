package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Documents are stored under opaque paths and never served statically.
// Admin views exchange a path for a time-limited signed URL; the view
// endpoint verifies the HMAC before streaming the file.

func documentSecret() []byte {
	return []byte(EnvOrDefault("DOCUMENT_URL_SECRET", EnvOrDefault("JWT_SECRET", "dev-secret-change-me")))
}

func documentMAC(path string, expires int64) string {
	mac := hmac.New(sha256.New, documentSecret())
	fmt.Fprintf(mac, "%s|%d", path, expires)
	return hex.EncodeToString(mac.Sum(nil))
}

// SignDocumentPath returns the query string for a time-limited view URL.
func SignDocumentPath(path string, ttl time.Duration) string {
	expires := time.Now().Add(ttl).Unix()
	q := url.Values{}
	q.Set("path", path)
	q.Set("exp", strconv.FormatInt(expires, 10))
	q.Set("sig", documentMAC(path, expires))
	return q.Encode()
}

// VerifyDocumentSignature checks the HMAC and expiry of a view request.
func VerifyDocumentSignature(path, expStr, sig string) bool {
	expires, err := strconv.ParseInt(expStr, 10, 64)
	if err != nil {
		return false
	}
	if time.Now().Unix() > expires {
		return false
	}
	expected := documentMAC(path, expires)
	return hmac.Equal([]byte(expected), []byte(sig))
}
