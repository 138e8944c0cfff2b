package order

import (
	"crypto/hmac"
	"crypto/md5"
	"encoding/hex"
	"sort"
	"strings"
)

// Signer produces the gateway signature for a request payload. The exact
// digest scheme is provider-specific; implementations must be
// deterministic and independent of field insertion order, and must never
// transmit the secret itself.
type Signer interface {
	Sign(params map[string]string) string
}

// md5Signer implements the common Chinese-gateway convention: join the
// sorted, non-empty fields as k=v&, append key=<secret>, MD5 the result.
// The hash field itself is always excluded.
type md5Signer struct {
	secret string
}

func NewMD5Signer(secret string) Signer {
	return md5Signer{secret: secret}
}

func (s md5Signer) Sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v == "" || k == "hash" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(params[k])
		b.WriteByte('&')
	}
	b.WriteString("key=" + s.secret)

	sum := md5.Sum([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// verify recomputes the signature over the payload and compares it to
// the payload's hash field in constant time.
func verify(s Signer, params map[string]string) bool {
	got, ok := params["hash"]
	if !ok || got == "" {
		return false
	}
	want := s.Sign(params)
	return hmac.Equal([]byte(want), []byte(got))
}
