package transport

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"sort"
	"strings"
)

// Key identifies an outgoing request by value. Two requests with the same
// method, URL, headers and body share a key.
type Key string

// KeyFor computes the identity of a request. The body is read through
// GetBody so the request stays sendable; requests without GetBody are keyed
// without their body.
func KeyFor(req *http.Request) Key {
	h := sha256.New()

	_, _ = io.WriteString(h, strings.ToUpper(req.Method))
	h.Write([]byte{0})
	if req.URL != nil {
		_, _ = io.WriteString(h, req.URL.String())
	}
	h.Write([]byte{0})

	names := make([]string, 0, len(req.Header))
	for name := range req.Header {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ci, cj := http.CanonicalHeaderKey(names[i]), http.CanonicalHeaderKey(names[j])
		if ci != cj {
			return ci < cj
		}
		return names[i] < names[j]
	})
	for _, name := range names {
		_, _ = io.WriteString(h, http.CanonicalHeaderKey(name))
		h.Write([]byte{':'})
		_, _ = io.WriteString(h, strings.Join(req.Header[name], ","))
		h.Write([]byte{'\n'})
	}
	h.Write([]byte{0})

	if req.GetBody != nil {
		if body, err := req.GetBody(); err == nil {
			_, _ = io.Copy(h, body)
			_ = body.Close()
		}
	}

	return Key(hex.EncodeToString(h.Sum(nil)))
}

// Short returns an abbreviated form for logging.
func (k Key) Short() string {
	if len(k) > 12 {
		return string(k[:12])
	}
	return string(k)
}
