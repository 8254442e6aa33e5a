package request

import (
	"fmt"
	"strings"
)

// CachePolicy describes how a request should interact with HTTP caches. No
// cache is kept here; policies become request directives for upstream caches.
type CachePolicy int

const (
	UseProtocolCachePolicy CachePolicy = iota
	ReloadIgnoringLocalCacheData
	ReloadIgnoringLocalAndRemoteCacheData
	ReturnCacheDataElseLoad
	ReturnCacheDataDontLoad
)

//nolint:gochecknoglobals // Name table for parsing and printing policies
var cachePolicyNames = map[CachePolicy]string{
	UseProtocolCachePolicy:                "useProtocolCachePolicy",
	ReloadIgnoringLocalCacheData:          "reloadIgnoringLocalCacheData",
	ReloadIgnoringLocalAndRemoteCacheData: "reloadIgnoringLocalAndRemoteCacheData",
	ReturnCacheDataElseLoad:               "returnCacheDataElseLoad",
	ReturnCacheDataDontLoad:               "returnCacheDataDontLoad",
}

func (p CachePolicy) String() string {
	if name, ok := cachePolicyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("CachePolicy(%d)", int(p))
}

// ParseCachePolicy parses a policy name, case-insensitively. An empty string
// yields UseProtocolCachePolicy.
func ParseCachePolicy(s string) (CachePolicy, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return UseProtocolCachePolicy, nil
	}
	for policy, name := range cachePolicyNames {
		if strings.EqualFold(name, s) {
			return policy, nil
		}
	}
	return UseProtocolCachePolicy, fmt.Errorf("%w: unknown cache policy %q", ErrInvalidRequest, s)
}

// directives returns the request headers that express the policy.
func (p CachePolicy) directives() map[HeaderKey]HeaderValue {
	switch p {
	case ReloadIgnoringLocalCacheData:
		return map[HeaderKey]HeaderValue{HeaderCacheControl: ValueNoCache}
	case ReloadIgnoringLocalAndRemoteCacheData:
		return map[HeaderKey]HeaderValue{
			HeaderCacheControl: "no-cache, no-store, max-age=0",
			HeaderPragma:       ValueNoCache,
		}
	case ReturnCacheDataElseLoad:
		return map[HeaderKey]HeaderValue{HeaderCacheControl: "max-stale"}
	case ReturnCacheDataDontLoad:
		return map[HeaderKey]HeaderValue{HeaderCacheControl: "max-stale, only-if-cached"}
	default:
		return nil
	}
}
