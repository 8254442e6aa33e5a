package request

import "time"

const defaultTimeout = 60 * time.Second

// Defaults holds the cache policy and timeout applied to requests that do not
// set their own.
type Defaults struct {
	CachePolicy CachePolicy
	Timeout     time.Duration
}

// StandardDefaults returns the protocol cache policy and a 60 second timeout.
func StandardDefaults() Defaults {
	return Defaults{
		CachePolicy: UseProtocolCachePolicy,
		Timeout:     defaultTimeout,
	}
}
