package commute

import "errors"

var (
	// ErrFetchFailed marks transport failures and non-2xx responses
	ErrFetchFailed = errors.New("departure fetch failed")
	// ErrMalformedPayload marks responses that are not a list of departure records
	ErrMalformedPayload = errors.New("malformed departure payload")
)

func reasonFor(err error) FallbackReason {
	if errors.Is(err, ErrMalformedPayload) {
		return ReasonMalformed
	}
	return ReasonFetch
}
