// Package guidance produces per-module study advice and web resources,
// degrading from a search-grounded answer to an ungrounded one to a fixed
// error message.
package guidance

// State is a step of the live/fallback fetch protocol.
type State int

const (
	FetchingLive State = iota
	FetchingFallback
	Success
	SuccessDegraded
	HardFailure
)

func (s State) String() string {
	switch s {
	case FetchingLive:
		return "fetching-live"
	case FetchingFallback:
		return "fetching-fallback"
	case Success:
		return "success"
	case SuccessDegraded:
		return "success-degraded"
	case HardFailure:
		return "hard-failure"
	}
	return "unknown"
}

// Terminal reports whether no further attempt follows s.
func (s State) Terminal() bool {
	return s == Success || s == SuccessDegraded || s == HardFailure
}

// Next advances the protocol after an attempt made in state s. attemptErr
// is the attempt's error, nil on success. Terminal states do not move.
func Next(s State, attemptErr error) State {
	switch s {
	case FetchingLive:
		if attemptErr == nil {
			return Success
		}
		return FetchingFallback
	case FetchingFallback:
		if attemptErr == nil {
			return SuccessDegraded
		}
		return HardFailure
	}
	return s
}
