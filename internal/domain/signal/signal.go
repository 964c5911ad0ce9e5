// Package signal holds the terminal decision layer: the closed signal
// enumeration, the gate-ordered state machine that produces exactly one
// signal per analysis, and the secondary entry-quality score.
package signal

import "strings"

// Signal is the categorical trading recommendation.
type Signal string

const (
	DoNotTrade       Signal = "DO_NOT_TRADE"
	NoClearSignal    Signal = "NO_CLEAR_SIGNAL"
	WaitForTrend     Signal = "WAIT_FOR_TREND"
	BuyUptrend       Signal = "BUY_UPTREND"
	BuyPullback      Signal = "BUY_PULLBACK"
	BuyMomentum      Signal = "BUY_MOMENTUM"
	WaitPullback     Signal = "WAIT_PULLBACK"
	WaitOrShortBounce Signal = "WAIT_OR_SHORT_BOUNCE"
	ShortDowntrend   Signal = "SHORT_DOWNTREND"
	ShortBouncesOnly Signal = "SHORT_BOUNCES_ONLY"
	ShortMomentum    Signal = "SHORT_MOMENTUM"
	WaitShortBounce  Signal = "WAIT_SHORT_BOUNCE"
	WaitForReversal  Signal = "WAIT_FOR_REVERSAL"
)

// speculativePrefix marks a reduced-conviction variant of an actionable signal.
const speculativePrefix = "SPEC_"

// Actionable reports whether the signal commits to entering a position
// (buys and shorts; wait states and vetoes are not actionable).
func (s Signal) Actionable() bool {
	base := s.Base()
	switch base {
	case BuyUptrend, BuyPullback, BuyMomentum, ShortDowntrend, ShortBouncesOnly, ShortMomentum:
		return true
	}
	return false
}

// Tradeable reports whether the signal carries any directional content at
// all, i.e. is neither a veto nor "no signal". Trade quality is computed for
// these.
func (s Signal) Tradeable() bool {
	base := s.Base()
	return base != DoNotTrade && base != NoClearSignal
}

// ShortSide reports whether the signal trades the short side; used to select
// the matching stop-loss price.
func (s Signal) ShortSide() bool {
	base := s.Base()
	switch base {
	case ShortDowntrend, ShortBouncesOnly, ShortMomentum, WaitShortBounce:
		return true
	}
	return false
}

// Speculative reports whether the signal carries the reduced-conviction tier.
func (s Signal) Speculative() bool {
	return strings.HasPrefix(string(s), speculativePrefix)
}

// AsSpeculative returns the reduced-conviction variant of an actionable
// signal; non-actionable signals are returned unchanged.
func (s Signal) AsSpeculative() Signal {
	if !s.Actionable() || s.Speculative() {
		return s
	}
	return Signal(speculativePrefix + string(s))
}

// Base strips the speculative prefix.
func (s Signal) Base() Signal {
	return Signal(strings.TrimPrefix(string(s), speculativePrefix))
}
