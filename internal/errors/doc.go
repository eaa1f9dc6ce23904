// Package errors provides structured error handling for the engine.
//
// All engine operations return typed *Error values carrying a Code, a
// message safe to hand across the dispatch boundary, an optional wrapped
// cause, and optional metadata. Errors are never used for normal control
// flow; callers branch on codes via the IsX helpers or GetCode.
//
// Usage:
//
//	if profile.Coins < cost {
//	    return errors.InsufficientResourcef("need %d coins, have %d", cost, profile.Coins)
//	}
//
// Cooldown errors carry the remaining duration in metadata:
//
//	err := errors.CooldownActive("adventure", 17*time.Minute)
//	errors.CooldownRemaining(err) // 17m0s
//
// Storage failures are wrapped as Unavailable or Internal so user-correctable
// errors stay distinguishable from fatal ones.
package errors
