// Package padatious is the module's root package: it holds the sentinel
// errors shared across intents, domain, and padaos. Each sentinel is wrapped
// into a descriptive fmt.Errorf alongside the underlying cause (via a second
// %w verb), so errors.Is against the sentinel succeeds without losing the
// original error.
package padatious

import (
	"errors"
)

var (
	// ErrMissingArtifact is wrapped around a failure to read a persisted
	// .ids/.net/.pos artifact that Load expected to find. A missing .hash
	// file is not an error; it only causes the object to be retrained.
	ErrMissingArtifact = errors.New("padatious: missing artifact")

	// ErrNoSuchIntent is wrapped around an operation naming an intent that
	// was never registered.
	ErrNoSuchIntent = errors.New("padatious: no such intent")

	// ErrNoSuchDomain is wrapped around an operation naming a domain that
	// was never registered. Note calc_intent/calc_intents themselves never
	// return this — an unknown domain there yields a null MatchData, per
	// the UnknownDomain policy; this sentinel is for mutating operations
	// (e.g. removing intents from a domain that doesn't exist).
	ErrNoSuchDomain = errors.New("padatious: no such domain")

	// ErrMalformedTemplate is wrapped around a padaos template line that
	// could not be compiled into a valid regex. calc_intents/calc_intent
	// skip the offending line rather than returning this; it exists for
	// callers (e.g. a CLI validate command) that want to surface the
	// failure instead of silently dropping it.
	ErrMalformedTemplate = errors.New("padatious: malformed template")
)
