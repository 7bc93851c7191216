/*
Package tokenizer implements the contextual tokenizer at the core of the
text shaping pipeline.

A [Tokenizer] walks a sequence of Unicode code points once, emitting a
fixed set of events ([EventStart], [EventNext], [EventNewToken],
[EventContextStart], [EventContextEnd], [EventEnd]) as it goes. Registered
[ContextChecker] predicates turn that walk into a set of named, half-open
[ContextRange]s (e.g. "latinWord", "arabicSentence"), and registered
modifiers attach per-token state ([Token.State]) as each token is created.

After the initial pass, callers mutate the token stream with destructive
edit operations (insert/remove/replace and their range variants). Every
edit recomputes context ranges from the current token vector before
returning, unless the caller asks for silent mode to batch several edits
via [Tokenizer.ComposeRUD].

Bootstrapping contract

Six mutating events — [EventInsertToken], [EventRemoveToken],
[EventRemoveRange], [EventReplaceToken], [EventReplaceRange] and
[EventComposeRUD] — are auto-subscribed at construction time to the
tokenizer's own range-recomputation step. User-registered handlers for
these events always run after that recomputation has already happened.
*/
package tokenizer

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'otshaper.tokenizer'
func tracer() tracing.Trace {
	return tracing.Select("otshaper.tokenizer")
}

// assert panics when condition is false. It is reserved for programmer
// misuse that cannot produce sensible output, as opposed to the soft,
// returned failures OpError carries.
func assert(condition bool, msg string) {
	if !condition {
		panic("tokenizer: " + msg)
	}
}
