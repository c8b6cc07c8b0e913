/*
Package form holds the request form: its fields, the single focus value
that routes keys to exactly one of them, the Url/Query synchronizer and the
request mediator.

# Focus

The Form owns one focus.Position and an editing flag. Every field state is
derived from those two values, so at any time exactly one field is Focused
or Editing and all others are Unfocused. ChangeFocus events are the only
way focus moves.

# Events

Form implements events.Handler. Key handlers never change focus or submit
directly; they send ChangeFocus, Request, SetQuery and Quit events back
into the queue, and the consumer loop applies them in arrival order.

# Synchronizer

Editing the Url sends SetQuery with the text after the first '?'.
Editing the Query sends SetQuery with its lines joined by '&'. Both sides
only send when the derived value differs from the other view, and the
receiving view ignores values it already holds, so the two views never
ping-pong.

# Mediator

A Request event snapshots Method, Url and Body, and runs the Transport in a
goroutine. The result comes back as a Response event. While a request is
in flight further Request events are dropped. A failed request never
replaces the last successful response.
*/
package form
