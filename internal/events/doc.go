/*
Package events carries every input of the form through one ordered queue.

# Overview

Producers never touch form state. They build Event values and hand them to
a Sender:
  - keyboard input (RunInput, or the Bubble Tea reader in the TUI)
  - the periodic ticker (RunTicker)
  - the one-shot network completion started by the form's mediator

A single consumer takes events off the Queue in arrival order and applies
them. Run is the headless consumer; the TUI consumes the same queue from its
Update loop.

# Ordering

Events from one producer arrive in the order they were sent. No ordering is
promised across producers.

# Shutdown

Close makes every later Send fail with ErrClosed. A producer that sees a
failed Send logs it and returns.
*/
package events
