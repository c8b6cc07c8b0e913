/*
Package tui renders the request form in the terminal with Bubble Tea.

# Architecture

Bubble Tea owns the terminal, but it does not own the form state:
  - Key presses arrive as tea.KeyMsg and are pushed into the event queue
    as KeyInput events, in the order the terminal delivered them.
  - A command blocks on the queue and hands each event back to Update,
    which applies it to the form. Update is the only consumer.
  - Every Update is followed by View, so every event renders once. Tick
    events change nothing and only refresh the screen.

# Rendering

View is a pure read of the form:
  - Help line with the bindings of the focused context
  - Method and Url panels, then Query and Body
  - Status, latency and size of the last response
  - Body or Header tab with the scrolled response lines
  - One-line categorized error from the last failed action

JSON bodies are coloured with chroma. The coloured lines are cached by
the response digest.
*/
package tui
