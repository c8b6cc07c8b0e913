/*
Package types defines the value types shared between the form, the transport
and the renderers.

# Request Types

HttpRequest:
  - Derived from the Method, Url and Body fields at submit time
  - Never stored by the form; rebuilt on every submit

# Response Types

RequestResult:
  - Raw transport output: status, ordered headers, body text, elapsed time
  - Produced by executor.Execute

Response:
  - The Response Model shown by the form
  - Body already split into display lines
  - Installed as a whole; never patched field by field

# Thread Safety

Values are built on the transport goroutine and handed to the consumer loop
inside a single event. Once delivered they are treated as read-only.
*/
package types
