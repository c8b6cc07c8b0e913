/*
Package executor performs the HTTP call behind the request form.

# Overview

Execute sends one request and returns the raw result:
  - Method, URL and body taken from the form
  - Response headers in the order the server sent them
  - Elapsed time and body sizes
  - Custom CA certificates and InsecureSkipVerify for development

Transport failures (DNS, refused connections, timeouts, TLS) are returned as
errors. Every HTTP status, including 4xx and 5xx, is a successful result.

# Header Order

net/http collects response headers into a map. Each request uses a
dedicated HTTP/1.1 connection that records the raw response head, and the
recorded names are used to rebuild the receipt order.

# Response Model

ToResponse turns a result into the model the form displays: JSON bodies are
pretty-printed, other bodies are split on newlines, and the body digest is
computed so identical responses can be detected.

# Example Usage

	req := &types.HttpRequest{Method: "GET", URL: "http://localhost:8080/users?page=2"}

	result, err := executor.Execute(ctx, req, executor.Options{Timeout: 30 * time.Second})
	if err != nil {
		return err
	}

	resp := executor.ToResponse(result)
	fmt.Println(resp.Status, executor.FormatSeconds(resp.Elapsed))

# Thread Safety

Execute is safe to call concurrently. Each call builds its own client and
connection.
*/
package executor
