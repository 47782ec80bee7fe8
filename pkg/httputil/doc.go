// Package httputil fetches remote assets (issuer logos) over HTTP.
//
// [Client.Fetch] performs a GET with a timeout, a body size limit and
// retries. Network failures, 5xx responses and 429 responses are retried
// with exponential backoff; 404 maps to [ErrNotFound] so callers can fall
// back to a placeholder. Every request is reported to the
// observability.HTTP hooks.
//
//	c := httputil.NewClient()
//	data, err := c.Fetch(ctx, "https://cdn.example.com/logo.png")
//	if errors.Is(err, httputil.ErrNotFound) {
//	    // draw the placeholder box
//	}
package httputil
