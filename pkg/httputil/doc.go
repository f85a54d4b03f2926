// Package httputil provides HTTP helpers shared by outbound API clients.
//
// [Retry] re-runs an operation with exponential backoff while it fails with
// a [RetryableError]. Clients wrap transient failures (connection errors,
// 5xx responses, 429 rate limits) and leave permanent ones unwrapped:
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    ...
//	})
//
// [CheckStatus] classifies response codes that way, [CheckResponse] also
// carries a Retry-After hint into the wait, and [NewHTTPClient] returns a
// client with a default timeout.
package httputil
