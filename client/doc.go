// Package client provides the shared HTTP plumbing behind every TikHub
// endpoint package.
//
// TikHub aggregates public data from TikTok, Douyin, Instagram, Xiaohongshu,
// Weibo, YouTube and other platforms behind one REST API. Each operation is a
// GET with query parameters or a POST with a JSON body, authenticated with a
// bearer token.
//
// # Architecture
//
// The package is organized into several components:
//
//   - Client: base URL, credentials, headers, cookies and the pooled
//     *http.Client shared by all calls
//   - Endpoint: a declared operation (method, path, argument type, result
//     model) with four call shapes
//   - Response and Result: the raw HTTP response and its decoded body
//   - Future: the pending result of an asynchronous call, with Gather and Map
//     helpers for fan-out
//   - Errors: sentinel errors and UnexpectedStatusError
//
// # Usage
//
// Create a client with your API token:
//
//	logger := zerolog.New(os.Stderr)
//	c, err := client.NewAuthenticatedClient(
//		client.DefaultBaseURL,
//		os.Getenv("TIKHUB_TOKEN"),
//		logger,
//		client.WithTimeout(20*time.Second),
//		client.WithRaiseOnUnexpectedStatus(true),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Endpoints are package-level values in the api packages:
//
//	params := appv3.FetchOneVideoParams{AwemeID: "7339393672959757570"}
//	result, err := appv3.FetchOneVideo.Do(ctx, c, params)
//
// Every endpoint offers the same four calls:
//
//   - Detailed: blocks and returns *Response[T] with status, body and headers
//   - Do: blocks and returns only the decoded *Result[T]
//   - DetailedAsync and Async: the same calls running in a goroutine,
//     returning a *Future
//
// All four send the same request for the same arguments.
//
// # Optional Parameters
//
// Optional query parameters are optional.Value fields. Unset and null values
// are left out of the query string entirely; required parameters are plain
// fields and are always sent.
//
// # Error Handling
//
// A 200 decodes into the endpoint's model (Result.OK) and a 422 into
// models.HTTPValidationError (Result.Invalid). Any other status is unexpected:
// with WithRaiseOnUnexpectedStatus(true) the call fails with
// *UnexpectedStatusError, otherwise the result is nil and err is nil.
//
//	var statusErr *client.UnexpectedStatusError
//	if errors.As(err, &statusErr) {
//		if statusErr.IsUnauthorized() {
//			// Handle auth failure
//		}
//	}
//
// Requests are never retried. WithRateLimit adds an opt-in client-side
// throttle.
package client
