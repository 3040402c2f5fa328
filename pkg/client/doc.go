// Package client is a Go client for the Skirmish API.
//
// Every method issues a single HTTP request and unwraps the {"data": ...}
// envelope. Non-2xx responses come back as *Error, which wraps
// ErrRequestFailed and carries the problem document when the server sent one:
//
//	c := client.New("http://localhost:8080")
//	games, err := c.SearchGames(ctx, "device-01")
//	var apiErr *client.Error
//	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
//		// device is not on any planned game
//	}
package client
