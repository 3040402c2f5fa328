// Package helpers provides test utility functions for the Skirmish API.
//
// # Requests
//
// Build and serve requests against any http.Handler:
//
//	rec := helpers.NewRequest(t, http.MethodPost, "/players").
//		WithBody(map[string]interface{}{"name": "Ana"}).
//		Do(h)
//
// # Assertions
//
//	helpers.AssertStatus(t, rec, http.StatusCreated)
//	helpers.AssertValidationError(t, rec, "socialLinks[0].url")
//	helpers.AssertRecordExists(t, db, "player", created.ID)
//
// DecodeData unwraps the {"data": ...} envelope of a success response.
package helpers
