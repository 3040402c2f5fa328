// Package testdb provides test database utilities for the Skirmish API.
//
// Each call to New connects to the SurrealDB instance named by the
// TEST_DB_HOST, TEST_DB_PORT, TEST_DB_USER and TEST_DB_PASSWORD variables,
// selects a fresh namespace and applies the schema. Tests are skipped when
// the instance cannot be reached, so unit test runs need no database.
//
//	func TestSomething(t *testing.T) {
//	    tdb := testdb.New(t) // namespace removed on cleanup
//	    repo := repository.NewPlayerRepository(tdb.DB)
//	}
package testdb
