// Package fixtures provides test data factories for the Skirmish API.
//
// Records are written through the real repositories, so a fixture has
// exactly the shape the API would have stored.
//
//	f := fixtures.New(tdb.DB)
//	fm := f.CreateFieldMap(t, fixtures.WithFieldMapType(model.FieldMapTypeMato))
//	ana := f.CreatePlayer(t, fixtures.WithAPD("AB1", time.Now().AddDate(1, 0, 0)))
//	game := f.CreateGame(t, fixtures.OnFieldMap(fm), fixtures.WithDevice("device-01", ana))
//
// Names get a random suffix, so fixtures never collide within a namespace.
// Test data goes away with the testdb namespace.
package fixtures
