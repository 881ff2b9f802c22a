// Package settings provides the persistent, schema-checked application
// settings store and its bindings to UI object properties.
//
// # Schema and values
//
// Every key is declared in a [Schema] with a [Kind] and a default. Values
// have fixed Go types:
//
//	KindString  string
//	KindBool    bool
//	KindFloat   float64
//	KindInt     int64
//	KindTuple   []uint32 of the declared arity
//
// Reading or writing an undeclared key fails with UNKNOWN_KEY; a value of the
// wrong type or arity fails with TYPE_MISMATCH.
//
// # Backends
//
// [Settings.Load] and [Settings.Save] move values through a [Backend].
// [TOMLBackend] persists to a TOML file under the user config directory;
// [MemoryBackend] keeps values in memory for tests.
//
// # Bindings
//
// A [Binding] ties a key to a named property of an [Object]. Once bound, the
// property takes the current setting and both sides stay equal: changing
// either one pushes the value across, with optional [Mapping] transforms in
// each direction.
//
//	err := s.BindAll([]settings.Binding{
//	    {Key: "pen-sounds", Target: window, Property: "pen-sounds"},
//	})
package settings
