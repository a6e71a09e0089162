// Package jsmn gives typed, allocation-free access to the top-level members of
// a JSON document.
//
// A Parser owns a fixed number of token slots chosen at construction. Parse
// runs a tokenizing engine over the bound source and fills those slots with
// typed spans; lookups then resolve a key to its value token and convert the
// span on demand. Nothing is decoded up front and no object model is built.
//
//	p := jsmn.New(16, jsmn.WithJSON(`{"id": 7, "name": "box"}`))
//	if _, err := p.Parse(); err != nil {
//		return err
//	}
//	id := jsmn.Get[int](p, "id")
//	name := jsmn.Get[jsmn.StringView](p, "name")
//
// Get collapses every failure into the zero value. Lookup and Decode report
// why a lookup failed through the sentinel errors of this package.
//
// String views alias the source string. They stay valid for as long as they
// are referenced, which also keeps the whole source alive; call
// StringView.Clone to keep a value without the document.
//
// A Parser is not safe for concurrent use while it is being parsed or
// rebound. Once parsed, any number of goroutines may read from it.
package jsmn
