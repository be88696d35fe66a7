package comb

// Declare returns a named placeholder parser with no behavior. Placeholders
// let mutually recursive grammars reference a rule before it is defined:
// declare it, build the real grammar against the placeholder, then Replace
// its behavior once the grammar is assembled. Running an unresolved
// placeholder panics.
//
// From is the safer way to tie a recursive grammar together; Declare and
// Replace are the explicit escape hatch.
func Declare(name string) *Parser {
	return &Parser{name: name}
}

// Replace overwrites target's behavior with source's behavior, in place.
// Target keeps its identity and display name, so every existing reference
// to it picks up the new behavior immediately; clones taken before the call
// do not.
//
// Replace mutates the target and is not safe to call concurrently with a
// parse that can reach it. It is meant for grammar assembly, before any
// parsing starts.
func Replace(target, source *Parser) {
	if target == nil || source == nil {
		panic("comb: Replace requires both parsers")
	}
	if source.run == nil {
		panic("comb: Replace source has no behavior")
	}
	target.run = source.run
}

// Clone returns a new parser with the same current behavior and display
// name as p but a distinct identity. Rebinding p afterwards does not affect
// the clone: it is a snapshot.
func Clone(p *Parser) *Parser {
	if p == nil {
		panic("comb: Clone requires a parser")
	}
	return &Parser{name: p.name, run: p.run}
}
