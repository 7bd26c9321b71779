/*
Package arbor generates 3D branching geometry (grass, bushes, trees) from
L-System grammars.

Generation runs in two strictly sequential phases. The grammar engine
rewrites an axiom a fixed number of times with production rules, optionally
rescaling numeric parameters such as F(50) on every substitution. The turtle
interpreter then walks the expanded string and drives the command bound to
each symbol, building a tree of scene nodes whose geometry is a chain of
tapered segments.

# Concept

A grammar is plain data: axiom, rules, command bindings, iteration count and
turtle defaults (angle, width, step length). The Generator owns the common
binding table (rotations, push/pop, taper) and adds forward drawing on 'F'
unless the grammar binds it itself. Caller bindings always shadow the common
ones. Symbols with no binding are inert.

Expansion is deterministic, so results can be cached by grammar fingerprint
in memory, Redis or SQLite (see pkg/adapters).

# Usage

	gen := arbor.New(arbor.WithCache(memory.NewCache()))

	res, err := gen.Recipe(ctx, "grass", "tuft")
	if err != nil {
		log.Fatal(err)
	}
	scene.WriteJSON(os.Stdout, res.Root, true)

Custom grammars are built with pkg/dsl, loaded from YAML/JSON files
(pkg/adapters/file) or from a Loam document library (pkg/adapters/loam).
*/
package arbor
