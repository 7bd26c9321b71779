// Package scene is a minimal scene graph for generated geometry.
//
// Group nodes only hold children. Geometry nodes additionally carry a
// translation relative to their parent and a Mesh: a chain of tapered
// segments, each starting where the previous one ended. Nothing here
// rasterizes; the tree can be inspected, summarized with Collect, or
// serialized with Export.
package scene
