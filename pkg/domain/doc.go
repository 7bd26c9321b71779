/*
Package domain contains the core domain models of the arbor generator.

It defines the entities shared by the grammar engine and the turtle
interpreter, and the interfaces of the scene-graph collaborators they build
into. This package is kept pure and free of I/O or persistence, following
Hexagonal Architecture principles.

# Key Entities

  - Symbol: a single grammar/command character, optionally followed by a
    parenthesized numeric parameter such as F(50).
  - Grammar: axiom, production rules, command bindings and turtle defaults.
  - Rule: a replacement string plus an optional ParamTransform.
  - Command: a side-effecting handler bound to a symbol.
  - TurtleState: the interpreter context threaded through both phases,
    including the branch Frame stack and the caller-owned Data side channel.
  - Node, GeometryNode, NodeFactory: the scene-graph collaborator interfaces.
*/
package domain
