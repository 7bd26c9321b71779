/*
Package ports defines the driven ports (interfaces) for the arbor generator.

These interfaces decouple generation from external implementations, allowing
grammars to come from different sources and expansions to be cached in
different backends.

# Key Interfaces

  - GrammarLoader: Retrieves grammar definitions (e.g., from files, Loam or memory).
  - ExpansionCache: Stores expanded strings keyed by grammar fingerprint.
  - DistributedLocker: Coordinates expansion of the same grammar across replicas.
  - Generator: The stateless generation core used by the HTTP and MCP adapters.
*/
package ports
