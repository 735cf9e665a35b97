// Package graph is the graph store client: a thin adapter over the Neo4j Go
// driver that executes Cypher with bound parameters and hands back rows of
// plain, JSON-safe values.
//
// # Layers
//
//   - GraphClient: connection-level interface (Query in read transactions,
//     Exec in write transactions, Health probes)
//   - Neo4jClient: driver-backed implementation; the driver is created lazily
//     and reused
//   - TracedClient: OpenTelemetry decorator
//   - Store: the tagged-result surface used by the question pipeline; Execute
//     never returns an error, failures come back as ExecuteResult with a kind
//   - MockGraphClient: scripted client for tests
//
// # Result normalization
//
// Nodes and relationships are flattened to their property maps, paths to the
// list of their nodes, lists element-wise, and temporal values to ISO strings,
// so every row marshals to JSON without custom encoders.
package graph
