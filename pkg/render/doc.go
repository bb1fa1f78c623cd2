// Package render converts validated dependency trees into display formats.
//
// Three formats are supported:
//
//   - [Text]: the canonical line-per-relation text form, identical to
//     [deptree.Tree.String] but streamed to a writer
//   - [ToDOT]: Graphviz DOT for node-link diagrams
//   - [SVG]: DOT rendered to SVG via goccy/go-graphviz
//
// All output is deterministic: nodes follow declaration order and implicit
// leaves follow first-reference order, so structurally identical trees
// produce byte-identical artifacts. Determinism is what makes the render
// cache (pkg/cache) safe to key on a content hash.
package render
