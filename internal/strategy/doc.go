/*
Package strategy derives test cases from a domain.Graph.

# Strategies

  - node: the shortest walk between two states (breadth-first search, insertion-order expansion).
  - path: one case per transition, reached by the shortest walk from an entry state.
  - euler: a single trail that covers every transition, repeating as few as possible.
  - all: every simple path between two states, bounded by depth and case limits.

All strategies are deterministic: given the same graph (same row order) they return the
same cases. None of them mutates the graph.
*/
package strategy
