/*
Package domain contains the core model of casegen: the state-machine graph and the test
cases derived from it.

It defines the fundamental entities (states, transitions, the graph that owns them and the
walks produced by a coverage strategy). This package is kept pure and free of external
dependencies like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Graph: A directed multigraph of states. Insertion order is preserved and is the
    tie-break basis for every strategy, so reordering input rows changes the output.
  - Transition: A directed, labeled move between two states. Parallel transitions with the
    same endpoints stay individually addressable through their ID.
  - TestCase: An ordered walk of transitions produced by one strategy run.
  - Step: The (source, label, target) triple handed to printers and writers.
*/
package domain
