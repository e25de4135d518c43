/*
Package ports defines the driven ports (interfaces) around the casegen core.

These interfaces decouple strategy runs from where machines come from and where
generated cases end up.

# Key Interfaces

  - GraphSource: produces the transition rows of a machine (tabular files, Loam documents, memory).
  - Beginner: optionally names the begin state of a source.
  - StateLister: optionally declares states that have no transitions.
  - Watchable: optionally reports changes to a source.
  - CaseStore: persists generated runs (memory, file, Redis, SQLite).
*/
package ports
