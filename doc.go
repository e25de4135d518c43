/*
Package casegen generates test cases from finite-state-machine descriptions.

A machine is a directed graph of states and labeled transitions, loaded from an edge
list. casegen derives ordered walks over it ("test cases") with one of four strategies:

  - node: the shortest walk from a begin state to an end state. Either may be "*" to
    expand every pair.
  - path: one walk per transition, reaching it by the shortest route from the entry state
    and optionally continuing to an end state.
  - euler: a single trail covering every transition, repeating as few as possible.
  - all: every simple walk between two states, bounded by depth and count.

# Usage

	eng := casegen.New(casegen.WithLogger(logger))

	g, err := eng.Load(ctx, tabular.NewSource("machine.csv", ""))
	if err != nil {
		log.Fatal(err)
	}

	run, err := eng.Generate(ctx, g, domain.StrategyEuler, casegen.Options{})
	if err != nil {
		log.Fatal(err)
	}
	for _, c := range run.Cases {
		fmt.Println(c)
	}

# Row order

Row order is part of the input contract. States are numbered in order of first
appearance and every strategy breaks ties by that order and by transition order, so the
same file always yields the same cases. The first state seen is the begin state unless
the source declares one.

# Architecture

The core (pkg/domain and the strategies) takes explicit inputs and has no I/O. Sources
(tabular files, Loam documents, memory), case stores (memory, file, Redis, SQLite),
the HTTP and MCP servers and the CLI are adapters around it.
*/
package casegen
