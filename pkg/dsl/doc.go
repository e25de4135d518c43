/*
Package dsl provides a fluent Go API for declaring state machines in code.

It is an alternative to edge-list files and Loam directories when a machine is small,
generated, or belongs to a unit test. The built Machine is a ports.GraphSource that also
reports its begin state and every declared state, so states without transitions survive
loading.

Example usage:

	b := dsl.New("door")

	b.State("closed").
		On("open", "opened").
		On("lock", "locked")

	b.State("opened").On("close", "closed")
	b.State("locked").On("unlock", "closed")

	machine, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}

	eng := casegen.New()
	g, err := eng.Load(ctx, machine)
*/
package dsl
