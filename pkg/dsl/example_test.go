package dsl_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/casegen"
	"github.com/aretw0/casegen/pkg/domain"
	"github.com/aretw0/casegen/pkg/dsl"
)

func ExampleBuilder() {
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
	ctx := context.Background()

	g, err := eng.Load(ctx, machine)
	if err != nil {
		log.Fatal(err)
	}
	run, err := eng.Generate(ctx, g, domain.StrategyPath, casegen.Options{})
	if err != nil {
		log.Fatal(err)
	}
	for _, c := range run.Cases {
		fmt.Println(c)
	}
	// Output:
	// closed--open-->opened
	// closed--lock-->locked
	// closed--open-->opened--close-->closed
	// closed--lock-->locked--unlock-->closed
}
