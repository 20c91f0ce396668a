package chaos_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/galaxy/pkg/core/chaos"
	"github.com/matzehuels/galaxy/pkg/core/vec"
)

func ExampleSelector() {
	for i := 0; i < 6; i++ {
		fmt.Print(chaos.Selector(i), " ")
	}
	fmt.Println()
	// Output: 0 2 1 2 1 2
}

func ExampleGenerate() {
	cfg := chaos.Config{
		SeedCount:  3,
		BaseSeed:   0.5,
		PointCount: 4,
		RsqAddVar3: 0.1,
		Mode:       chaos.ModeCorrected,
	}
	points, err := chaos.Generate(context.Background(), cfg, vec.Zero)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, p := range points {
		fmt.Println(p.Index, p.Selector)
	}
	// Output:
	// 0 0
	// 1 2
	// 2 1
	// 3 2
}

func ExampleIterator_Next() {
	cfg := chaos.Config{SeedCount: 1, PointCount: 5}
	it, _ := chaos.NewIterator(cfg, vec.Zero)
	for {
		p, err := it.Next()
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Println("point", p.Index, "selector", p.Selector)
	}
	// Output:
	// point 0 selector 3
	// iteration 1: INDEX_OUT_OF_RANGE: selector 2 exceeds seed sequence of length 1
}
