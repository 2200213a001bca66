package junction_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/junctree/inference"
	"github.com/katalvlaran/junctree/junction"
	"github.com/katalvlaran/junctree/symbolic"
)

// ExampleNew builds the junction tree of the chain A─B─C and eliminates it
// with the structural eliminator.
//
//	A───B───C    ordering A, B, C
func ExampleNew() {
	fg := inference.NewFactorGraph(
		symbolic.NewFactor("A"),
		symbolic.NewFactor("A", "B"),
		symbolic.NewFactor("B", "C"),
	)
	jt, err := junction.New(fg, inference.Ordering{"A", "B", "C"})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Print(jt)

	bt, err := junction.Eliminate[symbolic.Conditional](context.Background(), jt, symbolic.Eliminator{})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Print(bt)
	// Output:
	// B,C (1)
	//   A : B (2)
	// B,C P(B,C)
	//   A : B P(A|B)
}
