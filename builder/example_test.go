package builder_test

import (
	"fmt"

	"github.com/katalvlaran/epinet/builder"
	"github.com/katalvlaran/epinet/network"
)

// ExampleBuild enrolls adults and wires a random partner network with mean
// out-degree 2.
func ExampleBuild() {
	ages := []int{12, 25, 31, 44, 58, 67, 19, 40}
	adult := func(age int) bool { return age >= 18 && age <= 60 }

	net := network.New[int]("partners")
	err := builder.Build(net, []builder.BuilderOption{builder.WithSeed(1)},
		builder.EnrollWhere(ages, adult, 1.0),
		builder.RandomMeanDegree[int](2.0),
	)
	fmt.Println(err, net.Size(), net.EdgeCount())

	// Output:
	// <nil> 6 12
}
