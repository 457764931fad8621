package analysis_test

import (
	"fmt"
	"testing"

	"github.com/speleotools/caveline/analysis"
	"github.com/speleotools/caveline/stationgraph"
)

// ladder builds a 2×n grid: n-1 rungs close n-1 cycles.
func ladder(n int) *stationgraph.Graph {
	g := stationgraph.New()
	for i := 0; i < n-1; i++ {
		g.AddLeg(fmt.Sprintf("L%d", i), fmt.Sprintf("L%d", i+1), 1)
		g.AddLeg(fmt.Sprintf("R%d", i), fmt.Sprintf("R%d", i+1), 1)
	}
	for i := 0; i < n; i++ {
		g.AddLeg(fmt.Sprintf("L%d", i), fmt.Sprintf("R%d", i), 1)
	}

	return g
}

func BenchmarkFindCycles(b *testing.B) {
	g := ladder(500)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := analysis.FindCycles(g); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkShortestPath(b *testing.B) {
	g := ladder(500)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := analysis.ShortestPath(g, "L0", "R499"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBoundedComponent(b *testing.B) {
	g := ladder(500)
	terms := []string{"L250", "R250"}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := analysis.BoundedComponent(g, "L0", terms); err != nil {
			b.Fatal(err)
		}
	}
}
