// SPDX-License-Identifier: MIT
package matrix_test

import (
	"fmt"
	"math"

	"github.com/katalvlaran/batchlap/matrix"
)

// ExampleNewBatch shows the (B, R, C) layout and a transposed element view.
func ExampleNewBatch() {
	bt, _ := matrix.NewBatch(2, 2, 3, []float64{
		1, 2, 3,
		4, 5, 6,

		9, 8, 7,
		6, 5, math.Inf(1),
	})
	v, _ := bt.Element(1)
	tv := v.T()
	fmt.Println(v.Rows(), v.Cols(), tv.Rows(), tv.Cols())
	fmt.Println(tv.Value(0, 1), tv.Forbidden(2, 1))
	// Output:
	// 2 3 3 2
	// 6 true
}

// ExampleWithForbiddenThreshold keeps "big number" placeholders usable.
func ExampleWithForbiddenThreshold() {
	bt, _ := matrix.StackBatch([][][]float64{{{1, 1e18}, {2, 3}}}, matrix.WithForbiddenThreshold(1e15))
	v, _ := bt.Element(0)
	fmt.Println(matrix.CountForbidden(v))
	// Output: 1
}
