package wfc

import (
	"fmt"
)

// DebugREPL is an interactive step-by-step inspector for a State,
// adapted from the teacher's console BIOS debugger: print state, read a
// command rune, switch on it. Where the original pointed a breakpoint
// list and memory dump at a CPU, this points a cell dump and a
// run-to-finish loop at the wave.
func (s *State) DebugREPL() {
	for {
		fmt.Printf("wfc step=%d restarts=%d patterns=%d output=%dx%d\n",
			s.stepNum, s.restarts, s.patterns.Len(), s.outW, s.outH)
		fmt.Println("(S)tep - observe+propagate once")
		fmt.Println("(R)un - run to completion")
		fmt.Println("(U)ndecided - list undecided cell count")
		fmt.Println("(C)ell - dump one cell's allowed patterns")
		fmt.Println("(Q)uit")
		fmt.Printf("Choice: ")

		var in rune
		fmt.Scanf("%c\n", &in)

		switch in {
		case 'q', 'Q':
			return
		case 's', 'S':
			res, err := s.Step()
			fmt.Printf("-> %s (err=%v)\n\n", res, err)
		case 'r', 'R':
			res, err := s.Run()
			fmt.Printf("-> %s (err=%v)\n\n", res, err)
		case 'u', 'U':
			fmt.Printf("undecided cells: %d\n\n", s.countUndecided())
		case 'c', 'C':
			var x, y int
			fmt.Printf("x: ")
			fmt.Scanf("%d\n", &x)
			fmt.Printf("y: ")
			fmt.Scanf("%d\n", &y)
			fmt.Printf("(%d,%d): allowed = %v\n\n", x, y, s.ReadCell(x, y))
		}
	}
}

func (s *State) countUndecided() int {
	n := 0
	for y := 0; y < s.outH; y++ {
		for x := 0; x < s.outW; x++ {
			if len(s.ReadCell(x, y)) != 1 {
				n++
			}
		}
	}
	return n
}
