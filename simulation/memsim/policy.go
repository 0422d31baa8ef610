package memsim

// Desired number of frames per process
type Allocation map[Tpid]int

// A Policy computes the desired allocation for the live processes, given
// the total number of frames. It looks only at the processes, never at
// which frames are actually in use.
type Policy func(procs []*Proc, nframe int) Allocation

func (al Allocation) Sum() int {
	n := 0
	for _, v := range al {
		n += v
	}
	return n
}
