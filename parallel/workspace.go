package parallel

import "sync"

const pooledIntSize = 64

// intPool reuses []int scratch buffers across parallel leaves, the
// same role the teacher's floatPool/intPool play in pool.go
// (getFloats/getInts, putFloats/putInts) for CSR/Vector construction
// workspaces.
var intPool = sync.Pool{
	New: func() any { return make([]int, 0, pooledIntSize) },
}

func getWorkspace() []int { return intPool.Get().([]int)[:0] }

func putWorkspace(buf []int) { intPool.Put(buf) }
