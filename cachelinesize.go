package ringmap

import (
	"unsafe"

	"golang.org/x/sys/cpu"
)

// CacheLineSize is the cache line size of the target CPU.
// It's automatically calculated using the `golang.org/x/sys` package.
const CacheLineSize = unsafe.Sizeof(cpu.CacheLinePad{})

// slabLen is the number of nodes per arena slab, always a power of 2.
const slabLen = uint32(CacheLineSize)
