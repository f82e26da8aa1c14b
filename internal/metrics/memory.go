package metrics

import "runtime"

// MemorySnapshot holds the heap figures recorded after an evaluation.
type MemorySnapshot struct {
	HeapAlloc uint64 // bytes in use by the application
	NumGC     uint32 // completed GC cycles
}

// readMemory reads the current heap statistics.
func readMemory() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{HeapAlloc: m.HeapAlloc, NumGC: m.NumGC}
}
