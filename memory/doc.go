// Package memory provides the slot allocators behind vector storage.
//
// An allocator hands out buffers of exactly n zeroed slots and takes
// them back once their owner has moved or destroyed the elements in
// them. Three implementations are provided:
//
//   - Heap: plain make, the default.
//   - Limit: a slot budget in front of another allocator. Used to bound
//     memory and to exercise allocation-failure paths.
//   - PoolAllocator: recycles released buffers by exact capacity
//     through sync.Pool.
//
// Only PoolAllocator and Limit are safe for concurrent use; vectors
// sharing a Heap need no coordination since Heap holds no state.
package memory
