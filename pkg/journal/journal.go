// Package journal implements TraceLog's durable user memory: the profile
// aggregate, the merge rules that fold one diary extraction into it, the
// id-based todo reconciler, and the bounded context digest fed back into
// the next model call.
package journal
