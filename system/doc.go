// Package system assembles the topology of a simple simulated computer from
// a configuration.
//
// The assembled system is either a CPU wired straight to the system memory
// bus:
//
//	CPU ─┬─ MemBus ── MemCtrl
//	     └─┘
//
// or, with caches enabled, a two-level hierarchy:
//
//	CPU ── ICache ─┬─ L2Bus ── L2Cache ── MemBus ── MemCtrl
//	    └─ DCache ─┘
//
// In both cases the system port of the root device is also attached to the
// memory bus.
package system
