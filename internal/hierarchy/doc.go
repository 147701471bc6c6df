// Package hierarchy turns flat, parent-pointer based task lists into ordered
// trees and back out into the shapes the API and editing controls need.
//
// Every function works on an explicit snapshot of tasks and returns fresh
// values. Nothing is cached between calls and nothing performs I/O, so the
// package is safe for concurrent use. Links between tasks are resolved
// through an Index (id -> task) rather than live pointers; cycles can exist
// in storage but ValidateReparent refuses every write that would add one.
//
// Tree walks use explicit stacks, so depth is bounded by memory rather than
// the goroutine stack.
package hierarchy
