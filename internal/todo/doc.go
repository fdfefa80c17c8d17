// Package todo holds the to-do list: an insertion-ordered slice of tasks,
// the current view filter, and the persisted mirror of the list.
//
// Every mutation persists the whole list under a single key before
// returning, so the in-memory list and storage never drift within a
// session. Rendering lives elsewhere; Store only answers what is visible.
package todo
