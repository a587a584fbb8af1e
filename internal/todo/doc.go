// Package todo defines tasks, statuses and filters, and encodes the
// persisted task collection.
//
// The persisted representation is a JSON array of task objects, validated
// against the embedded tasks.schema.json on decode:
//
//	[
//	  {"id": 0, "desc": "buy milk", "status": "OPEN"},
//	  {"id": 1, "desc": "write report", "status": "DONE"}
//	]
//
// # Task Status Values
//
//   - "OPEN": not started
//   - "INPROGRESS": being worked on
//   - "DONE": finished; may be reopened
//
// Any status may move to any other status. The closed set above is the only
// guard, and an unknown value is reported as an *InvalidStatusError.
//
// # Filters
//
// A Filter is either ALL or one of the status values. It selects which tasks
// are displayed and is never stored on a task.
package todo
