// Package reactive provides state cells, derived expressions and the
// dispatch hub that re-applies bindings when a cell changes.
//
// # State Cells
//
// A State holds one mutable value. Set stores the value, fires OnSet
// callbacks and notifies every Hub with bindings registered against the cell:
//
//	count := reactive.NewState(0)
//	count.OnSet(func(c reactive.Change[int]) {
//	    log.Printf("count %d -> %d", c.Old, c.New)
//	})
//	count.Set(count.Value() + 1)
//
// # Expressions
//
// Expr derives a value from operands. The closure form receives the current
// operand values in order:
//
//	big := reactive.Is(func(args ...any) any {
//	    return args[0].(int) > 10 && args[1].(bool)
//	}, count, enabled)
//
// Compile builds the same node from expression text, evaluated as HCL:
//
//	big, err := reactive.Compile("count > 10 && enabled", reactive.Vars{
//	    "count":   count,
//	    "enabled": enabled,
//	})
//
// # Dispatch
//
// A Hub keeps an ownership table from cell to bindings, grouped by owner in
// registration order. Notify queues the bindings of a cell and drains the
// queue synchronously. A binding that sets another cell while the queue is
// draining only appends work, so nested updates never grow the call stack.
// Each drain is bounded by a limit that catches update cycles.
//
// Cells, expressions and hubs are NOT thread-safe. Use them from a single
// goroutine, the one driving the document.
package reactive
