// Package cart composes an order before submission.
//
// A Cart is the working set of one staff member: at most one Line per menu
// item, free-text instructions and the order number the kitchen will call.
// Carts are mutated only through a Builder, which also owns the single
// condiment picker slot:
//
//	Idle ──SelectItem(item needing condiment)──> Selecting
//	Selecting ──ToggleCondiment──> Selecting
//	Selecting ──ConfirmCondiments ok──> Idle   (cart updated)
//	Selecting ──ConfirmCondiments invalid──> Selecting
//	Selecting ──CancelSelection──> Idle        (cart unchanged)
//
// Starting a selection for any item discards whatever was pending before.
// Neither Cart nor Builder is safe for concurrent use; each belongs to a
// single session.
package cart
