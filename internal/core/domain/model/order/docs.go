// Package order provides the Order aggregate produced by submitting a cart
// and the Status workflow that is the only thing allowed to change afterwards.
//
// The package includes:
//   - Order: the persisted record with order number, items, instructions,
//     total, status, placement time and submitting staff member
//   - Item, Condiment: by-value snapshots of cart lines and chosen condiments,
//     so later catalog changes never alter historical orders
//   - Staff: identity of the staff member who placed the order
//   - Status: a closed enumeration with a single-step workflow
//
// Key business rules:
//   - Orders are created in the Placed status and their identifier is
//     assigned by the order store
//   - Every field except status is write-once
//   - Any status other than Completed advances to Completed; Completed is terminal
//   - Pending is reserved: it is accepted when reading but never produced
package order
