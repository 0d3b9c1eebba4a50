// Package order provides domain entities and business logic for certified
// translation orders. It implements the Order aggregate root with lifecycle
// management across two independent status axes.
//
// The package includes:
//   - Order: The aggregate root holding order identity, text inputs, and page results
//   - Status: The business/delivery axis: Pending -> Paid -> Processing -> Completed, with Failed
//   - ProcessingStatus: The reconstruction-engine axis: Idle -> Processing -> Ready, with Failed
//   - PaymentStatus: Unpaid/Paid, owned by the payment collaborator
//   - PageResult: One reconstructed page image reference with its merge sequence number
//
// Key business rules:
//   - Page results are append-only, duplicate-free by URL, and ordered by merge commit
//   - ProcessingStatus is Ready once at least one page result has been merged
//   - A failure signal never removes accumulated page results and never regresses Ready
//   - Dispatch requires Ready processing and confirmed payment, and completes an order exactly once
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
// All transition methods are side-effect-free with respect to persistence;
// saving a mutated aggregate is the caller's responsibility.
package order
