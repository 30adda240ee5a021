// Package courier provides the delivery partner aggregate of the food ordering
// domain.
//
// The package includes:
//   - Courier: the aggregate root that tracks a partner's identity, last reported
//     position, availability and the single order the partner is carrying
//
// Key business rules:
//   - Couriers must have a valid unique identifier, a name and a valid position
//   - A courier carries at most one order at a time
//   - Only an available courier without an active order can take an order
//   - Completing the active order frees the courier for the next assignment
package courier
