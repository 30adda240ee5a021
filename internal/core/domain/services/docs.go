// Package services provides domain services that orchestrate business operations
// across multiple aggregates of the food ordering domain.
//
// The package includes:
//   - DeliveryAssigner: attaches an available delivery partner to a ready order
//   - SelectionPolicy: the pluggable rule that picks one partner among candidates,
//     with NearestPolicy and RoundRobinPolicy implementations
//
// Domain services coordinate between aggregates, implementing business logic that
// spans more than one aggregate root.
package services
