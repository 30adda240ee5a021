// Package cart implements the Cart aggregate: a customer's unsubmitted selection of
// menu items from a single restaurant.
//
// Key business rules:
//   - a non-empty cart is bound to exactly one restaurant
//   - adding an item of another restaurant fails with ErrRestaurantMismatch and leaves
//     the cart untouched
//   - setting a quantity of zero or less removes the line
//   - the subtotal is recomputed from the lines on every call
package cart
