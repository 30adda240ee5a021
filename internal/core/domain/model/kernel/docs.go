// Package kernel holds the value objects shared by every aggregate of the food
// ordering domain:
//   - UUID: identifiers for orders, events, users, restaurants and couriers
//   - Money: non-negative decimal amounts (shopspring/decimal), never float
//   - Geo: latitude/longitude points reported by delivery partners
//   - Actor: the authenticated principal and its role
//
// Values are immutable and safe to share between goroutines.
package kernel
