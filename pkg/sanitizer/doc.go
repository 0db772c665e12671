// Package sanitizer provides input normalization for customer-submitted
// booking data.
//
// All normalization functions are idempotent - applying them multiple times
// produces the same result. Functions handle invalid input gracefully,
// typically by returning empty strings or empty slices rather than errors.
//
// Normalization includes:
//   - Phone numbers: convert to E.164 format (+[country][number])
//   - Strings: collapse whitespace, trim leading/trailing spaces
//   - Add-on identifiers: lowercase, deduplicate, drop empties
package sanitizer
