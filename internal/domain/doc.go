// Package domain defines the storefront's entity model: users, the product
// catalog (categories, products, reviews, testimonials), cart items, and
// orders, together with the Insert* payload forms used to create them.
//
// Entities are backend-agnostic. Every storage backend persists and returns
// these exact types; the mapping between snake_case database columns and the
// camelCase fields below is the responsibility of each backend.
package domain
