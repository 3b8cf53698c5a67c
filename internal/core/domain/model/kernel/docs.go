// Package kernel contains the shared value objects of the fulfillment domain:
// identifiers, tenant scoping, money, and the physical quantities (dimensions,
// weight) that rating is computed over.
//
// All types in this package are immutable value objects. The zero value of each
// type is invalid and must be constructed through the provided factory
// functions, which validate their inputs. This keeps every aggregate that is
// built from kernel values valid by construction.
//
// TenantID deserves a special note: it is the capability object that every core
// operation requires explicitly. Persistence adapters filter every query by it,
// and no aggregate can be constructed without one, which makes cross-tenant
// access a compile-time rather than an audit-time concern.
package kernel
