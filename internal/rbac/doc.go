// Package rbac implements role-based access control for the PropertyChain
// admin area. Roles, permissions and route access rules are fixed,
// process-wide tables defined at init and never mutated at runtime. The
// Resolver answers two questions: does a role hold a permission, and may a
// role enter a route.
package rbac
