// Package main provides the entry point for the PropertyChain admin guard.
// It initializes and runs a web server using the Fiber framework that fronts
// the administrative area of the PropertyChain real-estate tokenization
// platform: role-based access control for admin routes, session inactivity
// tracking with warn-then-expire semantics, a two-factor verification gate,
// and a bounded audit trail of security-relevant actions.
package main
