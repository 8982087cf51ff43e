// Package commands holds the write side of the ordering workflow: submitting
// a composed cart and advancing an order's status. Handlers bound every store
// call with the configured timeout and never retry on their own.
package commands
