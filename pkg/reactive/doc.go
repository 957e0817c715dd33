// Package reactive provides minimal observable cells for binding list state to a UI.
//
// The package models the three primitives the list helpers depend on:
//   - Ref: a mutable cell with change notification
//   - Computed: a read-only cell derived from other cells
//   - Watch: subscribe a callback, optionally invoking it immediately
//
// Notifications are delivered synchronously on the goroutine that called Set,
// after the cell lock is released, in subscription order. A Set that does not
// change the value (per the cell's equality function) stores nothing new and
// notifies nobody. UI frameworks adapt to this package by subscribing and
// forwarding notifications into their own event loop.
package reactive
