// Package pipeline renders a batch of sites through a view controller with
// bounded concurrency and hands the results back in input order.
//
// The only contract to implement is Renderer (Show/Hide). This keeps the
// pipeline swappable and testable.
package pipeline
