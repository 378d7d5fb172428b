// Package performance contains rules for constructs that tend to produce
// slow queries.
package performance
