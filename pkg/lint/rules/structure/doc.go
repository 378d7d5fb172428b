// Package structure contains rules for stages missing their required
// parts.
package structure
