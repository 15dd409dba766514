// Package conv provides the value coercion rules used by the struct mapper.
// A rule is resolved once per (target type, source type) and then applied to
// each pair of values. Pairs without a rule are skipped, never reported.
package conv
