// Package feature turns images into comparable descriptors.
//
// A Descriptor is a normalized color histogram: a compact, resolution-agnostic
// summary of how an image distributes its color mass. Two descriptors are
// compared with a Metric, which turns them into a single non-negative
// dissimilarity score. The ordering engine only ever sees those scores, so
// both the descriptor shape and the metric are swappable without touching it.
//
// All bundled metrics are symmetric — Distance(a, b) == Distance(b, a) — which
// is the one property the pairwise store relies on.
package feature
