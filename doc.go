/*
Package hyperloglog implements the HyperLogLog probabilistic cardinality
estimator: given a stream of elements, it approximates the number of
distinct elements in sublinear space, with accuracy tunable via a
precision parameter.

Two sketch flavors are provided. Sketch is a single-writer sketch backed
by a plain register bank; it must not be shared across goroutines without
external synchronization. ConcurrentSketch is backed by a lock-free
register bank that packs four registers into each 32-bit atomic word, and
its methods may be called from any number of goroutines through a shared
handle without a lock.

Refer: https://static.googleusercontent.com/media/research.google.com/en//pubs/archive/40671.pdf
*/
package hyperloglog
