// Package count holds the directory-counting engine: canonical paths, a
// one-level scanner, the process-lifetime cache of per-directory results and
// the worker pool that fills it.
package count
