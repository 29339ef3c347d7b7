// Package probe provides ffprobe-based media inspection and the typed
// metadata records the planner consumes: ProbeResult (container + ordered
// streams) and FileInfo (name, path, size, duration, release year).
//
// A single JSON call per file supplies everything; ParseJSON is exported so
// tests and hosts that already hold ffprobe output can skip the subprocess.
package probe
