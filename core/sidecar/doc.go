// Package sidecar writes the JSON documents that accompany every report product:
// <product>.dataset.json (label, version, time window, footprint) and
// <product>.met.json (track number). Files are written atomically so an
// interrupted run never leaves a truncated document behind.
package sidecar
