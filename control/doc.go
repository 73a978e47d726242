// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime configuration, logging and metrics layer around the ring buffers.
//
// Provides:
//   - Config loading from YAML and RING_* environment variables (viper)
//   - Structured logger construction (zap)
//   - A prometheus collector exporting length/capacity of registered rings
//   - State dumps of registered rings for debug output
package control
