// Package config holds the controller's user-facing settings and a
// YAML file store for them.
//
// Inside a real host the host's own settings storage is authoritative;
// the Store exists for standalone use (the simulator) and follows the
// same contract: a missing file yields defaults, not an error.
package config
