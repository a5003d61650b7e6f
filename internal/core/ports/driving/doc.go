// Package driving defines the service interfaces exposed to driving
// adapters (the CLI and the archive watcher).
package driving
