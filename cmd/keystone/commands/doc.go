// Package commands defines the keystone CLI and wires dependencies for subcommands.
//
// Commands
//
//   - init         Generate an identity and print its recovery phrase
//   - restore      Re-create an identity from its recovery phrase
//   - list         List owned identities
//   - fingerprint  Print the fingerprint of an identity
//   - export       Print the shareable identity (base64)
//   - sign         Sign a message with an identity
//   - verify       Check a signature against a shared identity
//   - seal         Encrypt a message to a shared identity
//   - open         Decrypt a message sealed to one of your identities
//   - respond      Answer an authentication challenge
//   - check        Verify an authentication response
//   - batch        Generate many identities in parallel
//
// # Implementation
//
// The root command loads the configuration from --home, builds the logger and
// the dependency graph (store, services, metrics) before any subcommand runs,
// so handlers share one app context. Binary inputs and outputs are base64.
package commands
