// Package driving defines the interfaces that adapters (CLI, MCP) call INTO core.
package driving
