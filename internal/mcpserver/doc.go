// Package mcpserver exposes the artifact catalog as Model Context Protocol
// tools over stdio or streamable HTTP.
//
// Every tool failure is reported as a tool error whose text starts with the
// failure kind, for example "ALREADY_EXISTS: ...". Tool handlers never take
// the process down; panics are recovered and reported as INTERNAL.
package mcpserver
