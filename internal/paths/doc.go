// Package paths resolves the per-user directories agentops reads and writes.
//
// The package wraps github.com/adrg/xdg for XDG Base Directory compliance. On
// Linux paths follow XDG conventions (~/.config, ~/.cache); on macOS and
// Windows xdg maps them to the platform equivalents.
//
//	paths.ConfigDir() // ~/.config/agentops
//	paths.LockDir()   // ~/.cache/agentops/locks
package paths
