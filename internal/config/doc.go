// Package config loads agentops settings with Viper.
//
// Settings come, in increasing precedence, from built-in defaults, a YAML
// config file, a .env file in the working directory, and AGENTOPS_*
// environment variables. Nested keys map to variables by upper-casing and
// replacing dots with underscores:
//
//	repository.ref  ->  AGENTOPS_REPOSITORY_REF
//	cache.ttl       ->  AGENTOPS_CACHE_TTL
//
// The repository token may also be supplied as GITHUB_TOKEN.
//
// # Configuration File
//
// The file is named config.yaml and is searched for in the current directory
// and in ~/.config/agentops. A file passed with --config must exist.
//
//	repository:
//	  owner: github
//	  name: awesome-copilot
//	  ref: main
//	cache:
//	  ttl: 10m
//	install:
//	  default_root: .github
//	server:
//	  transport: stdio
//
// # Validation
//
// [Load] validates what it returns; [Validate] reports every problem at once.
package config
