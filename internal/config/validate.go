package config

import (
	"net/url"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ajilantony/copilot-agentops-mcp/internal/errors"
)

// Validation errors for configuration fields.
var (
	// ErrRequired indicates a mandatory field is empty.
	ErrRequired = errors.New("value is required")

	// ErrInvalidURL indicates a URL field does not parse or is not http(s).
	ErrInvalidURL = errors.New("invalid URL")

	// ErrNotPositive indicates a duration or count is zero or negative.
	ErrNotPositive = errors.New("must be positive")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")

	// ErrInvalidTransport indicates an unknown server transport.
	ErrInvalidTransport = errors.New("transport must be stdio or http")
)

// Validate checks a Config for validity.
// Returns nil if valid, or one error per problem found.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error
	add := func(field, value string, err error) {
		errs = append(errs, &FieldError{Field: field, Value: value, Err: err})
	}

	if u, err := url.Parse(cfg.Repository.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		add("repository.base_url", cfg.Repository.BaseURL, ErrInvalidURL)
	}
	for field, value := range map[string]string{
		"repository.owner":         cfg.Repository.Owner,
		"repository.name":          cfg.Repository.Name,
		"repository.ref":           cfg.Repository.Ref,
		"repository.metadata_path": cfg.Repository.MetadataPath,
	} {
		if strings.TrimSpace(value) == "" {
			add(field, value, ErrRequired)
		}
	}

	if cfg.Cache.TTL <= 0 {
		add("cache.ttl", cfg.Cache.TTL.String(), ErrNotPositive)
	}
	if cfg.Cache.ContentEntries <= 0 {
		add("cache.content_entries", "", ErrNotPositive)
	}
	if cfg.Fetch.Timeout <= 0 {
		add("fetch.timeout", cfg.Fetch.Timeout.String(), ErrNotPositive)
	}

	if err := validatePath(cfg.Install.DefaultRoot); err != nil || cfg.Install.DefaultRoot == "" {
		add("install.default_root", cfg.Install.DefaultRoot, ErrInvalidPath)
	}
	if err := validatePath(cfg.Install.LockDir); err != nil {
		add("install.lock_dir", cfg.Install.LockDir, err)
	}

	switch cfg.Server.Transport {
	case TransportStdio:
	case TransportHTTP:
		if cfg.Server.Addr == "" {
			add("server.addr", "", ErrRequired)
		}
	default:
		add("server.transport", cfg.Server.Transport, ErrInvalidTransport)
	}

	// Map iteration above is unordered; keep reports stable.
	sortFieldErrors(errs)
	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	// Empty paths are valid (they mean "use default")
	if path == "" {
		return nil
	}
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}
	cleaned := filepath.Clean(path)
	if cleaned == "" || cleaned == "." {
		return ErrInvalidPath
	}
	return nil
}

// FieldError reports a problem with one configuration key.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Value == "" {
		return e.Field + ": " + e.Err.Error()
	}
	return e.Field + ": " + e.Err.Error() + ": " + e.Value
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func sortFieldErrors(errs []error) {
	field := func(err error) string {
		var fe *FieldError
		if errors.As(err, &fe) {
			return fe.Field
		}
		return ""
	}
	slices.SortStableFunc(errs, func(a, b error) int {
		return strings.Compare(field(a), field(b))
	})
}
