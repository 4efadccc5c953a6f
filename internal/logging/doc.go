// Package logging provides structured logging for agentops using slog.
//
// Loggers write text or JSON to stderr; stdout is reserved for the MCP stdio
// transport and command output. Values that look like credentials are masked
// by the text handler before they reach any writer.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  slog.LevelInfo,
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	logger.Info("serving", "transport", "stdio")
//
// Commands hand their logger down through the context:
//
//	ctx = logging.NewContext(ctx, logger)
//	logging.FromContext(ctx).Debug("resolved destination", "path", dest)
//
// # Testing
//
// For tests, use [ForTest] to capture log output via the testing framework:
//
//	func TestSomething(t *testing.T) {
//		logger := logging.ForTest(t)
//		// logs appear in test output on failure
//	}
package logging
