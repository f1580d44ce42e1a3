package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"strconv"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/pdfagent/mcp-pdf-reader/internal/registry"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	// Import all tool packages to register them
	_ "github.com/pdfagent/mcp-pdf-reader/internal/imports"
)

// Version information (set during build)
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// Global resources that need cleanup
// Atomic so the shutdown path never races the signal handler
var (
	logFileHandle atomic.Pointer[os.File]
	isStdioMode   atomic.Bool
)

const (
	// DefaultMemoryLimit is the default soft memory limit (1GB). Large PDFs
	// decompress aggressively, so keep GC pressure bounded.
	DefaultMemoryLimit = 1 * 1024 * 1024 * 1024
)

// parseLogLevel parses the LOG_LEVEL environment variable and returns the
// appropriate logrus level. Defaults to WarnLevel if not set or invalid.
func parseLogLevel() logrus.Level {
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr == "" {
		return logrus.WarnLevel
	}

	switch strings.ToLower(strings.TrimSpace(logLevelStr)) {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "panic":
		return logrus.PanicLevel
	default:
		return logrus.WarnLevel
	}
}

// setMemoryLimit configures the Go runtime soft memory limit, honouring the
// MCP_PDF_READER_MEMORY_LIMIT environment variable (bytes) when set.
func setMemoryLimit() {
	memLimitStr := os.Getenv("MCP_PDF_READER_MEMORY_LIMIT")
	var memLimit int64 = DefaultMemoryLimit

	if memLimitStr != "" {
		if parsed, err := strconv.ParseInt(memLimitStr, 10, 64); err == nil && parsed > 0 {
			memLimit = parsed
		}
	}

	debug.SetMemoryLimit(memLimit)
}

// configureLogging sets up file-based logging so nothing ever writes to
// stdout/stderr in stdio mode, where any stray output corrupts the protocol
// stream.
func configureLogging(logger *logrus.Logger) {
	fallback := func() {
		if isStdioMode.Load() {
			logger.SetOutput(io.Discard)
			logrus.SetOutput(io.Discard)
		} else {
			logger.SetOutput(os.Stderr)
			logrus.SetOutput(os.Stderr)
		}
	}

	logLevel := parseLogLevel()
	if isStdioMode.Load() && logLevel < logrus.WarnLevel {
		logLevel = logrus.WarnLevel
	}
	logger.SetLevel(logLevel)
	logrus.SetLevel(logLevel)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fallback()
		return
	}

	logDir := filepath.Join(homeDir, ".mcp-pdf-reader", "logs")
	if err := os.MkdirAll(logDir, 0700); err != nil {
		fallback()
		return
	}

	logPath := filepath.Join(logDir, "mcp-pdf-reader.log")
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		fallback()
		return
	}

	logFileHandle.Store(file)
	logger.SetOutput(file)
	logrus.SetOutput(file)
	logger.WithField("level", logLevel.String()).Debug("Logging configured")
}

func main() {
	// Optional .env for local development; missing file is fine
	_ = godotenv.Load()

	setMemoryLimit()

	// Context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Discard output until the transport mode is known
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(parseLogLevel())
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	registry.Init(logger)

	defer performCleanup()

	app := &cli.App{
		Name:    "mcp-pdf-reader",
		Usage:   "MCP server for reading and inspecting PDF files",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "transport",
				Aliases: []string{"t"},
				Value:   "stdio",
				Usage:   "Transport type (stdio, sse, or http)",
			},
			&cli.StringFlag{
				Name:  "port",
				Value: "18080",
				Usage: "Port to use for HTTP transports (SSE and Streamable HTTP)",
			},
			&cli.StringFlag{
				Name:  "base-url",
				Value: "http://localhost",
				Usage: "Base URL for HTTP transports",
			},
			&cli.StringFlag{
				Name:  "auth-token",
				Usage: "Bearer token for Streamable HTTP transport (optional)",
			},
			&cli.StringFlag{
				Name:  "endpoint-path",
				Value: "/http",
				Usage: "Endpoint path for Streamable HTTP transport",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "version",
				Usage: "Print version information",
				Action: func(c *cli.Context) error {
					fmt.Printf("mcp-pdf-reader version %s\n", Version)
					fmt.Printf("Commit: %s\n", Commit)
					fmt.Printf("Built: %s\n", BuildDate)
					return nil
				},
			},
		},
		Action: func(c *cli.Context) error {
			transport := c.String("transport")
			port := c.String("port")
			baseURL := c.String("base-url")

			isStdioMode.Store(transport == "stdio")

			configureLogging(logger)

			if transport != "stdio" {
				logger.Infof("Starting mcp-pdf-reader version %s (commit: %s, built: %s)",
					Version, Commit, BuildDate)
			}

			logger.Debug("Creating MCP server")
			mcpSrv := mcpserver.NewMCPServer("mcp-pdf-reader", Version)

			enabledTools := registry.GetTools()
			logger.WithField("tool_count", len(enabledTools)).Debug("MCP server created, registering tools")

			for toolName := range enabledTools {
				name := toolName

				if transport != "stdio" {
					logger.Infof("Registering tool: %s", name)
				}

				mcpSrv.AddTool(enabledTools[name].Definition(), func(toolCtx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
					currentTool, ok := registry.GetTool(name)
					if !ok {
						return nil, fmt.Errorf("tool not found: %s", name)
					}

					args, ok := request.Params.Arguments.(map[string]any)
					if !ok {
						return nil, fmt.Errorf("invalid arguments type: expected map[string]interface{}, got %T", request.Params.Arguments)
					}

					result, err := currentTool.Execute(toolCtx, registry.GetLogger(), registry.GetCache(), args)
					if err != nil {
						if transport != "stdio" {
							logger.WithError(err).Errorf("Tool execution failed: %s", name)
						}
						return nil, fmt.Errorf("tool execution failed: %w", err)
					}
					return result, nil
				})
			}

			logger.WithField("transport", transport).Debug("Starting server")
			switch transport {
			case "stdio":
				return mcpserver.ServeStdio(mcpSrv)
			case "sse":
				logger.WithField("port", port).Debug("Starting SSE server")
				sseServer := mcpserver.NewSSEServer(mcpSrv, mcpserver.WithBaseURL(baseURL+"/sse"))
				return sseServer.Start(":" + port)
			case "http":
				logger.WithField("port", port).Debug("Starting Streamable HTTP server")
				return startStreamableHTTPServer(c, mcpSrv, logger)
			default:
				return fmt.Errorf("unsupported transport: %s", transport)
			}
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		// In stdio mode nothing may be written to stdout or stderr, even on
		// failure, or the client sees a corrupt protocol stream
		if !isStdioMode.Load() {
			logger.Fatalf("Error: %v", err)
		}
		os.Exit(1)
	}
}

// performCleanup closes resources on shutdown
func performCleanup() {
	if file := logFileHandle.Load(); file != nil {
		// Silently close: the logger may be writing to this very file
		_ = file.Close()
	}
}

// startStreamableHTTPServer configures and starts the Streamable HTTP transport
func startStreamableHTTPServer(c *cli.Context, mcpSrv *mcpserver.MCPServer, logger *logrus.Logger) error {
	port := c.String("port")
	authToken := c.String("auth-token")
	endpointPath := c.String("endpoint-path")

	logger.Infof("Starting Streamable HTTP server on port %s with endpoint %s", port, endpointPath)

	opts := []mcpserver.StreamableHTTPOption{
		mcpserver.WithEndpointPath(endpointPath),
		mcpserver.WithLogger(&logrusAdapter{logger: logger}),
	}

	if authToken != "" {
		opts = append(opts, mcpserver.WithHTTPContextFunc(createAuthMiddleware(authToken, logger)))
		logger.Info("Token authentication enabled")
	}

	httpServer := mcpserver.NewStreamableHTTPServer(mcpSrv, opts...)
	return httpServer.Start(":" + port)
}

// createAuthMiddleware creates an HTTP context function for bearer token
// authentication on the Streamable HTTP transport
func createAuthMiddleware(expectedToken string, logger *logrus.Logger) mcpserver.HTTPContextFunc {
	return func(ctx context.Context, req *http.Request) context.Context {
		authHeader := req.Header.Get("Authorization")
		if authHeader == "" {
			logger.Warn("Request missing Authorization header")
			return ctx
		}

		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			logger.Warn("Invalid authorization format, expected Bearer token")
			return ctx
		}

		if strings.TrimPrefix(authHeader, bearerPrefix) != expectedToken {
			logger.Warn("Invalid authentication token")
			return ctx
		}

		logger.Debug("Request authenticated successfully")
		return ctx
	}
}

// logrusAdapter adapts logrus.Logger to the mcp-go util.Logger interface
type logrusAdapter struct {
	logger *logrus.Logger
}

func (l *logrusAdapter) Debugf(format string, args ...any) {
	l.logger.Debugf(format, args...)
}

func (l *logrusAdapter) Infof(format string, args ...any) {
	l.logger.Infof(format, args...)
}

func (l *logrusAdapter) Warnf(format string, args ...any) {
	l.logger.Warnf(format, args...)
}

func (l *logrusAdapter) Errorf(format string, args ...any) {
	l.logger.Errorf(format, args...)
}
