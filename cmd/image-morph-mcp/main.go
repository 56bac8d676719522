package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/image-morphology-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	level := logrus.InfoLevel
	if env := os.Getenv("IMAGE_MORPH_MCP_LOG_LEVEL"); env != "" {
		if parsed, err := logrus.ParseLevel(strings.TrimSpace(env)); err == nil {
			level = parsed
		}
	}

	for _, arg := range os.Args[1:] {
		switch arg {
		case "--version", "-v", "version":
			fmt.Printf("%s %s\n", server.Name, Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		case "--debug", "-d":
			level = logrus.DebugLevel
		default:
			fmt.Fprintf(os.Stderr, "unknown option %q (see --help)\n", arg)
			os.Exit(2)
		}
	}

	logger := initLogger(level)
	logger.WithFields(logrus.Fields{
		"version": Version,
		"built":   BuildTime,
		"commit":  GitCommit,
	}).Info("starting morphology MCP server")

	srv := server.New(server.WithLogger(logger))
	if err := srv.Run(); err != nil {
		logger.WithError(err).Fatal("server error")
	}
}

func printHelp() {
	fmt.Printf("%s - MCP server for grayscale morphology\n", server.Name)
	fmt.Println()
	fmt.Printf("Usage: %s [options]\n", server.Name)
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --debug, -d      Enable debug logging")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  IMAGE_MORPH_MCP_LOG_LEVEL=debug|info|warn|error    Log level (default info)")
	fmt.Println()
	fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
	fmt.Println("Logs go to stderr. Configure it in your MCP client.")
}

// initLogger writes to stderr since stdout carries the protocol.
func initLogger(level logrus.Level) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(level)

	if level >= logrus.DebugLevel {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
		logger.Debug("Debug logging enabled")
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return logger
}
