package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/image-lasso/internal/config"
	"github.com/ironsheep/image-lasso/internal/monitoring"
	"github.com/ironsheep/image-lasso/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-lasso %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("image-lasso - MCP server for lasso region selection")
			fmt.Println()
			fmt.Println("Usage: image-lasso [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  IMAGE_LASSO_CONFIG=path        Load settings from a JSON file")
			fmt.Println("  IMAGE_LASSO_LOG_LEVEL=debug    Enable debug logging")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.FromEnv()
	if err != nil {
		log.Printf("Using default configuration: %v", err)
	}
	if cfg.Debug() {
		monitoring.EnableStdLog()
		log.Printf("Image Lasso Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	server.Version = Version
	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("Server error: %v", err)
	}
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
