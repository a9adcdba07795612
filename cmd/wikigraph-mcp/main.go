package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"

	"github.com/athapong/wikigraph/pkg/graph/metrics"
	"github.com/athapong/wikigraph/tools"
)

func main() {
	envFile := flag.String("env", ".env", "Path to environment file")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil {
		log.Printf("Warning: Error loading env file %s: %v\n", *envFile, err)
	}

	mcpServer := server.NewMCPServer(
		"wikigraph",
		"1.0.0",
		server.WithLogging(),
	)

	tools.RegisterGraphTools(mcpServer)

	go func() {
		for range time.Tick(15 * time.Second) {
			metrics.UpdateSystemMetrics()
		}
	}()

	if err := server.ServeStdio(mcpServer); err != nil {
		panic(fmt.Sprintf("Server error: %v", err))
	}
}
