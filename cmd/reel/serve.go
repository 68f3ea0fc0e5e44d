package main

import (
	"fmt"

	"reel/internal/log"
	"reel/internal/server"

	"github.com/spf13/cobra"
)

// NewServeCmd creates the demo API server command.
func NewServeCmd() *cobra.Command {
	var addr string

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local demo feed API",
		Long:  "Serves an in-memory feed API with sample posts, so `reel` works without a backend.",
		RunE: func(cmd *cobra.Command, args []string) error {
			baseURL := "http://localhost" + addr
			srv := server.New(server.SeedPosts(baseURL))
			fmt.Printf("🎬 Demo feed API listening on %s\n", baseURL)
			fmt.Printf("💡 In another terminal: reel --api %s\n", baseURL)
			log.Info("demo server listening on %s", addr)
			return srv.Run(addr)
		},
	}

	serveCmd.Flags().StringVar(&addr, "addr", ":8490", "listen address")
	return serveCmd
}
