package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/arbor/internal/cli"
	"github.com/aretw0/arbor/internal/logging"
	httpAdapter "github.com/aretw0/arbor/pkg/adapters/http"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the stateless HTTP server",
	Long:  `Starts the generator in stateless server mode, exposing a JSON API over HTTP and Prometheus metrics on /metrics.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts := optionsFrom(cmd)
		opts.Metrics = true
		port, _ := cmd.Flags().GetString("port")
		logJSON, _ := cmd.Flags().GetBool("log-json")

		logger := cli.CreateLogger(opts.Debug)
		if logJSON {
			level := slog.LevelInfo
			if opts.Debug {
				level = slog.LevelDebug
			}
			logger = logging.NewJSON(os.Stderr, level)
		}
		gen, err := cli.CreateGenerator(opts, logger)
		if err != nil {
			fmt.Printf("Error initializing arbor: %v\n", err)
			os.Exit(1)
		}
		defer gen.Close()

		handler := httpAdapter.NewHandler(gen,
			httpAdapter.WithLogger(logger),
			httpAdapter.WithMetrics(gen.Metrics.Handler()),
		)

		srv := &http.Server{
			Addr:              ":" + port,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Arbor Server on %s\n", srv.Addr)
			if opts.Dir != "" {
				fmt.Printf("Serving grammars from: %s\n", opts.Dir)
			}
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			if !errors.Is(err, http.ErrServerClosed) {
				fmt.Printf("Server error: %v\n", err)
				os.Exit(1)
			}

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Arbor Server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().Bool("log-json", false, "Write structured JSON logs to stderr")
}
