package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"e2ekeys/internal/directoryserver"
	"e2ekeys/internal/logging"
)

func main() {
	var (
		addr    string
		dbPath  string
		verbose bool
		debug   bool
	)
	cmd := &cobra.Command{
		Use:          "directory",
		Short:        "Run the e2ekeys key directory",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.Logger{Verbose: verbose, Debug: debug}
			return run(cmd.Context(), addr, dbPath, log)
		},
	}
	cmd.Flags().StringVar(&addr, "listen", ":8080", "listen address")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (default in memory)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log registrations")
	cmd.Flags().BoolVar(&debug, "debug", false, "log every request")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := cmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, addr, dbPath string, log logging.Logger) error {
	var st directoryserver.Store = directoryserver.NewMemoryStore()
	if dbPath != "" {
		sq, err := directoryserver.NewSQLiteStore(dbPath)
		if err != nil {
			return err
		}
		st = sq
	}
	defer st.Close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           directoryserver.New(st, log).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	fmt.Fprintf(os.Stderr, "directory listening on %s\n", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
