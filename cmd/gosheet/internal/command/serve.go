package command

import (
	"log"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/vogtb/gosheet/internal/sheet"
	"github.com/vogtb/gosheet/internal/transport/wsserver"
)

func serveCmd() *cobra.Command {
	var addr, staticDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a sheet over a websocket for live viewers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr, staticDir)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "address to listen on")
	cmd.Flags().StringVar(&staticDir, "static", "", "optional directory of static assets to serve at /")
	return cmd
}

func runServe(addr, staticDir string) error {
	logger := log.New(os.Stderr, "", log.LstdFlags)

	srv := wsserver.New(sheet.New(), logger)

	mux := http.NewServeMux()
	srv.RegisterRoutes(mux)
	if staticDir != "" {
		if _, err := os.Stat(staticDir); err != nil {
			logger.Printf("static directory %s not usable: %v", staticDir, err)
		} else {
			mux.Handle("/", http.FileServer(http.Dir(staticDir)))
		}
	}

	logger.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}
