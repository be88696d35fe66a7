package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dhamidi/comb/ui"
	"github.com/spf13/cobra"
)

func newUICmd() *cobra.Command {
	var addr string
	var dbPath string

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Start the web playground server",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ui.OpenStore(dbPath)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			server, err := ui.NewServer(store)
			if err != nil {
				return fmt.Errorf("create server: %w", err)
			}
			displayAddr := addr
			if strings.HasPrefix(addr, ":") {
				displayAddr = "localhost" + addr
			}
			fmt.Printf("Starting server at http://%s\n", displayAddr)
			return http.ListenAndServe(addr, server)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "address to listen on")
	cmd.Flags().StringVar(&dbPath, "db", "comb.db", "path to the SQLite database")

	return cmd
}
