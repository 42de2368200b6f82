package main

import (
	"fmt"

	"github.com/Veraticus/poultry-receipt/internal/cli"
	"github.com/Veraticus/poultry-receipt/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the receipt API over HTTP",
		Long: `Start an HTTP server that computes totals and renders receipts.

  GET  /health
  GET  /v1/themes
  POST /v1/totals
  POST /v1/receipts/render?theme=navy
  GET  /v1/receipts
  GET  /v1/receipts/{id}`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", ":8080", "listen address")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	// Rendering only; the server never shares receipts itself.
	a, err := newApp(cmd.Context(), "stdout", cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx := handler.HandleInterrupts(cmd.Context(), "Receipt server", "")

	var history server.History
	if a.ledger != nil {
		history = a.ledger
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("Listening on "+a.cfg.Server.Addr))
	return server.Serve(ctx, a.cfg.Server.Addr, server.New(a.service, history, a.cfg.Receipt.Theme).Router())
}
