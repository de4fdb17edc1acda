package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/phamm25/ai-chatbot/internal/app"
)

var shutdownTimeout time.Duration

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		application := app.New(cfgFile)
		wait := application.Start()
		<-wait

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		application.Stop(ctx)
		return nil
	},
}

func init() {
	serveCmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 10*time.Second, "graceful shutdown timeout")
	rootCmd.AddCommand(serveCmd)
}
