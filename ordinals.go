package main

import (
	"os"

	"github.com/inscription-c/ordinals/inscription"
	"github.com/inscription-c/ordinals/inscription/log"
	"github.com/inscription-c/ordinals/inscription/server"
	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"
)

var rootCmd = &cobra.Command{
	Use:   "ordinals",
	Short: "ordinals inscription decoder, ordinal ledger and block indexer.",
}

func init() {
	rootCmd.AddCommand(inscription.Cmd)
	rootCmd.AddCommand(server.Cmd)
}

func main() {
	if _, err := maxprocs.Set(maxprocs.Logger(log.Srv.Debugf)); err != nil {
		log.Srv.Warnf("maxprocs: %v", err)
	}
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
