package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newIngestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest",
		Short: "Load the legal document corpus into the knowledge store and report chunk counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()

			sys, err := bootstrap(ctx, true)
			if err != nil {
				return err
			}
			defer func() { _ = sys.logger.Sync() }()

			fmt.Printf("Knowledge base ready: %d chunks from %s\n",
				sys.store.Len(), sys.cfg.Knowledge.DocumentsDir)
			return nil
		},
	}
}
