package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-notes/cache"
	"github.com/goliatone/go-notes/note"
	"github.com/goliatone/go-notes/store"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	var (
		asJSON  bool
		pending bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes, latest due date first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.Close()

			var notes []note.Note
			if pending {
				ctx, cancel := s.context(cmd.Context())
				defer cancel()
				notes, err = s.container.Store().FetchAll(ctx, store.Where(store.ColumnIsComplete, false)).Await(ctx)
				if err != nil {
					return err
				}
				cache.Sort(notes)
			} else {
				notes, err = s.load()
				if err != nil {
					return err
				}
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(notes)
			}

			s.view.mu.Lock()
			s.view.writeTable(notes)
			s.view.mu.Unlock()
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	cmd.Flags().BoolVar(&pending, "pending", false, "Only show notes that are not complete")
	return cmd
}
