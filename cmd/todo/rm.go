package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRmCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm [id]",
		Aliases: []string{"delete"},
		Short:   "Delete a note",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.Close()

			notes, err := s.load()
			if err != nil {
				return err
			}
			n, err := resolve(notes, args[0])
			if err != nil {
				return err
			}

			s.presenter.Delete(n.ID)
			s.presenter.Wait()
			if err := s.view.Err(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s\n", shortID(n), n.Title)
			return nil
		},
	}
}
