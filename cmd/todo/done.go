package main

import (
	"github.com/spf13/cobra"
)

func newDoneCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "done [id]",
		Short: "Toggle whether a note is complete",
		Args:  cobra.ExactArgs(1),
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

			s.presenter.ToggleComplete(n.ID)
			s.presenter.Wait()
			return s.view.Err()
		},
	}
}
