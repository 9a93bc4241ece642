package main

import (
	"github.com/spf13/cobra"
)

func newShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Print a note with its body",
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
			listed, err := resolve(notes, args[0])
			if err != nil {
				return err
			}

			ctx, cancel := s.context(cmd.Context())
			defer cancel()
			n, err := s.container.Repository().GetNote(ctx, listed.ID).Await(ctx)
			if err != nil {
				return err
			}

			s.view.detail(n)
			return nil
		},
	}
}
