package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newAddCmd(opts *rootOptions) *cobra.Command {
	var (
		body string
		due  string
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a note",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.Close()

			dueDate := time.Now()
			if due != "" {
				dueDate, err = time.ParseInLocation(s.cfg.CLI.DateLayout, due, time.Local)
				if err != nil {
					return fmt.Errorf("parse due date: %w", err)
				}
			}

			s.presenter.CreateNote(strings.Join(args, " "), body, dueDate)
			s.presenter.Wait()
			return s.view.Err()
		},
	}

	cmd.Flags().StringVarP(&body, "note", "n", "", "Free text body")
	cmd.Flags().StringVarP(&due, "due", "d", "", "Due date, in the configured date layout (default now)")
	return cmd
}
