package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newEditCmd(opts *rootOptions) *cobra.Command {
	var (
		title     string
		body      string
		due       string
		clearBody bool
	)

	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Change the title, body or due date of a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("title") && !flags.Changed("note") && !flags.Changed("due") && !clearBody {
				return fmt.Errorf("nothing to change: pass --title, --note, --due or --clear-note")
			}

			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.Close()

			notes, err := s.load()
			if err != nil {
				return err
			}
			current, err := resolve(notes, args[0])
			if err != nil {
				return err
			}

			changed := current.Clone()
			if flags.Changed("title") {
				changed.Title = strings.TrimSpace(title)
			}
			if flags.Changed("note") {
				changed.Note = nil
				if text := strings.TrimSpace(body); text != "" {
					changed.Note = &text
				}
			}
			if clearBody {
				changed.Note = nil
			}
			if flags.Changed("due") {
				changed.DueDate, err = time.ParseInLocation(s.cfg.CLI.DateLayout, due, time.Local)
				if err != nil {
					return fmt.Errorf("parse due date: %w", err)
				}
			}

			s.presenter.Update(current.ID, changed)
			s.presenter.Wait()
			return s.view.Err()
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&body, "note", "n", "", "New body")
	cmd.Flags().StringVarP(&due, "due", "d", "", "New due date, in the configured date layout")
	cmd.Flags().BoolVar(&clearBody, "clear-note", false, "Remove the body")
	return cmd
}
