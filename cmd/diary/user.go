package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/diary/internal/user"
)

func newUserCommand() *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Temporary user commands",
	}
	userCmd.AddCommand(newUserCreateCommand())
	userCmd.AddCommand(newUserValidateCommand())
	return userCmd
}

func newUserCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a temporary user and print its temp ID",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openDatabase(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Close()
			}()

			u, err := user.NewService(user.NewDBRepository(db)).CreateTempUser(cmd.Context())
			if err != nil {
				return fmt.Errorf("CreateTempUser() > %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), u.TempID)
			return err
		},
	}
}

func newUserValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <tempId>",
		Short: "Check whether a temp ID belongs to an existing user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openDatabase(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Close()
			}()

			valid, err := user.NewService(user.NewDBRepository(db)).ValidateTempID(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("ValidateTempID(%s) > %w", args[0], err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), valid)
			return err
		},
	}
}
