package main

import (
	"fmt"
	"os"

	"pomonotify/internal/platform"

	"github.com/spf13/cobra"
)

type autostarter interface {
	Enable(execPath string) error
	Disable() error
	Enabled() bool
}

func newAutostartCommand() *cobra.Command {
	return newAutostartCommandWith(func() (autostarter, error) {
		return platform.NewAutostart(appName)
	}, os.Executable)
}

func newAutostartCommandWith(open func() (autostarter, error), executable func() (string, error)) *cobra.Command {
	autostartCmd := &cobra.Command{
		Use:   "autostart",
		Short: "Start the timer with the desktop session",
	}

	autostartCmd.AddCommand(&cobra.Command{
		Use:   "enable",
		Short: "Add the login item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			autostart, err := open()
			if err != nil {
				return err
			}
			execPath, err := executable()
			if err != nil {
				return fmt.Errorf("resolve executable: %w", err)
			}
			if err := autostart.Enable(execPath); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Autostart enabled")
			return nil
		},
	})

	autostartCmd.AddCommand(&cobra.Command{
		Use:   "disable",
		Short: "Remove the login item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			autostart, err := open()
			if err != nil {
				return err
			}
			if err := autostart.Disable(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Autostart disabled")
			return nil
		},
	})

	autostartCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show whether the login item exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			autostart, err := open()
			if err != nil {
				return err
			}
			status := "disabled"
			if autostart.Enabled() {
				status = "enabled"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Autostart %s\n", status)
			return nil
		},
	})

	return autostartCmd
}
