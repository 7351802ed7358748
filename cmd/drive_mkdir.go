package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var mkdirParent string

var driveMkdirCmd = &cobra.Command{
	Use:   "mkdir <name>",
	Short: "Create a folder on Google Drive",
	Args:  cobra.ExactArgs(1),
	RunE:  runDriveMkdir,
}

func init() {
	driveMkdirCmd.Flags().StringVar(&mkdirParent, "parent", "", "Parent folder ID")
	driveMkdirCmd.SilenceUsage = true
	driveCmd.AddCommand(driveMkdirCmd)
}

func runDriveMkdir(cmd *cobra.Command, args []string) error {
	client, err := resolveDriveClient(cmd)
	if err != nil {
		return err
	}

	folder, err := client.CreateFolder(cmd.Context(), args[0], mkdirParent)
	if err != nil {
		return err
	}

	if jsonOutput {
		return jsonPrint(folder)
	}
	fmt.Printf("%s  %s\n", folder.ID, folder.Name)
	return nil
}
