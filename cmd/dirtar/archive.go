package main

import (
	"bufio"
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/sagarc03/dirtar"
)

var archiveCmd = &cobra.Command{
	Use:   "archive --file <out.tar> <dir>",
	Short: "Write the archive of a directory to a file",
	Long: `Write the same tar archive that GET /download would return for <dir>
to a local file. Useful to check what a download will contain.

Examples:
  dirtar archive --file logs.tar ./logs`,
	Args: cobra.ExactArgs(1),
	RunE: runArchive,
}

func init() {
	archiveCmd.Flags().StringP("file", "f", "", "resulting tar file")
	_ = archiveCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(archiveCmd)
}

func runArchive(cmd *cobra.Command, args []string) (err error) {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	file, _ := cmd.Flags().GetString("file")
	dir := args[0]

	fsys := afero.NewOsFs()
	out, err := fsys.Create(file)
	if err != nil {
		return fmt.Errorf("create %s: %w", file, err)
	}
	defer func() {
		err = errors.Join(err, out.Close())
		if err != nil {
			if rmErr := fsys.Remove(file); rmErr != nil {
				logger.Warn("failed to remove incomplete archive", "file", file, "err", rmErr)
			}
		}
	}()

	archiver := dirtar.NewArchiver(afero.NewReadOnlyFs(fsys), logger)

	result, err := archiver.Archive(ctx, dir, bufio.NewWriter(out))
	if err != nil {
		return fmt.Errorf("archive %s: %w", dir, err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d entries (%d skipped, %d bytes) to %s\n",
		result.Entries, result.Skipped, result.Bytes, file)
	return nil
}
