// Copyright (c) 2026 Keymaster Team
// Credstore - API credential store
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/toeirei/credstore/internal/credentials"
	"github.com/toeirei/credstore/internal/i18n"
)

func newBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup [output-file]",
		Short: "Create a compressed (zstd) JSON backup of all API keys",
		Long: `Dumps every stored API key into a single, Zstandard-compressed JSON file.

If an output file is specified, '.zst' will be appended to the name if it's not already present.
If no output file is specified, a default filename 'credstore-backup-YYYY-MM-DD.json.zst' is used.

Examples:
  credstore backup
  credstore backup my-backup.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var outputFile string
			if len(args) == 0 {
				outputFile = fmt.Sprintf("credstore-backup-%s.json.zst", time.Now().Format("2006-01-02"))
			} else {
				outputFile = args[0]
				if !strings.HasSuffix(outputFile, ".zst") {
					outputFile += ".zst"
				}
			}

			store, err := credentials.Default()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("backup.starting"))

			// The backup holds secrets, same as the credentials file.
			f, err := os.OpenFile(outputFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
			if err != nil {
				return fmt.Errorf("%s: %w", i18n.T("backup.error_write"), err)
			}
			defer func() { _ = f.Close() }()

			if err := credentials.WriteBackup(f, store.Snapshot()); err != nil {
				return fmt.Errorf("%s: %w", i18n.T("backup.error_write"), err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("%s: %w", i18n.T("backup.error_write"), err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("backup.success", outputFile))
			return nil
		},
	}
}

func newRestoreCmd() *cobra.Command {
	var full bool
	cmd := &cobra.Command{
		Use:   "restore <backup-file>",
		Short: "Restore API keys from a backup file",
		Long: `Reads a backup written by 'credstore backup' and merges its keys into the
credentials file. Keys in the backup win over existing ones.

With --full, the credentials file is replaced by the backup contents and
keys absent from the backup are removed.

Example:
  credstore restore ./credstore-backup-2026-03-01.json.zst
  credstore restore --full ./credstore-backup-2026-03-01.json.zst`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputFile := args[0]
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("restore.starting", inputFile))

			f, err := os.Open(inputFile)
			if err != nil {
				return fmt.Errorf("%s: %w", i18n.T("restore.error_read"), err)
			}
			defer func() { _ = f.Close() }()

			backup, err := credentials.ReadBackup(f)
			if err != nil {
				return fmt.Errorf("%s: %w", i18n.T("restore.error_read"), err)
			}

			store, err := credentials.Default()
			if err != nil {
				return err
			}
			if err := store.Import(backup.Keys, full); err != nil {
				return fmt.Errorf("%s: %w", i18n.T("restore.error_import"), err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("restore.success", len(backup.Keys)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&full, "full", false, "replace all keys instead of merging")
	return cmd
}
