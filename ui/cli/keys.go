// Copyright (c) 2026 Keymaster Team
// Credstore - API credential store
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/toeirei/credstore/internal/credentials"
	"github.com/toeirei/credstore/internal/i18n"
	"golang.org/x/term"
)

// clipboardWriteAll is replaced in tests; CI machines have no clipboard.
var clipboardWriteAll = clipboard.WriteAll

func newGetCmd() *cobra.Command {
	var toClipboard bool
	cmd := &cobra.Command{
		Use:   "get NAME",
		Short: "Print the API key stored under NAME",
		Long: `Prints the value stored under NAME. Fails when the key is missing or
still holds a placeholder value (one starting with "Your").

Example:
  credstore get OPENAI_API_KEY
  credstore get OPENAI_API_KEY --copy`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := credentials.Default()
			if err != nil {
				return err
			}
			value, err := store.Get(args[0])
			if err != nil {
				return err
			}
			if toClipboard {
				if err := clipboardWriteAll(value); err != nil {
					return fmt.Errorf("could not copy to clipboard: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T("get.copied", args[0]))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
	cmd.Flags().BoolVar(&toClipboard, "copy", false, "copy the value to the clipboard instead of printing it")
	return cmd
}

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set NAME [VALUE]",
		Short: "Store an API key and save the credentials file",
		Long: `Stores VALUE under NAME and immediately rewrites the credentials file.
Without VALUE the key is read from a hidden prompt, or from the first line
of standard input when it is not a terminal.

Example:
  credstore set OPENAI_API_KEY sk-...
  echo sk-... | credstore set OPENAI_API_KEY`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			var value string
			if len(args) == 2 {
				value = args[1]
			} else {
				v, err := readValue(cmd, name)
				if err != nil {
					return fmt.Errorf("%s: %w", i18n.T("set.error_read_value"), err)
				}
				value = v
			}
			if value == "" {
				return errors.New(i18n.T("set.error_empty", name))
			}

			store, err := credentials.Default()
			if err != nil {
				return err
			}
			if err := store.Set(name, value); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("set.success", name, store.Path()))
			return nil
		},
	}
}

// readValue prompts without echo when stdin is a terminal, otherwise it
// takes the first line of input.
func readValue(cmd *cobra.Command, name string) (string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), i18n.T("set.prompt", name))
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func newUnsetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unset NAME",
		Short: "Remove an API key and save the credentials file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := credentials.Default()
			if err != nil {
				return err
			}
			if err := store.Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("unset.success", args[0]))
			return nil
		},
	}
}

func newListCmd() *cobra.Command {
	var show bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List configured API keys with masked values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := credentials.Default()
			if err != nil {
				return err
			}
			writeKeyList(cmd.OutOrStdout(), store, show)
			return nil
		},
	}
	cmd.Flags().BoolVar(&show, "show", false, "print values in clear text")
	return cmd
}

// writeKeyList prints one "name  value" line per key, names padded to the
// widest one.
func writeKeyList(w io.Writer, store *credentials.Store, show bool) {
	keys := store.Snapshot()
	names := store.Keys()
	if len(names) == 0 {
		fmt.Fprintln(w, i18n.T("list.empty", store.Path()))
		return
	}

	width := 0
	for _, n := range names {
		width = max(width, lipgloss.Width(n))
	}
	r := lipgloss.NewRenderer(w)
	nameStyle := r.NewStyle().Bold(true).Width(width + 2)
	valueStyle := r.NewStyle().Faint(true)
	placeholderStyle := r.NewStyle().Foreground(lipgloss.Color("3"))

	for _, n := range names {
		v := keys[n]
		var out string
		switch {
		case strings.HasPrefix(v, credentials.PlaceholderPrefix):
			out = placeholderStyle.Render(i18n.T("list.placeholder"))
		case show:
			out = v
		default:
			out = valueStyle.Render(maskValue(v))
		}
		fmt.Fprintln(w, nameStyle.Render(n)+out)
	}
}

// maskValue keeps the first four characters of long values and hides the rest.
func maskValue(v string) string {
	const hidden = "********"
	r := []rune(v)
	if len(r) <= 8 {
		return hidden
	}
	return string(r[:4]) + hidden
}

func newPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the location of the credentials file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := credentials.Default()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), store.Path())
			return nil
		},
	}
}
