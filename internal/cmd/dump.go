package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/noborus/ov/oviewer"
	"github.com/spf13/cobra"

	"github.com/gravitrone/pagelist/internal/list"
	"github.com/gravitrone/pagelist/internal/ui/components"
)

// DumpCmd returns the `pagelist dump` command.
func DumpCmd(opts *Options) *cobra.Command {
	var (
		query    string
		maxPages int
		pager    bool
	)
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print every item without the interactive view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.Open(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			ctrl := s.Controller()
			defer func() { _ = ctrl.Close() }()

			var buf bytes.Buffer
			n, err := Dump(cmd.Context(), ctrl, query, maxPages, &buf)
			if err != nil {
				return err
			}
			s.Log.Info().Int("items", n).Int("pages", ctrl.Page()).Msg("dump finished")

			if pager {
				return runPager(&buf)
			}
			_, err = io.Copy(cmd.OutOrStdout(), &buf)
			return err
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "search text")
	cmd.Flags().IntVar(&maxPages, "max-pages", 0, "stop after this many pages (0 walks all)")
	cmd.Flags().BoolVar(&pager, "pager", false, "show the output in a pager")
	return cmd
}

// Dump walks ctrl page by page until the last page or maxPages and writes the displayed
// items as key<TAB>caption lines. It returns the number of lines written.
func Dump(ctx context.Context, ctrl *list.Controller, query string, maxPages int, w io.Writer) (int, error) {
	server := ctrl.Strategy().ServerSide()
	if server && query != "" {
		ctrl.Search(list.ActivationKey, query)
	}

	if err := ctrl.Load(ctx); err != nil {
		return 0, err
	}
	for ctrl.NeedsLoad() && !ctrl.LastPage() {
		if maxPages > 0 && ctrl.Page() >= maxPages {
			break
		}
		// report the bottom of the list to move to the next page
		shown := len(ctrl.Displayed())
		if !ctrl.OnScroll(shown, shown, 0) {
			break
		}
		if err := ctrl.Load(ctx); err != nil {
			return 0, err
		}
	}

	if !server && query != "" {
		ctrl.Search("", query)
	}

	items := ctrl.Displayed()
	for _, it := range items {
		key := components.SanitizeOneLine(it.Key)
		caption := components.SanitizeOneLine(it.Caption)
		if _, err := fmt.Fprintf(w, "%s\t%s\n", key, caption); err != nil {
			return 0, fmt.Errorf("write item: %w", err)
		}
	}
	return len(items), nil
}

func runPager(r io.Reader) error {
	root, err := oviewer.NewRoot(r)
	if err != nil {
		return fmt.Errorf("open pager: %w", err)
	}
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)
	return root.Run()
}
