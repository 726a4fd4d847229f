package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ivlev/sagascape/internal/catalog"
)

func newCatalogCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Print the code catalog shown in the tech scene",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			content, err := loadContent(cfg)
			if err != nil {
				return err
			}
			printCatalog(cmd.OutOrStdout(), content)
			return nil
		},
	}
}

func printCatalog(w io.Writer, content *catalog.Content) {
	cat := content.Catalog()
	summary := cat.DescribeSummary()
	for _, d := range cat.DescribeAll() {
		fmt.Fprintln(w, d.Text)
	}
	fmt.Fprintln(w, summary.Text)
	if len(content.Features) > 0 {
		fmt.Fprintln(w)
		for _, f := range content.Features {
			fmt.Fprintln(w, catalog.DescribeFeature(f).Text)
		}
	}

	present := cat.Languages()
	langs := make([]string, 0, present.Size())
	for l := range present.All() {
		langs = append(langs, string(l))
	}
	slices.Sort(langs)
	fmt.Fprintf(w, "\nLanguages: %s\n", strings.Join(langs, ", "))
}
