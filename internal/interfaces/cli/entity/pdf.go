package entity

import (
	"context"

	"github.com/spf13/cobra"

	"helpdesk/internal/application/export"
	pvo "helpdesk/internal/domain/permission/value_objects"
	"helpdesk/internal/interfaces/cli/app"
)

// NewPDFCommand downloads the document of one record, saves it and opens it
// in the configured viewer.
func NewPDFCommand(opts *app.Options, resource pvo.Resource, kind string, download func(c *app.Container) export.Downloader) *cobra.Command {
	var noOpen bool
	cmd := &cobra.Command{
		Use:   "pdf ID",
		Short: "Download the " + kind + " document and open it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ParseID(args[0])
			if err != nil {
				return err
			}
			return app.Run(cmd, opts, func(ctx context.Context, c *app.Container) error {
				if err := c.Require(resource, pvo.ActionExport); err != nil {
					return err
				}
				path, err := c.Export.PDF(ctx, kind, id, download(c), !noOpen)
				if err != nil {
					return err
				}
				return c.Out.Print(map[string]string{"path": path}, app.Table{
					Headers: []string{"Arquivo"},
					Rows:    [][]string{{path}},
				})
			})
		},
	}
	cmd.Flags().BoolVar(&noOpen, "no-open", false, "Only save the file, do not open the viewer")
	return cmd
}
