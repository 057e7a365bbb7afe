// Package ui renders CLI output.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/omaciel/uplink/pkg/config"
)

// RenderSystemsTable renders one row per system with its roles and services.
func RenderSystemsTable(w io.Writer, systems []config.PulpSystem) error {
	if len(systems) == 0 {
		fmt.Fprintln(w, "No systems found.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Options(
		tablewriter.WithHeader([]string{"Hostname", "Roles", "Services"}),
		tablewriter.WithRendition(
			tw.Rendition{
				Borders: tw.Border{
					Left:   tw.State(1),
					Top:    tw.State(1),
					Right:  tw.State(1),
					Bottom: tw.State(1),
				},
			},
		),
		tablewriter.WithAlignment(tw.MakeAlign(3, tw.AlignLeft)),
	)

	for _, system := range systems {
		if err := table.Append([]string{
			system.Hostname,
			strings.Join(system.RoleNames(), ", "),
			strings.Join(config.ServicesForRoles(system.Roles), ", "),
		}); err != nil {
			return fmt.Errorf("failed to append row: %w", err)
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}
