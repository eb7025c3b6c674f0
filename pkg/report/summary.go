package report

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/ordena/pkg/style"
	"github.com/arthur-debert/ordena/pkg/types"
	"github.com/dustin/go-humanize"
)

// Summary renders the human readable run summary. Locations are grouped by
// category (sorted by name), each category lists its subcategories by
// descending count.
func Summary(stats *types.RunStatistics) string {
	var b strings.Builder

	b.WriteString(style.TitleStyle.Render("Reporte de organización jerárquica"))
	b.WriteString("  ")
	b.WriteString(modeBadge(stats.Mode))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Archivos procesados: %d\n", stats.FilesSeen)
	if !stats.Mode.IsDryRun() {
		fmt.Fprintf(&b, "Archivos movidos: %d\n", stats.FilesMoved)
		errLine := fmt.Sprintf("Errores: %d", stats.Errors)
		if stats.Errors > 0 {
			errLine = style.ErrorStyle.Render(errLine)
		}
		b.WriteString(errLine + "\n")
		if stats.Collisions > 0 {
			fmt.Fprintf(&b, "Renombrados por colisión: %d\n", stats.Collisions)
		}
		fmt.Fprintf(&b, "Datos movidos: %s\n", humanize.Bytes(uint64(stats.BytesMoved)))
	}

	breakdown := stats.Breakdown()
	if len(breakdown) == 0 {
		return b.String()
	}

	b.WriteString("\nDistribución por ubicación:\n\n")
	for _, group := range breakdown {
		fmt.Fprintf(&b, "  %s %s\n",
			style.CategoryStyle.Render(group.Category),
			style.MutedStyle.Render(fmt.Sprintf("(%d archivos)", group.Total)))
		for _, loc := range group.Locations {
			if !loc.Route.HasSubcategory() {
				continue
			}
			fmt.Fprintf(&b, "     └─ %s: %d\n", loc.Route.Subcategory, loc.Count)
		}
	}
	return b.String()
}

// PlanTable renders the per-file plan of a run, one row per file
func PlanTable(stats *types.RunStatistics) string {
	if len(stats.Files) == 0 {
		return ""
	}
	rows := make([][]string, 0, len(stats.Files))
	for _, f := range stats.Files {
		dest := f.Route.Key() + "/"
		if f.Status == types.FileStatusFailed {
			dest = "error: " + f.Error
		}
		rows = append(rows, []string{f.Name, dest})
	}
	return style.RenderTable([]string{"Archivo", "Destino"}, rows, nil)
}

func modeBadge(mode types.Mode) string {
	if mode.IsDryRun() {
		return style.DryRunStyle.Render("[DRY-RUN]")
	}
	return style.ExecuteStyle.Render("[EJECUCIÓN]")
}
