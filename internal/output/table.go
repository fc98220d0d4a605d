// Package output renders inventory results. Renderers are pure over the
// vault slice they are given: no capability calls, no reordering.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/johnayers/aws-vault-shuffle/internal/models"
)

// RenderTable writes one row per vault in input order.
func RenderTable(w io.Writer, vaults []models.Vault) {
	if len(vaults) == 0 {
		fmt.Fprintln(w, "No backup vaults found.")
		return
	}

	fmt.Fprintf(w, "%-32s  %-15s  %15s  %10s  %12s\n",
		"VAULT", "REGION", "RECOVERY POINTS", "COMPLETED", "TOTAL SIZE")
	fmt.Fprintln(w, strings.Repeat("-", 93))

	for _, v := range vaults {
		fmt.Fprintf(w, "%-32s  %-15s  %15d  %10d  %12s\n",
			v.Name,
			v.Region,
			v.RecoveryPointCount(),
			len(v.CompletedRecoveryPoints()),
			humanize.IBytes(uint64(v.TotalBackupSizeBytes())),
		)
	}
}

// RenderSummary writes per-region rollups followed by grand totals. Regions
// appear in first-seen order, which matches the configured scan order.
func RenderSummary(w io.Writer, vaults []models.Vault) {
	type regionStats struct {
		vaults int
		points int
		bytes  int64
	}

	var order []string
	stats := make(map[string]*regionStats)
	for _, v := range vaults {
		rs, ok := stats[v.Region]
		if !ok {
			rs = &regionStats{}
			stats[v.Region] = rs
			order = append(order, v.Region)
		}
		rs.vaults++
		rs.points += v.RecoveryPointCount()
		rs.bytes += v.TotalBackupSizeBytes()
	}

	var totalVaults, totalPoints int
	var totalBytes int64

	fmt.Fprintf(w, "%-15s  %8s  %15s  %12s\n", "REGION", "VAULTS", "RECOVERY POINTS", "TOTAL SIZE")
	fmt.Fprintln(w, strings.Repeat("-", 57))
	for _, region := range order {
		rs := stats[region]
		fmt.Fprintf(w, "%-15s  %8d  %15d  %12s\n",
			region, rs.vaults, rs.points, humanize.IBytes(uint64(rs.bytes)))
		totalVaults += rs.vaults
		totalPoints += rs.points
		totalBytes += rs.bytes
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total vaults:          %d\n", totalVaults)
	fmt.Fprintf(w, "Total recovery points: %d\n", totalPoints)
	fmt.Fprintf(w, "Total backup size:     %s\n", humanize.IBytes(uint64(totalBytes)))
}
