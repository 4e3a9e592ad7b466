package writers

import (
	"fmt"
	"io"
	"strconv"

	"code.cloudfoundry.org/bytefmt"
	"github.com/olekukonko/tablewriter"

	"seqio/internal/jsonlutil"
	"seqio/internal/jsonutil"
	"seqio/internal/stats"
	"seqio/pkg/api"
)

// StatsTSVHeader is the column line of the tsv stats report.
const StatsTSVHeader = "file\tformat\tcompression\trecords\tbases\tmin_len\tmax_len\tmean_len\tn50\tsize_bytes"

func init() {
	RegisterStats("table", writeStatsTable)
	RegisterStats("tsv", writeStatsTSV)
	RegisterStats("json", jsonutil.EncodeList[api.StatsV1])
	RegisterStats("jsonl", jsonlutil.Write[api.StatsV1])
}

// ToAPIStats converts a summary to its wire form.
func ToAPIStats(s stats.Summary) api.StatsV1 {
	return api.StatsV1{
		File:        s.Path,
		Format:      s.Format,
		Compression: s.Compression,
		Records:     s.Records,
		Bases:       s.Bases,
		MinLen:      s.MinLen,
		MaxLen:      s.MaxLen,
		MeanLen:     s.MeanLen(),
		N50:         s.N50,
		SizeBytes:   s.SizeBytes,
	}
}

func humanSize(n int64) string {
	if n <= 0 {
		return "-"
	}
	return bytefmt.ByteSize(uint64(n))
}

func writeStatsTable(w io.Writer, rows []api.StatsV1) error {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"file", "format", "compression", "records", "bases", "min", "max", "mean", "N50", "size"})
	tw.SetAutoFormatHeaders(false)
	tw.SetBorder(false)
	tw.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
	})
	for _, r := range rows {
		tw.Append([]string{
			r.File, r.Format, r.Compression,
			strconv.Itoa(r.Records),
			strconv.FormatInt(r.Bases, 10),
			strconv.Itoa(r.MinLen),
			strconv.Itoa(r.MaxLen),
			strconv.FormatFloat(r.MeanLen, 'f', 1, 64),
			strconv.Itoa(r.N50),
			humanSize(r.SizeBytes),
		})
	}
	tw.Render()
	return nil
}

func writeStatsTSV(w io.Writer, rows []api.StatsV1) error {
	if _, err := fmt.Fprintln(w, StatsTSVHeader); err != nil {
		return err
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%.1f\t%d\t%d\n",
			r.File, r.Format, r.Compression, r.Records, r.Bases,
			r.MinLen, r.MaxLen, r.MeanLen, r.N50, r.SizeBytes,
		); err != nil {
			return err
		}
	}
	return nil
}

