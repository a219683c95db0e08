package main

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/samcharles93/hfinspect/internal/api"
)

func validFormat(format string) bool {
	switch format {
	case "text", "json", "yaml":
		return true
	}
	return false
}

func renderTrailers(w io.Writer, format string, docs []api.TrailerResponse) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(docs)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(docs); err != nil {
			return err
		}
		return enc.Close()
	case "text":
		for i, d := range docs {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if err := printTrailer(w, d); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func printTrailer(w io.Writer, d api.TrailerResponse) error {
	comparator := d.Comparator
	if d.ComparatorClassName != "" {
		comparator += " (" + d.ComparatorClassName + ")"
	}

	rows := []struct {
		label string
		value any
	}{
		{"version", d.Version},
		{"file info offset", d.FileInfoOffset},
		{"load-on-open offset", d.LoadOnOpenDataOffset},
		{"first data block offset", d.FirstDataBlockOffset},
		{"last data block offset", d.LastDataBlockOffset},
		{"data index levels", d.NumDataIndexLevels},
		{"data index count", d.DataIndexCount},
		{"meta index count", d.MetaIndexCount},
		{"uncompressed index size", formatBytes(d.UncompressedDataIndexSize)},
		{"total uncompressed", formatBytes(d.TotalUncompressedBytes)},
		{"entries", d.EntryCount},
		{"comparator", comparator},
		{"compression", d.CompressionCodec},
		{"blocks decodable", yesNo(d.BlockDecodable)},
	}

	if _, err := fmt.Fprintf(w, "HFile Trailer: %s\n", d.Path); err != nil {
		return err
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "  %-24s %v\n", r.label+":", r.value); err != nil {
			return err
		}
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func formatBytes(n uint64) string {
	const (
		kb = 1024
		mb = 1024 * kb
		gb = 1024 * mb
	)
	switch {
	case n >= gb:
		return fmt.Sprintf("%d (%.1f GB)", n, float64(n)/gb)
	case n >= mb:
		return fmt.Sprintf("%d (%.1f MB)", n, float64(n)/mb)
	case n >= kb:
		return fmt.Sprintf("%d (%.1f KB)", n, float64(n)/kb)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
