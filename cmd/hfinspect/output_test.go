package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/samcharles93/hfinspect/internal/api"
	"github.com/samcharles93/hfinspect/internal/hfiletest"
	"github.com/samcharles93/hfinspect/internal/logger"
	"github.com/samcharles93/hfinspect/pkg/hfile/trailerpb"
)

func sampleResponse() api.TrailerResponse {
	return api.TrailerResponse{
		Path:                   "/data/region/cf/abc",
		Version:                "3.0",
		MajorVersion:           3,
		FileInfoOffset:         4096,
		TotalUncompressedBytes: 3 * 1024 * 1024,
		EntryCount:             42,
		Comparator:             "kv",
		ComparatorClassName:    "org.apache.hadoop.hbase.CellComparatorImpl",
		CompressionCodec:       "snappy",
		CompressionCode:        3,
		BlockDecodable:         true,
	}
}

func TestRenderTrailersJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := renderTrailers(&buf, "json", []api.TrailerResponse{sampleResponse()}); err != nil {
		t.Fatalf("render: %v", err)
	}
	var got []api.TrailerResponse
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(got) != 1 || got[0] != sampleResponse() {
		t.Fatalf("json output: got %+v", got)
	}
}

func TestRenderTrailersYAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := renderTrailers(&buf, "yaml", []api.TrailerResponse{sampleResponse()}); err != nil {
		t.Fatalf("render: %v", err)
	}
	var got []api.TrailerResponse
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(got) != 1 || got[0] != sampleResponse() {
		t.Fatalf("yaml output: got %+v", got)
	}
	if !strings.Contains(buf.String(), "compression_codec: snappy") {
		t.Fatalf("yaml output missing codec:\n%s", buf.String())
	}
}

func TestRenderTrailersText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	docs := []api.TrailerResponse{sampleResponse(), sampleResponse()}
	if err := renderTrailers(&buf, "text", docs); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"HFile Trailer: /data/region/cf/abc",
		"version:",
		"3.0",
		"kv (org.apache.hadoop.hbase.CellComparatorImpl)",
		"3145728 (3.0 MB)",
		"snappy",
		"blocks decodable:",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("text output missing %q:\n%s", want, out)
		}
	}
	if n := strings.Count(out, "HFile Trailer:"); n != 2 {
		t.Fatalf("trailer headers: got %d want 2", n)
	}
}

func TestRenderTrailersUnknownFormat(t *testing.T) {
	t.Parallel()

	if err := renderTrailers(&bytes.Buffer{}, "xml", nil); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   uint64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{2048, "2048 (2.0 KB)"},
		{5 * 1024 * 1024, "5242880 (5.0 MB)"},
		{3 << 30, "3221225472 (3.0 GB)"},
	}
	for _, tc := range cases {
		if got := formatBytes(tc.in); got != tc.want {
			t.Fatalf("formatBytes(%d): got %q want %q", tc.in, got, tc.want)
		}
	}
}

func quietContext() context.Context {
	return logger.WithContext(context.Background(), logger.Discard())
}

func TestTrailerCommand(t *testing.T) {
	dir := t.TempDir()
	payload := hfiletest.Payload(&trailerpb.FileTrailer{
		FileInfoOffset:   hfiletest.U64(777),
		EntryCount:       hfiletest.U64(9),
		CompressionCodec: hfiletest.U32(3),
	})
	path := hfiletest.WriteFile(t, dir, "good", make([]byte, 64), hfiletest.ProtobufTrailer(3, 0, payload))

	var buf bytes.Buffer
	cmd := trailerCmd()
	cmd.Writer = &buf
	if err := cmd.Run(quietContext(), []string{"trailer", "--format", "json", path}); err != nil {
		t.Fatalf("run: %v", err)
	}

	var got []api.TrailerResponse
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, buf.String())
	}
	if len(got) != 1 {
		t.Fatalf("documents: got %d want 1", len(got))
	}
	if got[0].FileInfoOffset != 777 || got[0].EntryCount != 9 || got[0].CompressionCodec != "snappy" || !got[0].BlockDecodable {
		t.Fatalf("trailer: got %+v", got[0])
	}
}

func TestTrailerCommandPartialFailure(t *testing.T) {
	dir := t.TempDir()
	good := hfiletest.WriteFile(t, dir, "good", nil, hfiletest.ProtobufTrailer(2, 2, hfiletest.Payload(&trailerpb.FileTrailer{})))
	bad := hfiletest.WriteFile(t, dir, "bad", nil, make([]byte, 300))

	var buf bytes.Buffer
	cmd := trailerCmd()
	cmd.Writer = &buf
	err := cmd.Run(quietContext(), []string{"trailer", good, bad, dir + "/absent"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "2 of 3 files failed") {
		t.Fatalf("error: got %v", err)
	}
	if n := strings.Count(buf.String(), "HFile Trailer:"); n != 1 {
		t.Fatalf("rendered trailers: got %d want 1\n%s", n, buf.String())
	}
}

func TestTrailerCommandRequiresFile(t *testing.T) {
	cmd := trailerCmd()
	cmd.Writer = &bytes.Buffer{}
	if err := cmd.Run(quietContext(), []string{"trailer"}); err == nil {
		t.Fatalf("expected error without FILE")
	}
}

func TestTrailerCommandConfigFormat(t *testing.T) {
	saved := cfg
	cfg = Config{OutputFormat: "yaml"}
	t.Cleanup(func() { cfg = saved })

	dir := t.TempDir()
	path := hfiletest.WriteFile(t, dir, "f", nil, hfiletest.ProtobufTrailer(3, 1, hfiletest.Payload(&trailerpb.FileTrailer{})))

	var buf bytes.Buffer
	cmd := trailerCmd()
	cmd.Writer = &buf
	if err := cmd.Run(quietContext(), []string{"trailer", path}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(buf.String(), "version: \"3.1\"") {
		t.Fatalf("expected yaml output from config, got:\n%s", buf.String())
	}

	buf.Reset()
	cmd = trailerCmd()
	cmd.Writer = &buf
	if err := cmd.Run(quietContext(), []string{"trailer", "--format", "text", path}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "HFile Trailer:") {
		t.Fatalf("explicit flag should win over config, got:\n%s", buf.String())
	}
}
