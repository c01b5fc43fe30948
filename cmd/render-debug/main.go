// Command render-debug summarizes a menukit render debug log. It reads
// the JSONL records written by Screen.SetDebugWriter and reports where
// the paint time and bytes went, per region. With -follow it tails the
// file and prints records as they arrive.
//
// Usage:
//
//	# Terminal 1: produce a log
//	go run ./cmd/render-stress
//
//	# Terminal 2: watch it live
//	go run ./cmd/render-debug -follow
//
//	# Afterwards: the totals
//	go run ./cmd/render-debug
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"
	"time"
)

func main() {
	logFile := flag.String("file", "/tmp/menukit_render_debug.log", "path to JSONL render debug log")
	follow := flag.Bool("follow", false, "tail the file and print records live")
	top := flag.Int("top", 5, "number of slowest renders to list")
	flag.Parse()

	var err error
	if *follow {
		err = followFile(*logFile)
	} else {
		err = summarize(*logFile, *top)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// record mirrors the JSONL schema emitted by the screen's debug writer.
type record struct {
	Ts      int64  `json:"ts"`
	Op      string `json:"op"`
	Region  string `json:"region"`
	Painted int    `json:"painted"`
	Skipped int    `json:"skipped"`
	Bytes   int    `json:"bytes"`
	Dropped bool   `json:"dropped"`
	Us      int64  `json:"us"`
}

type regionTotals struct {
	renders int
	painted int
	skipped int
	bytes   int
	us      int64
	maxUs   int64
}

func summarize(path string, top int) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer f.Close() //nolint:errcheck

	var (
		records  []record
		regions  = map[string]*regionTotals{}
		dropped  int
		badLines int
	)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec record
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			badLines++
			continue
		}
		records = append(records, rec)
		if rec.Dropped {
			dropped++
			continue
		}
		rt := regions[rec.Region]
		if rt == nil {
			rt = &regionTotals{}
			regions[rec.Region] = rt
		}
		rt.renders++
		rt.painted += rec.Painted
		rt.skipped += rec.Skipped
		rt.bytes += rec.Bytes
		rt.us += rec.Us
		if rec.Us > rt.maxUs {
			rt.maxUs = rec.Us
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read log: %w", err)
	}
	if len(records) == 0 {
		fmt.Println("no records")
		return nil
	}

	first := time.UnixMilli(records[0].Ts)
	last := time.UnixMilli(records[len(records)-1].Ts)
	span := last.Sub(first)

	var painted, skipped, bytes int
	for _, rt := range regions {
		painted += rt.painted
		skipped += rt.skipped
		bytes += rt.bytes
	}
	skipRatio := 0.0
	if painted+skipped > 0 {
		skipRatio = float64(skipped) / float64(painted+skipped) * 100
	}

	fmt.Printf("%d records over %s (%d dropped", len(records), span.Truncate(time.Millisecond), dropped)
	if badLines > 0 {
		fmt.Printf(", %d unparsable lines", badLines)
	}
	fmt.Println(")")
	fmt.Printf("lines painted %d, skipped %d (%.1f%% saved by the diff), %d bytes written\n\n",
		painted, skipped, skipRatio, bytes)

	names := make([]string, 0, len(regions))
	for name := range regions {
		names = append(names, name)
	}
	sort.Strings(names)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "region\trenders\tpainted\tskipped\tbytes\tavg µs\tmax µs")
	for _, name := range names {
		rt := regions[name]
		avg := int64(0)
		if rt.renders > 0 {
			avg = rt.us / int64(rt.renders)
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t%d\n",
			name, rt.renders, rt.painted, rt.skipped, rt.bytes, avg, rt.maxUs)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Us > records[j].Us })
	n := min(top, len(records))
	fmt.Printf("\nslowest %d renders:\n", n)
	for _, rec := range records[:n] {
		fmt.Printf("  %s  %-6s %-12s painted=%d bytes=%d took=%dµs\n",
			time.UnixMilli(rec.Ts).Format("15:04:05.000"), rec.Op, rec.Region,
			rec.Painted, rec.Bytes, rec.Us)
	}
	return nil
}

// followFile tails the log, surviving truncation when the producer
// reopens it, and prints one line per record.
func followFile(path string) error {
	for {
		f, err := os.Open(path)
		if err != nil {
			time.Sleep(500 * time.Millisecond)
			continue
		}

		f.Seek(0, io.SeekEnd) //nolint:errcheck
		scanner := bufio.NewScanner(f)
		for {
			for scanner.Scan() {
				var rec record
				if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
					continue
				}
				printRecord(rec)
			}
			time.Sleep(50 * time.Millisecond)

			info, err := f.Stat()
			if err != nil {
				break
			}
			pos, _ := f.Seek(0, io.SeekCurrent)
			if info.Size() < pos {
				break
			}
			scanner = bufio.NewScanner(f)
		}
		f.Close() //nolint:errcheck
	}
}

func printRecord(rec record) {
	status := ""
	if rec.Dropped {
		status = "  DROPPED"
	}
	fmt.Printf("%s  %-6s %-12s painted=%-3d skipped=%-3d bytes=%-5d took=%dµs%s\n",
		time.UnixMilli(rec.Ts).Format("15:04:05.000"), rec.Op, rec.Region,
		rec.Painted, rec.Skipped, rec.Bytes, rec.Us, status)
}
