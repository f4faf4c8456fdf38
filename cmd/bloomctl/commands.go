package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/forestrie/go-bloom/bloom"
	"github.com/spf13/cobra"
)

// maxItemBytes bounds a single stdin item.
const maxItemBytes = 16 << 20

func newCreateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create FILE",
		Short: "Create an empty filter sized for a false positive rate and element count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if _, err := os.Stat(path); err == nil && !a.v.GetBool("force") {
				return fmt.Errorf("%s already exists, use --force to replace it", path)
			}
			format, err := parseFormat(a.v.GetString("format"))
			if err != nil {
				return err
			}
			h, err := parseHash(a.v.GetString("hash"))
			if err != nil {
				return err
			}

			f, err := bloom.New(a.v.GetFloat64("rate"), a.v.GetInt("count"),
				bloom.WithHash(h), bloom.WithLogger(a.log))
			if err != nil {
				return err
			}
			if err := saveFilter(path, f, format); err != nil {
				return err
			}
			a.log.Infof("created %s: m=%d k=%d format=%s", path, f.Size(), f.HashCount(), format)
			return nil
		},
	}
	cmd.Flags().Float64P("rate", "p", 0.01, "target false positive rate, in (0, 1)")
	cmd.Flags().IntP("count", "n", 1000, "expected number of elements")
	cmd.Flags().String("hash", "md5", "digest used to derive bit positions (md5, sha1, sha256, sha512)")
	cmd.Flags().String("format", string(formatBinary), "file format (binary, cbor)")
	cmd.Flags().Bool("force", false, "replace an existing file")
	return cmd
}

func newAddCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add FILE [ITEM...]",
		Short: "Add items, and with --stdin one item per input line, to a filter",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			items := args[1:]
			fromStdin := a.v.GetBool("stdin")
			if len(items) == 0 && !fromStdin {
				return errors.New("no items given")
			}

			f, format, err := loadFilter(path, bloom.WithLogger(a.log))
			if err != nil {
				return err
			}
			for _, item := range items {
				f.AddString(item)
			}
			added := len(items)
			if fromStdin {
				sc := bufio.NewScanner(cmd.InOrStdin())
				sc.Buffer(make([]byte, 0, 64*1024), maxItemBytes)
				for sc.Scan() {
					f.Add(bytes.TrimSuffix(sc.Bytes(), []byte("\r")))
					added++
				}
				if err := sc.Err(); err != nil {
					return err
				}
			}
			if err := saveFilter(path, f, format); err != nil {
				return err
			}
			a.log.Infof("added %d items to %s, count=%d", added, path, f.Count())
			if f.Count() > f.ExpectedCount() {
				a.log.Infof("%s holds %d items, more than the %d it was sized for", path, f.Count(), f.ExpectedCount())
			}
			return nil
		},
	}
	cmd.Flags().Bool("stdin", false, "also read items from standard input, one per line")
	return cmd
}

func newTestCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "test FILE ITEM...",
		Short: "Report whether each item is possibly present or definitely absent",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, _, err := loadFilter(args[0], bloom.WithLogger(a.log))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, item := range args[1:] {
				answer := "absent"
				if f.ContainsString(item) {
					answer = "maybe"
				}
				fmt.Fprintf(out, "%s\t%s\n", item, answer)
			}
			return nil
		},
	}
}

func newStatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stat FILE",
		Short: "Print the sizing and load of a filter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, format, err := loadFilter(args[0], bloom.WithLogger(a.log))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "format:           %s\n", format)
			fmt.Fprintf(out, "hash:             %v\n", f.Hash())
			fmt.Fprintf(out, "size:             %d\n", f.Size())
			fmt.Fprintf(out, "hashes:           %d\n", f.HashCount())
			fmt.Fprintf(out, "bits per element: %.4f\n", f.BitsPerElement())
			fmt.Fprintf(out, "expected count:   %d\n", f.ExpectedCount())
			fmt.Fprintf(out, "count:            %d\n", f.Count())
			fmt.Fprintf(out, "fill ratio:       %.4f\n", f.FillRatio())
			fmt.Fprintf(out, "expected fp rate: %.6f\n", f.ExpectedFalsePositiveRate())
			fmt.Fprintf(out, "current fp rate:  %.6f\n", f.CurrentFalsePositiveRate())
			return nil
		},
	}
}
