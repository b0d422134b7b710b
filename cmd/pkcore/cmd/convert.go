/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ssargent/pkcore/pkg/codec"
	"github.com/ssargent/pkcore/pkg/game"
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert <file>...",
	Short: "Convert record files to a later generation",
	Long: `Convert record files forward to the generation given by --to. Each
output is written next to its input (or into --out-dir) with the
extension of the target format. Fields the target cannot hold are listed.

Examples:
  pkcore convert pikachu.pk3 --to 8
  pkcore convert box/*.pk7 --to lgpe --out-dir ./converted --encrypt`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		toFlag, _ := cmd.Flags().GetString("to")
		gen, _ := cmd.Flags().GetString("gen")
		outDir, _ := cmd.Flags().GetString("out-dir")
		encrypt, _ := cmd.Flags().GetBool("encrypt")

		target, err := game.ParseGeneration(toFlag)
		if err != nil {
			return err
		}
		if outDir != "" {
			if err := os.MkdirAll(outDir, 0750); err != nil {
				return fmt.Errorf("failed to create output dir: %w", err)
			}
		}

		records := make([]codec.Record, len(args))
		for i, path := range args {
			if records[i], err = readRecord(path, gen); err != nil {
				return err
			}
		}

		conv := a.converter()
		if len(records) > 1 {
			out, err := conv.ConvertAll(cmd.Context(), records, target)
			if err != nil {
				return err
			}
			for i, r := range out {
				dst := outputPath(args[i], outDir, target)
				if err := writeConverted(args[i], dst, r, encrypt); err != nil {
					return err
				}
				cmd.Printf("%s -> %s\n", args[i], dst)
			}
			return nil
		}

		out, rep, err := conv.ConvertWithReport(records[0], target)
		if err != nil {
			return err
		}
		dst := outputPath(args[0], outDir, target)
		if err := writeConverted(args[0], dst, out, encrypt); err != nil {
			return err
		}
		cmd.Printf("%s -> %s\n", args[0], dst)
		for _, d := range rep.Dropped {
			cmd.Printf("  dropped %s\n", d)
		}
		if rep.LiteralAbility {
			cmd.Printf("  ability kept literally; it does not match the target's tables\n")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().String("to", "", "Target generation: 3-8 or lgpe (required)")
	convertCmd.Flags().String("gen", "", "Source generation when the extension does not tell")
	convertCmd.Flags().String("out-dir", "", "Directory for converted files")
	convertCmd.Flags().Bool("encrypt", false, "Write encrypted records")
	if err := convertCmd.MarkFlagRequired("to"); err != nil {
		panic(err)
	}
}

func outputPath(src, outDir string, target game.Generation) string {
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)) + extension(target)
	if outDir == "" {
		outDir = filepath.Dir(src)
	}
	return filepath.Join(outDir, base)
}

func writeConverted(src, dst string, r codec.Record, encrypt bool) error {
	if filepath.Clean(src) == filepath.Clean(dst) {
		return fmt.Errorf("refusing to overwrite %s, pass --out-dir", src)
	}
	return writeRecord(dst, r, encrypt)
}
