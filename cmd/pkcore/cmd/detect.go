/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ssargent/pkcore/pkg/save"
)

// detectCmd represents the detect command
var detectCmd = &cobra.Command{
	Use:   "detect <save>",
	Short: "Identify a save file and list its records",
	Long: `Identify the game a save file belongs to and print its box and party
layout. --list prints every occupied slot.

Examples:
  pkcore detect main.sav
  pkcore detect main --list`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		list, _ := cmd.Flags().GetBool("list")

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read save: %w", err)
		}
		sav, err := save.Open(data, save.WithPersonal(a.tables), save.WithConverter(a.converter()))
		if err != nil {
			return err
		}

		cmd.Printf("Version:    %s\n", sav.Version())
		cmd.Printf("Generation: %s\n", sav.Generation())
		cmd.Printf("Boxes:      %d x %d\n", sav.BoxCount(), sav.SlotsPerBox())
		cmd.Printf("Party:      %d\n", sav.PartyCount())
		if list {
			return listSlots(cmd.OutOrStdout(), sav)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
	detectCmd.Flags().Bool("list", false, "List every occupied slot")
}

func listSlots(w io.Writer, sav save.Save) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "\nSLOT\tSPECIES\tNICKNAME\tLEVEL\tCHECKSUM")
	for i := 0; i < sav.PartyCount(); i++ {
		r, err := sav.PartyRecord(i)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "party %d\t%d\t%s\t%d\t%s\n", i+1, r.Species(), r.Nickname(), r.Level(), validity(r.ChecksumValid()))
	}
	for box := 0; box < sav.BoxCount(); box++ {
		for slot := 0; slot < sav.SlotsPerBox(); slot++ {
			r, err := sav.BoxRecord(box, slot)
			if err != nil {
				return err
			}
			if r.Species() == 0 {
				continue
			}
			fmt.Fprintf(tw, "box %d/%d\t%d\t%s\t-\t%s\n", box+1, slot+1, r.Species(), r.Nickname(), validity(r.ChecksumValid()))
		}
	}
	return nil
}
