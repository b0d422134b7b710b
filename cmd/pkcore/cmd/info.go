/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ssargent/pkcore/pkg/api"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Show the contents of a record file",
	Long: `Decode a record file and print its fields. The generation is taken from
the file extension (.pk3 .pk4 .pk5 .pk6 .pk7 .pb7 .pk8) unless --gen is given.

Examples:
  pkcore info pikachu.pk7
  pkcore info dump.bin --gen 4 --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		gen, _ := cmd.Flags().GetString("gen")
		format, _ := cmd.Flags().GetString("format")

		r, err := readRecord(args[0], gen)
		if err != nil {
			return err
		}
		return outputRecord(cmd.OutOrStdout(), format, api.NewRecordView("", r, a.tables))
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().String("gen", "", "Record generation: 3-8 or lgpe")
	infoCmd.Flags().String("format", formatTable, "Output format: table or json")
}
