/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"

	"github.com/ssargent/pkcore/pkg/api"
	"github.com/ssargent/pkcore/pkg/storage"
)

// bankCmd groups the record bank commands
var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Store and retrieve records in the local bank",
	Long: `The bank is a local database of records keyed by id. Identical records
are stored once.`,
}

// withBank opens the bank for the duration of fn
func withBank(cmd *cobra.Command, fn func(*app, *storage.Bank) error) error {
	a, err := appFrom(cmd)
	if err != nil {
		return err
	}
	bank, err := a.openBank()
	if err != nil {
		return err
	}
	defer bank.Close()
	return fn(a, bank)
}

var bankPutCmd = &cobra.Command{
	Use:   "put <file>...",
	Short: "Add record files to the bank",
	Long: `Add record files to the bank and print their ids.

Example:
  pkcore bank put pikachu.pk7 eevee.pb7`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gen, _ := cmd.Flags().GetString("gen")
		return withBank(cmd, func(a *app, bank *storage.Bank) error {
			for _, path := range args {
				r, err := readRecord(path, gen)
				if err != nil {
					return err
				}
				if !r.ChecksumValid() {
					return fmt.Errorf("%s: checksum does not match its contents", path)
				}
				id, err := bank.Put(r)
				if err != nil {
					return err
				}
				cmd.Printf("%s\t%s\n", id, path)
			}
			return nil
		})
	},
}

var bankGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a banked record or write it to a file",
	Long: `Show a banked record. With --out the record is written to a file instead.

Examples:
  pkcore bank get 2DnVlLJd0mhbbBlvKfEYN8ycxvJ
  pkcore bank get 2DnVlLJd0mhbbBlvKfEYN8ycxvJ --out pikachu.pk7 --encrypt`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := ksuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid id %q: %w", args[0], err)
		}
		out, _ := cmd.Flags().GetString("out")
		encrypt, _ := cmd.Flags().GetBool("encrypt")
		format, _ := cmd.Flags().GetString("format")

		return withBank(cmd, func(a *app, bank *storage.Bank) error {
			r, err := bank.Get(id)
			if err != nil {
				return err
			}
			if out != "" {
				if err := writeRecord(out, r, encrypt); err != nil {
					return err
				}
				cmd.Printf("Wrote %s\n", out)
				return nil
			}
			return outputRecord(cmd.OutOrStdout(), format, api.NewRecordView(id.String(), r, a.tables))
		})
	},
}

var bankListCmd = &cobra.Command{
	Use:   "list",
	Short: "List banked records",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		species, _ := cmd.Flags().GetUint16("species")
		return withBank(cmd, func(a *app, bank *storage.Bank) error {
			list := bank.List
			if species != 0 {
				list = func() ([]storage.Meta, error) { return bank.BySpecies(species) }
			}
			metas, err := list()
			if err != nil {
				return err
			}
			return outputMetas(cmd.OutOrStdout(), format, metas)
		})
	},
}

var bankRmCmd = &cobra.Command{
	Use:   "rm <id>...",
	Short: "Remove records from the bank",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBank(cmd, func(a *app, bank *storage.Bank) error {
			for _, arg := range args {
				id, err := ksuid.Parse(arg)
				if err != nil {
					return fmt.Errorf("invalid id %q: %w", arg, err)
				}
				if err := bank.Delete(id); err != nil {
					return err
				}
				cmd.Printf("Removed %s\n", id)
			}
			return nil
		})
	},
}

var bankExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write every banked record to a compressed archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBank(cmd, func(a *app, bank *storage.Bank) error {
			f, err := os.OpenFile(args[0], os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
			if err != nil {
				return err
			}
			n, err := bank.Export(f)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}
			cmd.Printf("Exported %d records to %s\n", n, args[0])
			return nil
		})
	},
}

var bankImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Add the records of an exported archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBank(cmd, func(a *app, bank *storage.Bank) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			n, err := bank.Import(f)
			if err != nil {
				return err
			}
			cmd.Printf("Imported %d new records from %s\n", n, args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(bankCmd)
	bankCmd.AddCommand(bankPutCmd, bankGetCmd, bankListCmd, bankRmCmd, bankExportCmd, bankImportCmd)

	bankPutCmd.Flags().String("gen", "", "Record generation when the extension does not tell")
	bankGetCmd.Flags().String("out", "", "Write the record to this file")
	bankGetCmd.Flags().Bool("encrypt", false, "Write the record encrypted")
	bankGetCmd.Flags().String("format", formatTable, "Output format: table or json")
	bankListCmd.Flags().String("format", formatTable, "Output format: table or json")
	bankListCmd.Flags().Uint16("species", 0, "Only list records of this national dex number")
}
