package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/ssargent/pkcore/pkg/api"
	"github.com/ssargent/pkcore/pkg/derive"
	"github.com/ssargent/pkcore/pkg/storage"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

func outputJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputRecord displays a single record
func outputRecord(w io.Writer, format string, v api.RecordView) error {
	if format == formatJSON {
		return outputJSON(w, v)
	}
	return outputRecordTable(w, v)
}

func outputRecordTable(w io.Writer, v api.RecordView) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	if v.ID != "" {
		fmt.Fprintf(tw, "ID:\t%s\n", v.ID)
	}
	fmt.Fprintf(tw, "Generation:\t%s\n", v.Generation)
	fmt.Fprintf(tw, "Species:\t%d %s\n", v.Species, v.SpeciesName)
	if v.Form != 0 {
		fmt.Fprintf(tw, "Form:\t%d\n", v.Form)
	}
	fmt.Fprintf(tw, "Nickname:\t%s\n", v.Nickname)
	fmt.Fprintf(tw, "OT:\t%s (%s) %d/%d\n", v.OTName, v.OTGender, v.TID, v.SID)
	fmt.Fprintf(tw, "PID:\t%08X\n", v.PID)
	fmt.Fprintf(tw, "Level:\t%d (%d exp)\n", v.Level, v.Experience)
	fmt.Fprintf(tw, "Nature:\t%d\n", v.Nature)
	fmt.Fprintf(tw, "Gender:\t%s\n", v.Gender)
	fmt.Fprintf(tw, "Ability:\t%d (slot %d)\n", v.Ability, v.AbilityNumber)
	fmt.Fprintf(tw, "Held item:\t%d\n", v.HeldItem)
	fmt.Fprintf(tw, "Moves:\t%s\n", joinInts(v.Moves[:]))
	fmt.Fprintf(tw, "IVs:\t%s\n", statLine(v.IVs))
	fmt.Fprintf(tw, "EVs:\t%s\n", statLine(v.EVs))
	fmt.Fprintf(tw, "Shiny:\t%t\n", v.Shiny)
	if v.IsEgg {
		fmt.Fprintf(tw, "Egg:\ttrue\n")
	}
	fmt.Fprintf(tw, "Ball:\t%d\n", v.Ball)
	fmt.Fprintf(tw, "Origin:\t%s, met at %d (level %d)\n", v.Version, v.MetLocation, v.MetLevel)
	fmt.Fprintf(tw, "Checksum:\t%s\n", validity(v.ChecksumValid))
	return nil
}

// outputMetas displays banked records
func outputMetas(w io.Writer, format string, metas []storage.Meta) error {
	if format == formatJSON {
		if metas == nil {
			metas = []storage.Meta{}
		}
		return outputJSON(w, metas)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "ID\tGEN\tSPECIES\tNICKNAME\tOT\tSHINY\tADDED")
	for _, m := range metas {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
			m.ID, m.Generation, m.Species, m.Nickname, m.OTName, yesNo(m.Shiny),
			m.Added.Local().Format(time.DateTime))
	}
	return nil
}

func joinInts[T ~uint16 | ~int](vs []T) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, " / ")
}

func statLine(vs [derive.StatCount]int) string {
	parts := make([]string, 0, derive.StatCount)
	for _, s := range derive.Stats {
		parts = append(parts, fmt.Sprintf("%s %d", s, vs[s]))
	}
	return strings.Join(parts, "  ")
}

func validity(ok bool) string {
	if ok {
		return "valid"
	}
	return "INVALID"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
