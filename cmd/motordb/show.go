package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/openrocket/motor-database/internal/store"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print a summary of the built database",
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	applyLogFlags()

	if _, err := os.Stat(dbPath()); os.IsNotExist(err) {
		return fmt.Errorf("database does not exist: %s (run build first)", dbPath())
	}

	st, err := store.Open(dbPath())
	if err != nil {
		return err
	}
	defer st.Close()

	motors, err := st.CountMotors(st.DB())
	if err != nil {
		return err
	}
	curves, err := st.CountCurves(st.DB())
	if err != nil {
		return err
	}
	samples, err := st.CountSamples(st.DB())
	if err != nil {
		return err
	}
	version, err := st.GetMeta(st.DB(), "database_version")
	if err != nil {
		return err
	}
	generated, err := st.GetMeta(st.DB(), "generated_at")
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Database", dbPath()})
	t.AppendRows([]table.Row{
		{"Version", version},
		{"Generated", generated},
		{"Motors", motors},
		{"Curves", curves},
		{"Samples", samples},
	})
	if info, err := os.Stat(dbPath()); err == nil {
		t.AppendRow(table.Row{"Size", humanize.Bytes(uint64(info.Size()))})
	}
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	t.Render()

	stats, err := st.StatsByManufacturer(st.DB())
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		return nil
	}

	t = table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Manufacturer", "Motors", "Curves"})
	for _, s := range stats {
		t.AppendRow(table.Row{s.Name, s.Motors, s.Curves})
	}
	t.AppendFooter(table.Row{"Total", motors, curves})
	t.Render()
	return nil
}
