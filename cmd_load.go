package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tejzpr/vibeque-hq/internal/db"
	"github.com/tejzpr/vibeque-hq/internal/queue"
)

var loadSheetID string

var loadCmd = &cobra.Command{
	Use:   "load <file.csv>",
	Short: "Load a CSV export into the rehearsal database",
	Long: `Replaces one worksheet of the SQLite rehearsal database with the rows of a
CSV export of the request sheet. The first line must be the header. Use
source.driver: sqlite to point the dashboard at it.`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

var worksheetsCmd = &cobra.Command{
	Use:   "worksheets",
	Short: "List worksheets in the rehearsal database",
	Args:  cobra.NoArgs,
	RunE:  runWorksheets,
}

func init() {
	loadCmd.Flags().StringVar(&loadSheetID, "sheet-id", "", "Sheet id to store under (default from config, or \"local\")")
}

func runLoad(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	sheet, err := db.ReadCSV(f)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	if _, err := queue.ResolveSchema(sheet.Header, nil); err != nil {
		logger.Warn("loaded sheet will be rejected by the default column aliases", zap.Error(err))
	}

	d, err := openRehearsalDB()
	if err != nil {
		return err
	}
	defer closeDB(d)

	sheetID := loadSheetID
	if sheetID == "" {
		sheetID = cfg.Sheet.ID
	}
	if sheetID == "" {
		sheetID = defaultLocalSheet
	}

	if err := db.NewStore(d).ReplaceWorksheet(cmd.Context(), sheetID, cfg.Sheet.Tab, sheet); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "loaded %d rows into %s/%s\n", len(sheet.Rows), sheetID, cfg.Sheet.Tab)
	return nil
}

func runWorksheets(cmd *cobra.Command, args []string) error {
	d, err := openRehearsalDB()
	if err != nil {
		return err
	}
	defer closeDB(d)

	sheets, err := db.NewStore(d).Worksheets(cmd.Context())
	if err != nil {
		return err
	}
	if len(sheets) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no worksheets loaded")
		return nil
	}

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("SHEET", "TAB", "COLUMNS", "UPDATED")
	for _, ws := range sheets {
		t.Row(ws.SheetID, ws.Tab, strconv.Itoa(len(ws.Header)), humanize.Time(ws.UpdatedAt))
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), t.String())
	return err
}
