package dataset

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var csvRows = []string{
	"Customer_ID,Marketing_Channel,Marketing_Spend,New_Customers",
	"CUST0001,Email,1000,50",
	"CUST0002,Referral,500,0",
	"CUST0003,Social Media,2500.5,125",
	"CUST0004,email, 800 ,40",
}

func writeCSV(t *testing.T, name string, rows []string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(strings.Join(rows, "\n")+"\n"), 0o644))
	return p
}

func TestLoadCSV(t *testing.T) {
	p := writeCSV(t, "cac.csv", csvRows)
	tbl, err := Load(p, LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "cac.csv", tbl.Name)
	assert.Equal(t, 4, tbl.Len())
	assert.Equal(t, []string{"Customer_ID", "Marketing_Channel", "Marketing_Spend", "New_Customers"}, tbl.Names())
	assert.Equal(t, "numeric", tbl.Kind("Marketing_Spend"))
	assert.Equal(t, "numeric", tbl.Kind("New_Customers"))
	assert.Equal(t, "categorical", tbl.Kind("Marketing_Channel"))
	assert.Equal(t, "unknown", tbl.Kind("Nope"))

	spend, err := tbl.Floats("Marketing_Spend")
	require.NoError(t, err)
	assert.Equal(t, []float64{1000, 500, 2500.5, 800}, spend)

	ch, err := tbl.Strings("Marketing_Channel")
	require.NoError(t, err)
	assert.Equal(t, []string{"Email", "Referral", "Social Media", "email"}, ch)
}

func TestLoadCSVKeepsTextPadding(t *testing.T) {
	p := writeCSV(t, "pad.csv", []string{
		" Marketing_Channel ,Marketing_Spend",
		"Email, 1000",
		"Email ,900 ",
		" Email,",
	})
	tbl, err := Load(p, LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Marketing_Channel", "Marketing_Spend"}, tbl.Names())

	ch, err := tbl.Strings("Marketing_Channel")
	require.NoError(t, err)
	assert.Equal(t, []string{"Email", "Email ", " Email"}, ch)

	spend, err := tbl.Floats("Marketing_Spend")
	require.NoError(t, err)
	assert.Equal(t, 1000.0, spend[0])
	assert.Equal(t, 900.0, spend[1])
	assert.True(t, math.IsNaN(spend[2]))
}

func TestLoadCSVBlankCellsAreMissing(t *testing.T) {
	p := writeCSV(t, "gaps.csv", []string{
		"Marketing_Channel,Marketing_Spend,New_Customers",
		"Email,1000,50",
		"Email,,10",
	})
	tbl, err := Load(p, LoadOptions{})
	require.NoError(t, err)
	spend, err := tbl.Floats("Marketing_Spend")
	require.NoError(t, err)
	assert.Equal(t, 1000.0, spend[0])
	assert.True(t, math.IsNaN(spend[1]))
	miss, err := tbl.Missing("Marketing_Spend")
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true}, miss)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.csv"), LoadOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	p := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(p, []byte("{}"), 0o644))
	_, err = Load(p, LoadOptions{})
	assert.ErrorIs(t, err, ErrUnsupported)

	hdr := writeCSV(t, "hdr.csv", csvRows[:1])
	_, err = Load(hdr, LoadOptions{})
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestColumnErrors(t *testing.T) {
	p := writeCSV(t, "cac.csv", csvRows)
	tbl, err := Load(p, LoadOptions{})
	require.NoError(t, err)

	_, err = tbl.Floats("Revenue")
	assert.ErrorIs(t, err, ErrMissingColumn)
	_, err = tbl.Floats("Marketing_Channel")
	assert.ErrorIs(t, err, ErrNotNumeric)
	assert.ErrorIs(t, RequireColumns(tbl, "Marketing_Spend", "Revenue"), ErrMissingColumn)
	assert.NoError(t, RequireColumns(tbl, "Marketing_Spend", "New_Customers"))
}

func TestSetFloatsAndSubset(t *testing.T) {
	p := writeCSV(t, "cac.csv", csvRows)
	tbl, err := Load(p, LoadOptions{})
	require.NoError(t, err)

	require.NoError(t, tbl.SetFloats("Score", []float64{1, 2, 3, 4}))
	assert.Equal(t, "Score", tbl.Names()[len(tbl.Names())-1])
	assert.Error(t, tbl.SetFloats("Short", []float64{1}))

	sub, err := tbl.Subset([]int{3, 0})
	require.NoError(t, err)
	scores, err := sub.Floats("Score")
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 1}, scores)
	// original order untouched
	orig, _ := tbl.Floats("Score")
	assert.Equal(t, []float64{1, 2, 3, 4}, orig)

	_, err = tbl.Subset(nil)
	assert.ErrorIs(t, err, ErrEmpty)
	assert.Len(t, tbl.Head(2), 2)
	assert.Equal(t, "CUST0001", tbl.Head(1)[0][0])
}

func TestLoadXLSXSheetSelection(t *testing.T) {
	p := filepath.Join(t.TempDir(), "cac.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Data"))
	for i, line := range csvRows {
		cells := strings.Split(line, ",")
		row := make([]interface{}, len(cells))
		for j, c := range cells {
			row[j] = c
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Data", cell, &row))
	}
	_, err := f.NewSheet("Notes")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Notes", "A1", "free text"))
	require.NoError(t, f.SaveAs(p))
	require.NoError(t, f.Close())

	byName, err := Load(p, LoadOptions{SheetName: "data"})
	require.NoError(t, err)
	assert.Equal(t, 4, byName.Len())
	spend, err := byName.Floats("Marketing_Spend")
	require.NoError(t, err)
	assert.Equal(t, []float64{1000, 500, 2500.5, 800}, spend)

	byIndex, err := Load(p, LoadOptions{SheetIndex: 1})
	require.NoError(t, err)
	assert.Equal(t, byName.Names(), byIndex.Names())

	_, err = Load(p, LoadOptions{SheetName: "Missing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Available sheets: Data, Notes")

	_, err = Load(p, LoadOptions{SheetIndex: 5})
	assert.Error(t, err)
}
