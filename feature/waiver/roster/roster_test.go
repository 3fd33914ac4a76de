package roster

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// buildWorkbook creates an in-memory xlsx with the given rows on Sheet1.
func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestExtract_HeaderFirstRow(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"EYFID", "Name"},
		{1001, "Alice"},
		{1002, "Bob"},
		{1003, "Carol"},
	})

	ids, err := Extract(buf, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"1001", "1002", "1003"}, ids)
}

func TestExtract_HeaderSecondRowFallback(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"Emerald Youth Foundation - Spring Roster"},
		{"EYFID", "Name"},
		{2001, "Alice"},
		{2002, "Bob"},
	})

	ids, err := Extract(buf, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"2001", "2002"}, ids)
}

func TestExtract_FallbackIsNotRecursive(t *testing.T) {
	// Header buried two rows deep is out of reach for the single fallback.
	buf := buildWorkbook(t, [][]interface{}{
		{"Banner"},
		{"Subtitle"},
		{"EYFID"},
		{3001},
	})

	_, err := Extract(buf, Options{})
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "EYFID", schemaErr.Column)
}

func TestExtract_MissingColumn(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"StudentNumber", "Name"},
		{1001, "Alice"},
	})

	_, err := Extract(buf, Options{})
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Contains(t, err.Error(), "EYFID")
}

func TestExtract_Duplicates(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"EYFID"},
		{1001},
		{1002},
		{1001},
		{1003},
		{1002},
	})

	_, err := Extract(buf, Options{})
	var dupErr *DuplicateIDError
	require.ErrorAs(t, err, &dupErr)
	// Exactly the duplicated values, not the clean ones.
	assert.ElementsMatch(t, []string{"1001", "1002"}, dupErr.IDs)
	assert.NotContains(t, dupErr.IDs, "1003")
}

func TestExtract_SkipsEmptyCells(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"EYFID", "Name"},
		{1001, "Alice"},
		{"", "no id on file"},
		{1002, "Bob"},
	})

	ids, err := Extract(buf, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"1001", "1002"}, ids)
}

func TestExtract_UnparseableValue(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"EYFID"},
		{1001},
		{"pending"},
	})

	_, err := Extract(buf, Options{})
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "pending", parseErr.Value)
}

func TestExtract_CustomColumn(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"StudentID"},
		{42},
	})

	ids, err := Extract(buf, Options{ColumnName: "StudentID"})
	require.NoError(t, err)
	assert.Equal(t, []string{"42"}, ids)
}

func TestExtractCSV(t *testing.T) {
	t.Run("plain header", func(t *testing.T) {
		src := "EYFID,Name\n1001,Alice\n1002,Bob\n"
		ids, err := ExtractCSV(strings.NewReader(src), Options{})
		require.NoError(t, err)
		assert.Equal(t, []string{"1001", "1002"}, ids)
	})

	t.Run("numeric formatting discarded", func(t *testing.T) {
		src := "EYFID\n1001.0\n0042\n"
		ids, err := ExtractCSV(strings.NewReader(src), Options{})
		require.NoError(t, err)
		assert.Equal(t, []string{"1001", "42"}, ids)
	})

	t.Run("duplicates fail", func(t *testing.T) {
		src := "EYFID\n7\n7\n"
		_, err := ExtractCSV(strings.NewReader(src), Options{})
		var dupErr *DuplicateIDError
		require.ErrorAs(t, err, &dupErr)
		assert.Equal(t, []string{"7"}, dupErr.IDs)
	})
}

func TestExtractList(t *testing.T) {
	src := "1001\n\n1002\n1003\n"
	ids, err := ExtractList(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"1001", "1002", "1003"}, ids)

	_, err = ExtractList(strings.NewReader("1001\nabc\n"))
	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))
}
