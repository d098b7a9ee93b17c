package sheetimport

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCSVParser(t *testing.T) {
	t.Run("BOM is stripped", func(t *testing.T) {
		parser, err := NewCSVParser(strings.NewReader("\xEF\xBB\xBFname,age\nAlice,30"))
		require.NoError(t, err)
		require.NoError(t, parser.ParseHeader())
		assert.Equal(t, "name", parser.Headers()[0])
	})

	t.Run("Empty file", func(t *testing.T) {
		_, err := NewCSVParser(strings.NewReader(""))
		assert.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("Invalid UTF-8", func(t *testing.T) {
		_, err := NewCSVParser(strings.NewReader("name\n\xff\xfe\xfd"))
		assert.ErrorIs(t, err, ErrInvalidEncoding)
	})

	t.Run("Multi-byte rune at peek boundary", func(t *testing.T) {
		content := strings.Repeat("a", 4095) + "é"
		_, err := NewCSVParser(strings.NewReader(content))
		assert.NoError(t, err)
	})

	t.Run("Custom delimiter", func(t *testing.T) {
		parser, err := NewCSVParser(strings.NewReader("a;b\n1;2"), WithDelimiter(';'))
		require.NoError(t, err)
		require.NoError(t, parser.ParseHeader())
		assert.Equal(t, []string{"a", "b"}, parser.Headers())
	})
}

func TestCSVParser_ReadRow(t *testing.T) {
	parser, err := NewCSVParser(strings.NewReader("code, name ,price\n001, Widget \n002,Gadget,5"))
	require.NoError(t, err)
	require.NoError(t, parser.ParseHeader())
	assert.True(t, parser.HasHeader("name"))

	row, err := parser.ReadRow()
	require.NoError(t, err)
	assert.Equal(t, 2, row.LineNumber)
	assert.Equal(t, "Widget", row.Get("name"))
	assert.Equal(t, "", row.Get("price"))

	row, err = parser.ReadRow()
	require.NoError(t, err)
	assert.Equal(t, "5", row.Get("price"))

	_, err = parser.ReadRow()
	assert.ErrorIs(t, err, io.EOF)
}

func TestCSVParser_MissingHeader(t *testing.T) {
	parser, err := NewCSVParser(strings.NewReader("\n"))
	require.NoError(t, err)
	assert.ErrorIs(t, parser.ParseHeader(), ErrMissingHeader)
}
