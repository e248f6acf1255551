package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() Dataset {
	return Dataset{
		Title:   "Daily attendance",
		Headers: []string{"Student", "Status"},
		Rows:    [][]string{{"Ayu", "present"}, {"Budi", "late"}},
	}
}

func TestRenderCSV(t *testing.T) {
	doc, err := Render(FormatCSV, "attendance", sample())
	require.NoError(t, err)

	assert.Equal(t, "attendance.csv", doc.Filename)
	assert.Equal(t, "Student,Status\nAyu,present\nBudi,late\n", string(doc.Body))
}

func TestRenderCSVRejectsRaggedRows(t *testing.T) {
	data := sample()
	data.Rows = append(data.Rows, []string{"only-one"})

	_, err := NewCSVExporter().Render(data)
	assert.Error(t, err)
}

func TestRenderPDF(t *testing.T) {
	doc, err := Render(FormatPDF, "attendance", sample())
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.True(t, bytes.HasPrefix(doc.Body, []byte("%PDF")))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" PDF ")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)

	_, err = ParseFormat("xlsx")
	assert.Error(t, err)
}
