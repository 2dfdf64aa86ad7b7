package ocr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/gridscan/model"
)

func invoiceTable() *model.Table {
	merged := model.Cell{X1: 0, Y1: 50, X2: 200, Y2: 100}
	return model.NewTable(
		model.NewRow(model.Cell{X1: 0, Y1: 0, X2: 100, Y2: 50}, model.Cell{X1: 100, Y1: 0, X2: 200, Y2: 50}),
		model.NewRow(merged, merged),
	)
}

func invoiceWords() []Word {
	return []Word{
		{Text: "lines", BBox: model.Cell{X1: 10, Y1: 80, X2: 40, Y2: 95}, Confidence: 90},
		{Text: "due", BBox: model.Cell{X1: 55, Y1: 12, X2: 95, Y2: 28}, Confidence: 90},
		{Text: "Total", BBox: model.Cell{X1: 10, Y1: 10, X2: 50, Y2: 30}, Confidence: 90},
		{Text: "Amount", BBox: model.Cell{X1: 110, Y1: 10, X2: 190, Y2: 30}, Confidence: 30},
		{Text: "2", BBox: model.Cell{X1: 10, Y1: 60, X2: 30, Y2: 75}, Confidence: 90},
	}
}

func TestAttachWords(t *testing.T) {
	in := invoiceTable()

	out := AttachWords([]*model.Table{in}, invoiceWords(), DefaultMinConfidence)

	require.Len(t, out, 1)
	assert.Equal(t, [][]string{
		{"Total due", ""},
		{"2\nlines", "2\nlines"},
	}, out[0].Content)
	assert.Nil(t, in.Content, "the input table is not modified")
	assert.Equal(t, in.Items, out[0].Items)
}

func TestAttachWordsMinConfidence(t *testing.T) {
	out := AttachWords([]*model.Table{invoiceTable()}, invoiceWords(), 0)
	assert.Equal(t, "Amount", out[0].Content[0][1])
}

func TestAttachWordsNoWords(t *testing.T) {
	out := AttachWords([]*model.Table{invoiceTable()}, nil, DefaultMinConfidence)
	assert.Equal(t, [][]string{{"", ""}, {"", ""}}, out[0].Content)
}

func TestSortReadingOrder(t *testing.T) {
	words := invoiceWords()
	sortReadingOrder(words)

	var got []string
	for _, w := range words {
		got = append(got, w.Text)
	}
	assert.Equal(t, []string{"Total", "due", "Amount", "2", "lines"}, got)
}
