package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoColumn() *Frame {
	return New("t",
		&Field{Name: "Title", Type: FieldTypeString},
		&Field{Name: "Price", Type: FieldTypeNumber},
	)
}

func TestAppendRow(t *testing.T) {
	f := twoColumn()

	require.NoError(t, f.AppendRow("Phone", 549.0))
	require.NoError(t, f.AppendRow("Laptop", 1749.0))

	assert.Equal(t, 2, f.Len())
	assert.Equal(t, [][]any{{"Phone", 549.0}, {"Laptop", 1749.0}}, f.Rows())
}

func TestAppendRow_ArityMismatch(t *testing.T) {
	f := twoColumn()

	err := f.AppendRow("only one")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "got 1 values for 2 fields")
	assert.Equal(t, 0, f.Len())
}

func TestEmptyFrame(t *testing.T) {
	assert.Equal(t, 0, New("empty").Len())
	assert.Empty(t, New("empty").Rows())
	assert.Empty(t, twoColumn().Rows())
}

func TestFieldLookupAndDisplayName(t *testing.T) {
	f := twoColumn()
	f.Fields[1].Config.DisplayName = "Cost"

	require.NotNil(t, f.Field("Price"))
	assert.Equal(t, "Cost", f.Field("Price").DisplayName())
	assert.Equal(t, "Title", f.Field("Title").DisplayName())
	assert.Nil(t, f.Field("Missing"))
}
