package listing

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []Record {
	price := int64(25000)
	return []Record{
		Assemble("John", "3BHK <flat> for rent in Indiranagar", TypeRent, Attributes{
			PropertyType: strPtr("3BHK"),
			Location:     strPtr("Indiranagar"),
			RentOrPrice:  &price,
			Phone:        strPtr("9876543210"),
		}),
		Assemble("Priya", "ಮನೆ ಬಾಡಿಗೆಗೆ", TypeOther, Attributes{}),
	}
}

func TestMarshalJSON(t *testing.T) {
	data, err := MarshalJSON(sampleRecords())
	require.NoError(t, err)
	out := string(data)

	// Keys follow the output column order.
	first := out[:strings.Index(out, "}")]
	last := -1
	for _, key := range Columns {
		i := strings.Index(first, `"`+key+`"`)
		require.GreaterOrEqual(t, i, 0, key)
		assert.Greater(t, i, last, "key %s out of order", key)
		last = i
	}

	assert.Contains(t, out, `"rent_or_price": 25000,`)
	assert.Contains(t, out, `"dimensions": null`)
	assert.Contains(t, out, `<flat>`, "html is not escaped")
	assert.Contains(t, out, "ಮನೆ ಬಾಡಿಗೆಗೆ", "non-ascii kept verbatim")
	assert.True(t, strings.HasPrefix(out, "[\n  {\n    \"sender\""), "two space indent")

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "complete", decoded[0]["status"])
	assert.Equal(t, "needs_review", decoded[1]["status"])
	assert.Nil(t, decoded[1]["location"])
}

func TestMarshalJSONEmpty(t *testing.T) {
	data, err := MarshalJSON(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestJSONWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "rentals_cleaned.json")

	require.NoError(t, NewJSONWriter(path).Write(sampleRecords()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want, err := MarshalJSON(sampleRecords())
	require.NoError(t, err)
	assert.Equal(t, want, data)
}

func TestJSONWriterUnwritablePath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	err := NewJSONWriter(filepath.Join(blocker, "out.json")).Write(sampleRecords())
	assert.Error(t, err)
}

func TestCSVWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rentals.csv")

	require.NoError(t, NewCSVWriter(path).Write(sampleRecords()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Columns, rows[0])
	assert.Equal(t, []string{
		"John", "3BHK <flat> for rent in Indiranagar", "rent", "", "3BHK", "Indiranagar",
		"", "25000", "9876543210", "", "", "", "complete",
	}, rows[1])
	assert.Equal(t, "needs_review", rows[2][len(Columns)-1])
}

func TestWritersSatisfyInterface(t *testing.T) {
	var _ Writer = NewJSONWriter("a.json")
	var _ Writer = NewCSVWriter("a.csv")
}
