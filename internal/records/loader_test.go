package records

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `apprentice_number,apprentice_first,apprentice_last,apprentice_name,app_birth,master_name,master_birth,year,parish
1,John,Ridgway,John Ridgway,1580,Thomas Ridgway,1550,1598,St Olave
2,William,Hale,William Hale,1610,John Ridgway,1580,1628,
3,Richard,Pynder,Richard Pynder,,William Hale,1610,
`

func TestRead(t *testing.T) {
	recs, err := Read(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, recs, 3)

	first := recs[0]
	assert.Equal(t, 0, first.Index)
	assert.Equal(t, "1", first.Number)
	assert.Equal(t, "John", first.First)
	assert.Equal(t, "Ridgway", first.Last)
	assert.Equal(t, "John Ridgway", first.Name)
	assert.Equal(t, "1580", first.AppBirth)
	assert.Equal(t, "Thomas Ridgway", first.MasterName)
	assert.Equal(t, "1550", first.MasterBirth)
	assert.Equal(t, "1598", first.Year)
	assert.Equal(t, "St Olave", first.Get("parish"))

	third := recs[2]
	assert.Equal(t, 2, third.Index)
	assert.Empty(t, third.AppBirth)
	assert.Empty(t, third.Year)
	assert.False(t, third.HasYear())
	assert.False(t, third.HasApprenticeIdentity())
}

func TestRead_ShortRowsArePadded(t *testing.T) {
	input := "apprentice_number,apprentice_first,apprentice_last,apprentice_name,app_birth,master_name,master_birth,year\n" +
		"7,Ann,Cole,Ann Cole,1600\n"

	recs, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "1600", recs[0].AppBirth)
	assert.Empty(t, recs[0].MasterName)
	assert.Empty(t, recs[0].Year)
}

func TestRead_ByteOrderMark(t *testing.T) {
	recs, err := Read(strings.NewReader("\ufeff" + sampleCSV))
	require.NoError(t, err)
	assert.Equal(t, "1", recs[0].Number)
}

func TestRead_MissingColumns(t *testing.T) {
	input := "apprentice_number,apprentice_name,year\n1,John Ridgway,1598\n"

	_, err := Read(strings.NewReader(input))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumn))
	assert.Contains(t, err.Error(), "app_birth")
	assert.Contains(t, err.Error(), "master_birth")
}

func TestRead_Empty(t *testing.T) {
	_, err := Read(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "all_records.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0644))

	recs, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, recs, 3)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input")
}

func TestRecord_Label(t *testing.T) {
	r := &Record{First: "John", Last: "Ridgway", Year: "1598"}
	assert.Equal(t, "John Ridgway (1598)", r.Label())

	r.Year = ""
	assert.Equal(t, "John Ridgway ()", r.Label())
}

func TestFind(t *testing.T) {
	recs := []*Record{
		{Number: "10", First: "John"},
		{Number: "11", First: "William"},
		{Number: "11", First: "Duplicate"},
	}

	r, err := Find(recs, " 11 ")
	require.NoError(t, err)
	assert.Equal(t, "William", r.First)

	_, err = Find(recs, "99")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), `"99"`)
}
