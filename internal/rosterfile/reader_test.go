package rosterfile

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRoster = `club,first_name,last_name,nationality,age,shirt_number,position
Arsenal,Bukayo,Saka,England,23,7,FW
 Chelsea , Cole , Palmer ,England,22,,MF
Fulham,Short
`

func TestReader_Rows(t *testing.T) {
	r, err := NewReader(strings.NewReader(sampleRoster))
	require.NoError(t, err)
	assert.Equal(t, RequiredColumns, r.Header())
	assert.Empty(t, r.MissingColumns(RequiredColumns...))

	row, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, 2, row.Line)
	club, err := row.Get(ColumnClub)
	require.NoError(t, err)
	assert.Equal(t, "Arsenal", club)

	row, err = r.Next()
	require.NoError(t, err)
	first, err := row.Get(ColumnFirstName)
	require.NoError(t, err)
	assert.Equal(t, "Cole", first, "values are trimmed")
	shirt, err := row.Get(ColumnShirtNumber)
	require.NoError(t, err)
	assert.Equal(t, "", shirt)

	row, err = r.Next()
	require.NoError(t, err)
	assert.Equal(t, 4, row.Line)
	_, err = row.Get(ColumnLastName)
	assert.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, row.String(), "last_name: <missing>")

	_, err = r.Next()
	assert.True(t, errors.Is(err, io.EOF))
}

func TestReader_MissingHeaderColumn(t *testing.T) {
	r, err := NewReader(strings.NewReader("club,first_name,last_name\nArsenal,Declan,Rice\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{ColumnNationality, ColumnAge, ColumnShirtNumber, ColumnPosition}, r.MissingColumns(RequiredColumns...))

	row, err := r.Next()
	require.NoError(t, err)
	_, err = row.Get(ColumnPosition)
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestReader_EmptyInput(t *testing.T) {
	r, err := NewReader(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, r.Header())

	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestRowString(t *testing.T) {
	r, err := NewReader(strings.NewReader("club,first_name\nArsenal,William,extra\n"))
	require.NoError(t, err)

	row, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "{club: Arsenal, first_name: William, extra}", row.String())
}

func TestReader_StreamFailure(t *testing.T) {
	src := io.MultiReader(
		strings.NewReader("club,first_name\n"),
		iotest.ErrReader(errors.New("disk gone")),
	)
	r, err := NewReader(src)
	require.NoError(t, err)

	_, err = r.Next()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRead)
	assert.Contains(t, err.Error(), "disk gone")
}
