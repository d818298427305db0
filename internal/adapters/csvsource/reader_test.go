package csvsource_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"review_analyzer/internal/adapters/csvsource"
	"review_analyzer/internal/domain"
)

const sample = `ReviewId,ReviewBody,Location,Timestamp
r1,Great coffee,"Denver, Colorado",2024-01-01 10:00:00
r2,"Slow service, ""cold"" fries","Phoenix, Arizona",2023-07-04 18:45:12
`

func TestRead_ParsesRowsInOrder(t *testing.T) {
	recs, err := csvsource.Read(context.Background(), strings.NewReader(sample))
	require.NoError(t, err)
	assert.Equal(t, []domain.ReviewRecord{
		{ReviewID: "r1", ReviewBody: "Great coffee", Location: "Denver, Colorado", Timestamp: "2024-01-01 10:00:00"},
		{ReviewID: "r2", ReviewBody: `Slow service, "cold" fries`, Location: "Phoenix, Arizona", Timestamp: "2023-07-04 18:45:12"},
	}, recs)
}

func TestRead_ColumnOrderAndExtrasDoNotMatter(t *testing.T) {
	in := "\ufeffTimestamp,Rating,Location,ReviewBody,ReviewId\n" +
		"2024-01-01 10:00:00,5,\"Tucson, Arizona\",Lovely,abc\n"
	recs, err := csvsource.Read(context.Background(), strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "abc", recs[0].ReviewID)
	assert.Equal(t, "Tucson, Arizona", recs[0].Location)
}

func TestRead_Errors(t *testing.T) {
	for name, in := range map[string]string{
		"empty":          "",
		"missing column": "ReviewId,ReviewBody,Location\nr1,x,y\n",
		"short row":      "ReviewId,ReviewBody,Location,Timestamp\nr1,x\n",
	} {
		_, err := csvsource.Read(context.Background(), strings.NewReader(in))
		assert.Error(t, err, name)
	}
}

func TestFile_LoadReviews(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.csv")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	recs, err := csvsource.NewFile(path).LoadReviews(context.Background())
	require.NoError(t, err)
	assert.Len(t, recs, 2)

	_, err = csvsource.NewFile(filepath.Join(t.TempDir(), "nope.csv")).LoadReviews(context.Background())
	assert.Error(t, err)
}
