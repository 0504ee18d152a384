package fields

import (
	"encoding/json"
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate(t *testing.T) {
	d, err := ParseDate("1999-03-31")
	require.NoError(t, err)

	b, err := json.Marshal(struct {
		Premiere Date `json:"premiere"`
	}{d})
	require.NoError(t, err)
	assert.JSONEq(t, `{"premiere": "1999-03-31"}`, string(b))

	var scanned Date
	v, err := d.DateValue()
	require.NoError(t, err)
	require.NoError(t, scanned.ScanDate(v))
	assert.Equal(t, d.String(), scanned.String())

	assert.Error(t, scanned.ScanDate(pgtype.Date{}))

	_, err = ParseDate("31/03/1999")
	assert.Error(t, err)
}
