package ingest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kayak/internal/ingest"
)

func TestNewSchema(t *testing.T) {
	tests := []struct {
		name    string
		header  []string
		wantErr string
	}{
		{
			name:   "full header",
			header: []string{"LeadId", "LeadDate", "LeadCheckin", "LeadCheckout", "Revenue", "Commission", "HotelID", "HotelCountry", "HotelCity"},
		},
		{
			name:   "required columns only",
			header: []string{"LeadId", "LeadDate", "LeadCheckin", "LeadCheckout"},
		},
		{
			name:   "extra unknown columns are ignored",
			header: []string{"LeadId", "LeadDate", "LeadCheckin", "LeadCheckout", "SomethingElse"},
		},
		{
			name:    "missing one required column",
			header:  []string{"LeadId", "LeadDate", "LeadCheckin"},
			wantErr: "malformed header: missing required columns LeadCheckout",
		},
		{
			name:    "garbage header",
			header:  []string{"foo", "bar"},
			wantErr: "malformed header: missing required columns LeadId, LeadDate, LeadCheckin, LeadCheckout",
		},
		{
			name:    "case sensitive matching",
			header:  []string{"leadid", "LeadDate", "LeadCheckin", "LeadCheckout"},
			wantErr: "malformed header: missing required columns LeadId",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ingest.NewSchema(tt.header)

			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSchema_Value(t *testing.T) {
	schema, err := ingest.NewSchema([]string{"LeadId", "LeadDate", "LeadCheckin", "LeadCheckout", "Revenue"})
	assert.NoError(t, err)

	row := []string{"L1", "01/02/2023 10:00:00", "02/02/2023 14:00:00", "05/02/2023 11:00:00", "120.50"}

	assert.Equal(t, "L1", schema.Value(row, ingest.ColumnLeadID))
	assert.Equal(t, "120.50", schema.Value(row, ingest.ColumnRevenue))

	// column not in the file
	assert.Equal(t, "", schema.Value(row, ingest.ColumnHotelCountry))

	// row shorter than the header
	assert.Equal(t, "", schema.Value([]string{"L1"}, ingest.ColumnRevenue))
}

func TestSchema_Has(t *testing.T) {
	schema, err := ingest.NewSchema([]string{"LeadId", "LeadDate", "LeadCheckin", "LeadCheckout"})
	assert.NoError(t, err)

	assert.True(t, schema.Has(ingest.ColumnLeadID))
	assert.False(t, schema.Has(ingest.ColumnRevenue))
}

func TestNewSchema_DuplicateColumnKeepsFirst(t *testing.T) {
	schema, err := ingest.NewSchema([]string{"LeadId", "LeadDate", "LeadCheckin", "LeadCheckout", "LeadId"})
	assert.NoError(t, err)

	row := []string{"first", "01/02/2023 10:00:00", "02/02/2023 14:00:00", "05/02/2023 11:00:00", "second"}
	assert.Equal(t, "first", schema.Value(row, ingest.ColumnLeadID))
}
