package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-ticketing/internal/model"
)

func TestTicketRenderer_RenderTicketPDF(t *testing.T) {
	doc := model.TicketDocument{
		TicketID:       41,
		HolderName:     "Lucía Pérez",
		TicketTypeName: "General",
		EventName:      "Summer Party",
		EventLocation:  "Main Hall",
		EventStartsAt:  time.Date(2026, 3, 4, 18, 0, 0, 0, time.UTC),
	}
	r := NewTicketRenderer()

	first, err := r.RenderTicketPDF(doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(first, []byte("%PDF-")))

	again, err := r.RenderTicketPDF(doc)
	require.NoError(t, err)
	assert.Equal(t, first, again)

	doc.TicketID = 42
	other, err := r.RenderTicketPDF(doc)
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}
