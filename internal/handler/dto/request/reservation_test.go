//go:build unit

package request_test

import (
	"encoding/json"
	"testing"

	"table-reserve/internal/handler/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingRequestPartySize(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "json number", body: `{"partySize": 4}`, want: 4},
		{name: "numeric string", body: `{"partySize": "4"}`, want: 4},
		{name: "numeric string with spaces", body: `{"partySize": " 4 "}`, want: 4},
		{name: "non-numeric string decodes to zero", body: `{"partySize": "lots"}`, want: 0},
		{name: "empty string decodes to zero", body: `{"partySize": ""}`, want: 0},
		{name: "null decodes to zero", body: `{"partySize": null}`, want: 0},
		{name: "missing field decodes to zero", body: `{}`, want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var req request.BookingRequest
			require.NoError(t, json.Unmarshal([]byte(tc.body), &req))
			assert.Equal(t, tc.want, int(req.PartySize))
			assert.Equal(t, tc.want, req.ToForm().PartySize)
		})
	}
}
