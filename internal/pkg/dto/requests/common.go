package requests

import (
	"bytes"
	"strings"

	"github.com/goccy/go-json"
)

// WeekdayToken holds a weekday as sent by clients: an ISO number (1 = Monday)
// or a name. It is converted to the canonical weekday once, in the usecase.
type WeekdayToken string

func (w *WeekdayToken) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*w = WeekdayToken(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*w = WeekdayToken(n.String())
	return nil
}

type TimeWindow struct {
	Start string `json:"start" validate:"required,clock_hm"`
	End   string `json:"end" validate:"required,clock_hm"`
}
