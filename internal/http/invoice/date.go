package invoice

import (
	"encoding/json"
	"fmt"
	"time"
)

// date is a calendar day serialised as YYYY-MM-DD.
type date time.Time

func (d date) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(d).Format(time.DateOnly))
}

func (d *date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD: %w", err)
	}

	*d = date(t)

	return nil
}

func toDate(t *time.Time) *date {
	if t == nil {
		return nil
	}

	return new(date(*t))
}
