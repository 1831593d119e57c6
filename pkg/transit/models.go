package transit

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"commutectl/pkg/commute"
)

// Station represents one entry returned by /cercaStazione
type Station struct {
	ID        string `json:"id"`
	LongName  string `json:"nomeLungo"`
	ShortName string `json:"nomeBreve"`
	Label     string `json:"label"`
}

// departureRecord is a single entry of the /partenze board
type departureRecord struct {
	TrainNumber     flexString `json:"numeroTreno"`
	TrainLabel      string     `json:"compNumeroTreno"`
	Category        string     `json:"categoria"`
	TrainType       string     `json:"tipoTreno"`
	Destination     string     `json:"destinazione"`
	DepartureMillis *int64     `json:"orarioPartenza"`
	Delay           *int       `json:"ritardo"`
}

// toDeparture converts a board record to the core model. Missing departure
// times become the zero instant so the filter always discards them.
func (r departureRecord) toDeparture() commute.Departure {
	var scheduled time.Time
	if r.DepartureMillis != nil {
		scheduled = time.UnixMilli(*r.DepartureMillis)
	}

	delay := 0
	if r.Delay != nil && *r.Delay > 0 {
		delay = *r.Delay
	}

	id := strings.Join(strings.Fields(r.TrainLabel), " ")
	if id == "" {
		id = string(r.TrainNumber)
	}

	kind := r.TrainType
	if kind == "" {
		kind = r.Category
	}

	return commute.Departure{
		TrainID:      id,
		Destination:  strings.TrimSpace(r.Destination),
		Scheduled:    scheduled,
		DelayMinutes: delay,
		Kind:         kind,
	}
}

// flexString accepts both JSON numbers and strings
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}
