package fsrs

import (
	"encoding/json"
	"fmt"

	"github.com/lipsanen/tmemo/internal/date"
)

// LogItem records one answer. It serializes as a single int64 with the
// outcome code in the high 32 bits and the day in the low 32 bits.
type LogItem struct {
	Outcome Outcome
	Day     date.Date
}

// Encode packs the item into its int64 wire form.
func (l LogItem) Encode() int64 {
	return int64(l.Outcome)<<32 | int64(uint32(l.Day.Day))
}

// DecodeLogItem unpacks an int64 produced by Encode.
func DecodeLogItem(v int64) (LogItem, error) {
	o := Outcome(v >> 32)
	if !o.IsValid() {
		return LogItem{}, fmt.Errorf("%w: code %d", ErrUnknownOutcome, v>>32)
	}
	return LogItem{Outcome: o, Day: date.Date{Day: int32(uint32(v))}}, nil
}

// MarshalJSON implements json.Marshaler.
func (l LogItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Encode())
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *LogItem) UnmarshalJSON(data []byte) error {
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decode review log item: %w", err)
	}
	item, err := DecodeLogItem(v)
	if err != nil {
		return err
	}
	*l = item
	return nil
}
