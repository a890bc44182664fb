package joinrequest

import (
	"bytes"
	"encoding/json"
	"log"
	"time"
)

// coerceRequestedAt normalizes the raw requested_at value to epoch milliseconds.
// Historical writers produced integer millis, fractional millis, and timestamp
// strings; anything unrecognizable degrades to 0 so one dirty record never
// aborts a batch.
func coerceRequestedAt(raw []byte) int64 {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		log.Printf("join request: unreadable requested_at %q, coerced to 0", raw)
		return 0
	}

	switch val := v.(type) {
	case json.Number:
		if millis, err := val.Int64(); err == nil {
			return millis
		}
		if f, err := val.Float64(); err == nil {
			return int64(f)
		}
	case string:
		if ts, err := time.Parse(time.RFC3339Nano, val); err == nil {
			return ts.UnixMilli()
		}
	}

	log.Printf("join request: unexpected requested_at %q, coerced to 0", raw)
	return 0
}
