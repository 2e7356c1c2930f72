package gemini

import "context"

// EventFactsAPI retrieves event facts for the venues around a station on a given date.
// The returned payload is the model answer as is; it may be fenced, wrapped in prose or
// slightly malformed JSON.
type EventFactsAPI interface {
	FetchEventFacts(ctx context.Context, stationName, date string, venueNames []string) ([]byte, error)
}
