package congestion

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"congestion-server/models"
)

// ErrMalformedPayload marks an event-fact payload with no recoverable structure.
var ErrMalformedPayload = errors.New("malformed event payload")

// MalformedPayloadError carries the raw upstream payload for diagnosis.
type MalformedPayloadError struct {
	Raw string
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("%v (%d bytes)", ErrMalformedPayload, len(e.Raw))
}

func (e *MalformedPayloadError) Is(target error) bool {
	return target == ErrMalformedPayload
}

var (
	facilityListKeys = []string{"facilities", "venues", "results"}
	facilityNameKeys = []string{"facility_name", "venue_name", "name"}
	eventNameKeys    = []string{"event_name", "name", "title"}
	attendanceKeys   = []string{"estimated_attendance", "attendance", "estimated_visitors", "capacity"}
	windowListKeys   = []string{"congestion_windows", "congestion_predictions", "predictions"}
	windowStartKeys  = []string{"start_hour", "start", "from"}
	windowEndKeys    = []string{"end_hour", "end", "to"}
	windowLabelKeys  = []string{"label", "name", "description"}
	windowRangeKeys  = []string{"time_range", "time"}
	codeFencePattern = regexp.MustCompile("(?s)```(?:json|JSON)?\\s*(.*?)```")
	trailingComma    = regexp.MustCompile(`,\s*([\]}])`)
	numberPattern    = regexp.MustCompile(`-?\d+(?:\.\d+)?`)
	hourPattern      = regexp.MustCompile(`^\s*(\d{1,2})(?:\s*[:時].*)?$`)
	rangeSeparators  = []string{"-", "〜", "~", "～", "–"}
)

// NormalizeEvents turns a loosely structured event-fact payload into per-venue event lists.
// Missing fields become safe defaults instead of rejecting the venue. An empty payload yields
// an empty result; a non-empty payload with no recoverable JSON also yields an empty result
// together with a *MalformedPayloadError.
func NormalizeEvents(raw []byte) ([]models.VenueEvents, error) {
	out := []models.VenueEvents{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return out, nil
	}

	doc, ok := decodeLoose(string(raw))
	if !ok {
		return out, &MalformedPayloadError{Raw: string(raw)}
	}

	entries, ok := facilityEntries(doc)
	if !ok {
		return out, &MalformedPayloadError{Raw: string(raw)}
	}

	for _, entry := range entries {
		facility, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, models.VenueEvents{
			VenueName: firstString(facility, facilityNameKeys),
			Events:    normalizeEventList(facility["events"]),
		})
	}
	return out, nil
}

// decodeLoose tries progressively more forgiving readings of model output: the text as is,
// the body of a markdown code fence, the outermost bracketed span, and finally the same spans
// with trailing commas removed.
func decodeLoose(text string) (any, bool) {
	text = strings.TrimSpace(text)
	candidates := []string{text}
	if m := codeFencePattern.FindStringSubmatch(text); m != nil {
		candidates = append(candidates, strings.TrimSpace(m[1]))
	}
	candidates = append(candidates, bracketSpans(text)...)

	for _, repair := range []bool{false, true} {
		for _, c := range candidates {
			if repair {
				c = trailingComma.ReplaceAllString(c, "$1")
			}
			if doc, ok := decodeJSON(c); ok {
				return doc, true
			}
		}
	}
	return nil, false
}

func decodeJSON(s string) (any, bool) {
	if s == "" {
		return nil, false
	}
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, false
	}
	if dec.More() {
		return nil, false
	}
	return doc, true
}

// bracketSpans returns the outermost [..] and {..} spans, the one opening first listed first.
func bracketSpans(text string) []string {
	type span struct {
		start int
		body  string
	}
	var spans []span
	for _, pair := range [][2]string{{"[", "]"}, {"{", "}"}} {
		start := strings.Index(text, pair[0])
		end := strings.LastIndex(text, pair[1])
		if start == -1 || end <= start {
			continue
		}
		spans = append(spans, span{start: start, body: text[start : end+1]})
	}
	if len(spans) == 2 && spans[1].start < spans[0].start {
		spans[0], spans[1] = spans[1], spans[0]
	}
	out := make([]string, 0, len(spans))
	for _, s := range spans {
		out = append(out, s.body)
	}
	return out
}

// facilityEntries accepts a list of facilities, an object wrapping such a list, or a single
// facility object.
func facilityEntries(doc any) ([]any, bool) {
	switch v := doc.(type) {
	case []any:
		return v, true
	case map[string]any:
		for _, key := range facilityListKeys {
			if list, ok := v[key].([]any); ok {
				return list, true
			}
		}
		return []any{v}, true
	default:
		return nil, false
	}
}

func normalizeEventList(raw any) []models.Event {
	events := []models.Event{}
	var items []any
	switch v := raw.(type) {
	case []any:
		items = v
	case map[string]any:
		items = []any{v}
	default:
		return events
	}

	for _, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			continue
		}
		events = append(events, normalizeEvent(fields))
	}
	return events
}

func normalizeEvent(fields map[string]any) models.Event {
	event := models.Event{
		EstimatedAttendance: parseAttendance(firstValue(fields, attendanceKeys)),
		CongestionWindows:   []models.CongestionWindow{},
	}
	if name := firstString(fields, eventNameKeys); name != "" {
		event.Name = &name
	}

	var windows []any
	switch v := firstValue(fields, windowListKeys).(type) {
	case []any:
		windows = v
	case map[string]any:
		windows = []any{v}
	}
	for _, w := range windows {
		wf, ok := w.(map[string]any)
		if !ok {
			continue
		}
		if window, ok := normalizeWindow(wf); ok {
			event.CongestionWindows = append(event.CongestionWindows, window)
		}
	}
	return event
}

func normalizeWindow(fields map[string]any) (models.CongestionWindow, bool) {
	start, okStart := parseHour(firstValue(fields, windowStartKeys))
	end, okEnd := parseHour(firstValue(fields, windowEndKeys))
	if !okStart || !okEnd {
		rs, re, ok := parseHourRange(firstString(fields, windowRangeKeys))
		if !ok {
			return models.CongestionWindow{}, false
		}
		start, end = rs, re
	}
	return models.CongestionWindow{
		StartHour: clampHour(start),
		EndHour:   clampHour(end),
		Label:     firstString(fields, windowLabelKeys),
	}, true
}

// parseAttendance reads numbers and numeric strings such as "5,000" or "約3.5万人".
// Anything unreadable or negative is 0.
func parseAttendance(v any) int {
	var n float64
	switch x := v.(type) {
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0
		}
		n = f
	case float64:
		n = x
	case string:
		s := strings.ReplaceAll(x, ",", "")
		s = strings.ReplaceAll(s, "，", "")
		loc := numberPattern.FindStringIndex(s)
		if loc == nil {
			return 0
		}
		f, err := strconv.ParseFloat(s[loc[0]:loc[1]], 64)
		if err != nil {
			return 0
		}
		if strings.HasPrefix(s[loc[1]:], "万") {
			f *= 10000
		}
		n = f
	default:
		return 0
	}
	if n <= 0 {
		return 0
	}
	return int(n)
}

func parseHour(v any) (int, bool) {
	switch x := v.(type) {
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, false
		}
		return int(f), true
	case float64:
		return int(x), true
	case string:
		m := hourPattern.FindStringSubmatch(x)
		if m == nil {
			return 0, false
		}
		h, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, false
		}
		return h, true
	default:
		return 0, false
	}
}

// parseHourRange reads "17:00-19:00" style ranges.
func parseHourRange(s string) (int, int, bool) {
	for _, sep := range rangeSeparators {
		parts := strings.SplitN(s, sep, 2)
		if len(parts) != 2 {
			continue
		}
		start, ok1 := parseHour(strings.TrimSpace(parts[0]))
		end, ok2 := parseHour(strings.TrimSpace(parts[1]))
		if ok1 && ok2 {
			return start, end, true
		}
	}
	return 0, 0, false
}

func clampHour(h int) int {
	if h < 0 {
		return 0
	}
	if h > 24 {
		return 24
	}
	return h
}

func firstValue(fields map[string]any, keys []string) any {
	for _, k := range keys {
		if v, ok := fields[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func firstString(fields map[string]any, keys []string) string {
	for _, k := range keys {
		if s, ok := fields[k].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
