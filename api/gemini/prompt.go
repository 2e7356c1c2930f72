package gemini

import (
	"fmt"
	"strings"
)

// BuildEventFactsPrompt asks for one facility entry per venue, JSON only.
func BuildEventFactsPrompt(stationName, date string, venueNames []string) string {
	var venues strings.Builder
	for _, name := range venueNames {
		fmt.Fprintf(&venues, "- %s\n", name)
	}

	return fmt.Sprintf(`
You are an event research engine.

Your task:
- For each facility below, find the events held on %s.
- Estimate the attendance of each event.
- Estimate the hours during which attendees pass through %s station.
- Output MUST be valid JSON.
- Output MUST contain ONLY JSON.
- NO explanations.
- NO markdown.

Hours are integers from 0 to 24 in local time. A facility with no events has an empty "events" list.

Required JSON schema:
{
  "facilities": [
    {
      "facility_name": "string",
      "events": [
        {
          "event_name": "string",
          "estimated_attendance": number,
          "congestion_windows": [
            {"start_hour": number, "end_hour": number, "label": "string"}
          ]
        }
      ]
    }
  ]
}

FACILITIES:
%s`, date, stationName, venues.String())
}
