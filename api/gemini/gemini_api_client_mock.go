package gemini

import (
	"context"
	"log"

	"congestion-server/config"
	"congestion-server/util"
)

// GeminiApiClientMock replays a recorded model answer.
type GeminiApiClientMock struct {
	payloadPath string
}

// NewGeminiApiClientMock creates a new instance of GeminiApiClientMock
func NewGeminiApiClientMock() *GeminiApiClientMock {
	return &GeminiApiClientMock{payloadPath: config.GetResourcePath(config.EVENT_FACTS_RESPONSE_RESOURCE)}
}

func (c *GeminiApiClientMock) FetchEventFacts(ctx context.Context, stationName, date string, venueNames []string) ([]byte, error) {
	payload, err := util.ReadEventFactsPayload(c.payloadPath)
	if err != nil {
		log.Println("[GeminiApiClientMock] Could not read event facts response")
		return nil, err
	}
	return payload, nil
}
