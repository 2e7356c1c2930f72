package ridership

import (
	"context"
	"log"

	"congestion-server/models"
	"congestion-server/util"
)

// SurveySource provides per-station passenger survey records keyed by station id.
type SurveySource interface {
	FetchRidershipSurvey(ctx context.Context) (map[string][]models.SurveyRecord, error)
}

// FileSurveySource reads the survey from a YAML file on every fetch.
type FileSurveySource struct {
	path string
}

func NewFileSurveySource(path string) *FileSurveySource {
	return &FileSurveySource{path: path}
}

func (s *FileSurveySource) FetchRidershipSurvey(ctx context.Context) (map[string][]models.SurveyRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	survey, err := util.ReadRidershipSurveyFromYAML(s.path)
	if err != nil {
		return nil, err
	}
	log.Printf("[FileSurveySource] loaded survey for %d stations from %s", len(survey), s.path)
	return survey, nil
}
