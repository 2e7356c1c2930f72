package util

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"congestion-server/models"
)

// ReadStationCoordinatesFromJSON loads a station name to coordinates map from JSON on disk.
func ReadStationCoordinatesFromJSON(filePath string) (map[string]models.Coordinates, error) {
	var coords map[string]models.Coordinates
	if err := readJSON(filePath, &coords); err != nil {
		return nil, fmt.Errorf("failed to load station coordinates: %w", err)
	}
	return coords, nil
}

// ReadVenuesFromJSON loads a venue list from JSON on disk.
func ReadVenuesFromJSON(filePath string) ([]models.Venue, error) {
	var venues []models.Venue
	if err := readJSON(filePath, &venues); err != nil {
		return nil, fmt.Errorf("failed to load venues: %w", err)
	}
	return venues, nil
}

// ReadStationImagesFromJSON loads a station name to image URL map from JSON on disk.
func ReadStationImagesFromJSON(filePath string) (map[string]string, error) {
	var images map[string]string
	if err := readJSON(filePath, &images); err != nil {
		return nil, fmt.Errorf("failed to load station images: %w", err)
	}
	return images, nil
}

// ReadEventFactsPayload returns a recorded model answer untouched.
func ReadEventFactsPayload(filePath string) ([]byte, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	return data, nil
}

type ridershipSurveyFile struct {
	Stations map[string][]models.SurveyRecord `yaml:"stations"`
}

// ReadRidershipSurveyFromYAML loads per-station survey records keyed by station id.
func ReadRidershipSurveyFromYAML(filePath string) (map[string][]models.SurveyRecord, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var file ridershipSurveyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ridership survey: %w", err)
	}
	if file.Stations == nil {
		file.Stations = map[string][]models.SurveyRecord{}
	}
	return file.Stations, nil
}

// ReadTimeWeightTableFromYAML loads and validates a time weight table.
func ReadTimeWeightTableFromYAML(filePath string) (models.TimeWeightTable, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return models.TimeWeightTable{}, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var table models.TimeWeightTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return models.TimeWeightTable{}, fmt.Errorf("failed to unmarshal time weight table: %w", err)
	}
	if err := table.Validate(); err != nil {
		return models.TimeWeightTable{}, fmt.Errorf("invalid time weight table %q: %w", filePath, err)
	}
	return table, nil
}

func readJSON(filePath string, out interface{}) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal %q: %w", filePath, err)
	}
	return nil
}
