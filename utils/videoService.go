package utils

import (
	"fmt"
	"log"

	"github.com/go-resty/resty/v2"

	"lms/config"
)

type mediaProbeResponse struct {
	DurationSeconds int `json:"duration_seconds"`
}

// FetchVideoDuration asks the media probe service for a video's duration in seconds
func FetchVideoDuration(videoURL string) (int, error) {
	if config.AppConfig.MediaProbeURL == "" {
		return 0, fmt.Errorf("media probe URL is not configured")
	}

	client := resty.New()

	var probe mediaProbeResponse
	resp, err := client.R().
		SetQueryParam("url", videoURL).
		SetHeader("Authorization", "Bearer "+config.AppConfig.MediaProbeKey).
		SetResult(&probe).
		Get(config.AppConfig.MediaProbeURL)
	if err != nil {
		log.Printf("Failed to probe video duration: %v", err)
		return 0, err
	}
	if resp.StatusCode() != 200 {
		log.Printf("Media probe failed: %s", resp.String())
		return 0, fmt.Errorf("media probe failed, code: %d", resp.StatusCode())
	}

	return probe.DurationSeconds, nil
}
