package pathfind

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// YouTubeSearcher finds learning videos through the YouTube Data API.
type YouTubeSearcher struct {
	service *youtube.Service
}

// NewYouTubeSearcher creates a searcher authenticated with an API key.
func NewYouTubeSearcher(ctx context.Context, apiKey string) (*YouTubeSearcher, error) {
	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}
	return &YouTubeSearcher{service: service}, nil
}

// Search implements VideoSearcher, returning the top video hit or nil.
func (y *YouTubeSearcher) Search(ctx context.Context, query string) (*Video, error) {
	resp, err := y.service.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	if len(resp.Items) == 0 {
		return nil, nil
	}
	item := resp.Items[0]
	if item.Id == nil || item.Id.VideoId == "" {
		return nil, nil
	}

	video := &Video{URL: "https://www.youtube.com/watch?v=" + item.Id.VideoId}
	if item.Snippet != nil {
		video.Title = item.Snippet.Title
	}
	return video, nil
}
