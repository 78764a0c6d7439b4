// Package realtime fetches, caches and decodes the two GTFS-Realtime live
// feeds (trip updates and vehicle positions) served as protojson-encoded
// FeedMessages.
package realtime

import (
	"fmt"
	"io"
	"net/http"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/encoding/protojson"
)

// Client fetches live feed payloads over HTTP.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a feed client. No request timeout is set: a hung
// upstream call blocks the whole query, which matches the single-threaded
// session model.
func NewClient() *Client {
	return &Client{httpClient: &http.Client{}}
}

// Fetch performs a GET against url and returns the raw JSON payload.
func (c *Client) Fetch(url string) ([]byte, error) {
	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	return io.ReadAll(resp.Body)
}

// DecodeFeed parses a protojson FeedMessage payload.
func DecodeFeed(data []byte) (*gtfsrtpb.FeedMessage, error) {
	var fm gtfsrtpb.FeedMessage
	opts := protojson.UnmarshalOptions{DiscardUnknown: true, AllowPartial: true}
	if err := opts.Unmarshal(data, &fm); err != nil {
		return nil, fmt.Errorf("decoding feed: %w", err)
	}
	return &fm, nil
}

// EncodeFeed serializes a FeedMessage back to protojson.
func EncodeFeed(fm *gtfsrtpb.FeedMessage) ([]byte, error) {
	opts := protojson.MarshalOptions{AllowPartial: true}
	data, err := opts.Marshal(fm)
	if err != nil {
		return nil, fmt.Errorf("encoding feed: %w", err)
	}
	return data, nil
}
