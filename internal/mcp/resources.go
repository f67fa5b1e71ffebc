package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// resourcePrefix is the URI scheme for Theme Buddy resources.
const resourcePrefix = "themebuddy://"

// parseTokenURI extracts the token name from a themebuddy://token/{name}
// URI. Slashes inside the name arrive escaped as %2F.
func parseTokenURI(uri string) (string, error) {
	if !strings.HasPrefix(uri, resourcePrefix+"token/") {
		return "", fmt.Errorf("invalid URI scheme: %s", uri)
	}

	name, err := url.PathUnescape(strings.TrimPrefix(uri, resourcePrefix+"token/"))
	if err != nil {
		return "", fmt.Errorf("invalid token name in URI %s: %w", uri, err)
	}
	if name == "" {
		return "", fmt.Errorf("empty token name in URI: %s", uri)
	}
	return name, nil
}

// handleTokenResource handles themebuddy://token/{name} resources.
func (s *Server) handleTokenResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	name, err := parseTokenURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	collection := s.activeCollection("")
	c, err := s.db.GetCollection(collection)
	if err != nil {
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}
	v, err := s.db.GetVariable(collection, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	data, err := json.Marshal(toTokenResponse(c, v))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal token: %v", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
