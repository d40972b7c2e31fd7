// Package anilist resolves Anilist ids through the public GraphQL API.
package anilist

import (
	"context"
	"errors"
	"fmt"

	"github.com/kurasora/kurasora/log"
	"github.com/kurasora/kurasora/network"
)

// Endpoint is the GraphQL endpoint queries are posted to.
var Endpoint = "https://graphql.anilist.co"

// ErrNotFound is returned when Anilist has no entry for the given id.
var ErrNotFound = errors.New("anilist: media not found")

const idFromMalQuery = `query ($idMal: Int) {
  Media(idMal: $idMal, type: ANIME) {
    id
  }
}`

type mediaResponse struct {
	Data struct {
		Media *struct {
			ID int `json:"id"`
		} `json:"Media"`
	} `json:"data"`
}

// IDFromMal returns the Anilist id of the anime with the given MyAnimeList id.
func IDFromMal(ctx context.Context, malID int) (int, error) {
	if malID <= 0 {
		return 0, fmt.Errorf("invalid mal id %d", malID)
	}

	if id := malToAnilist().Get(malID); id.IsPresent() {
		return id.MustGet(), nil
	}

	log.Infof("Resolving anilist id for mal id %d", malID)

	session := network.NewSession()
	defer session.Close()

	body := map[string]any{
		"query": idFromMalQuery,
		"variables": map[string]any{
			"idMal": malID,
		},
	}

	var response mediaResponse
	if err := session.PostJSON(ctx, Endpoint, body, &response); err != nil {
		log.Error(err)
		return 0, err
	}

	if response.Data.Media == nil || response.Data.Media.ID == 0 {
		return 0, ErrNotFound
	}

	id := response.Data.Media.ID
	if err := malToAnilist().Set(malID, id); err != nil {
		log.Warnf("cache anilist id: %s", err)
	}

	return id, nil
}
