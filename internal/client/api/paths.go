package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/triptracker/internal/client/models"
)

const pathsPath = "/api/paths"

type PathsAPI struct {
	r Requester
}

// Search finds paths matching the query parameters, which are passed
// through URL-encoded.
func (p *PathsAPI) Search(ctx context.Context, params url.Values) ([]models.Path, error) {
	var out []models.Path
	if err := p.r.Do(ctx, http.MethodGet, pathsPath+"/search?"+params.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *PathsAPI) GetDetail(ctx context.Context, pathID string) (*models.Path, error) {
	var out models.Path
	if err := p.r.Do(ctx, http.MethodGet, resource(pathsPath, pathID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateManual stores a path described by arbitrary fields.
func (p *PathsAPI) CreateManual(ctx context.Context, fields models.Object) (*models.Path, error) {
	var out models.Path
	if err := p.r.Do(ctx, http.MethodPost, pathsPath+"/manual", object(fields), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
