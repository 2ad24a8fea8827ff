// Package search turns flat Grafana search hits into folder sections.
//
// Without any filter and without a folder scope the query is limited to
// folderIds=[0]. Grafana then returns the folder rows plus the dashboards of
// the General folder, and the folders fill in lazily through FolderItems.
package search

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/five82/boardwalk/internal/grafana"
	"github.com/five82/boardwalk/internal/manage"
)

// API is the subset of the Grafana client used by Service.
type API interface {
	Search(ctx context.Context, query grafana.SearchQuery) ([]grafana.Hit, error)
	DashboardTags(ctx context.Context) ([]grafana.TagTerm, error)
}

// Ensure Service implements manage.Searcher at compile time.
var _ manage.Searcher = (*Service)(nil)

// Service implements manage.Searcher on top of the Grafana search API.
type Service struct {
	api    API
	logger *slog.Logger
}

// NewService wraps api. A nil logger discards.
func NewService(api API, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{api: api, logger: logger}
}

// Search runs the query and groups the hits by folder.
func (s *Service) Search(ctx context.Context, query manage.Query) ([]manage.Section, error) {
	req := grafana.SearchQuery{
		Query:     query.Text,
		Tags:      query.Tags,
		Starred:   query.Starred,
		FolderIDs: query.FolderIDs,
	}
	browse := !query.HasFilters() && len(query.FolderIDs) == 0
	if browse {
		req.FolderIDs = []int64{manage.GeneralFolderID}
	}

	hits, err := s.api.Search(ctx, req)
	if err != nil {
		return nil, err
	}
	sections := buildSections(hits)
	s.logger.Debug("search completed",
		slog.Int("hits", len(hits)),
		slog.Int("sections", len(sections)),
		slog.Bool("browse", browse),
	)
	return sections, nil
}

// DashboardTags lists the tags known to Grafana.
func (s *Service) DashboardTags(ctx context.Context) ([]grafana.TagTerm, error) {
	return s.api.DashboardTags(ctx)
}

// FolderItems loads the dashboards of a single folder.
func (s *Service) FolderItems(ctx context.Context, folderID int64) ([]manage.Item, error) {
	hits, err := s.api.Search(ctx, grafana.SearchQuery{FolderIDs: []int64{folderID}})
	if err != nil {
		return nil, fmt.Errorf("search folder %d: %w", folderID, err)
	}
	items := make([]manage.Item, 0, len(hits))
	for _, hit := range hits {
		if hit.IsFolder() {
			continue
		}
		items = append(items, itemFromHit(hit))
	}
	return items, nil
}

func buildSections(hits []grafana.Hit) []manage.Section {
	byID := make(map[int64]*manage.Section)
	var order []int64

	add := func(section manage.Section) *manage.Section {
		section.Score = len(order)
		byID[section.ID] = &section
		order = append(order, section.ID)
		return &section
	}

	for _, hit := range hits {
		if !hit.IsFolder() {
			continue
		}
		add(manage.Section{
			ID:    hit.ID,
			UID:   hit.UID,
			Title: hit.Title,
			URL:   hit.URL,
			Icon:  manage.IconFolder,
			Type:  hit.Type,
		})
	}

	for _, hit := range hits {
		if hit.IsFolder() {
			continue
		}
		section, ok := byID[hit.FolderID]
		if !ok {
			if hit.FolderID != manage.GeneralFolderID {
				section = add(manage.Section{
					ID:    hit.FolderID,
					UID:   hit.FolderUID,
					Title: hit.FolderTitle,
					URL:   hit.FolderURL,
					Type:  grafana.HitTypeFolder,
				})
			} else {
				section = add(manage.Section{
					ID:    manage.GeneralFolderID,
					Title: "General",
					Type:  grafana.HitTypeFolder,
				})
			}
		}
		section.Expanded = true
		section.Icon = manage.IconFolderOpen
		section.Items = append(section.Items, itemFromHit(hit))
	}

	// order holds creation order, which is also score order
	sections := make([]manage.Section, 0, len(order))
	for _, id := range order {
		sections = append(sections, *byID[id])
	}
	return sections
}

func itemFromHit(hit grafana.Hit) manage.Item {
	return manage.Item{
		ID:          hit.ID,
		UID:         hit.UID,
		Title:       hit.Title,
		URL:         hit.URL,
		Type:        hit.Type,
		Tags:        append([]string(nil), hit.Tags...),
		IsStarred:   hit.IsStarred,
		FolderID:    hit.FolderID,
		FolderUID:   hit.FolderUID,
		FolderTitle: hit.FolderTitle,
	}
}
