package search

import (
	"context"
	"errors"
	"testing"

	"github.com/five82/boardwalk/internal/grafana"
	"github.com/five82/boardwalk/internal/manage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	hits    []grafana.Hit
	err     error
	tags    []grafana.TagTerm
	queries []grafana.SearchQuery
}

func (f *fakeAPI) Search(_ context.Context, q grafana.SearchQuery) ([]grafana.Hit, error) {
	f.queries = append(f.queries, q)
	return f.hits, f.err
}

func (f *fakeAPI) DashboardTags(context.Context) ([]grafana.TagTerm, error) {
	return f.tags, nil
}

func TestSearch_BrowseModeRestrictsToGeneral(t *testing.T) {
	api := &fakeAPI{}
	svc := NewService(api, nil)

	_, err := svc.Search(context.Background(), manage.Query{Mode: "tree"})
	require.NoError(t, err)
	require.Len(t, api.queries, 1)
	assert.Equal(t, []int64{0}, api.queries[0].FolderIDs)
}

func TestSearch_FiltersOrScopeDisableBrowseMode(t *testing.T) {
	tests := []struct {
		name  string
		query manage.Query
		want  []int64
	}{
		{"text", manage.Query{Text: "cpu"}, nil},
		{"tag", manage.Query{Tags: []string{"prod"}}, nil},
		{"starred", manage.Query{Starred: true}, nil},
		{"scoped", manage.Query{FolderIDs: []int64{7}}, []int64{7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{}
			_, err := NewService(api, nil).Search(context.Background(), tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, api.queries[0].FolderIDs)
			assert.Equal(t, tt.query.Text, api.queries[0].Query)
			assert.Equal(t, tt.query.Tags, api.queries[0].Tags)
			assert.Equal(t, tt.query.Starred, api.queries[0].Starred)
		})
	}
}

func TestSearch_GroupsHitsIntoSections(t *testing.T) {
	api := &fakeAPI{hits: []grafana.Hit{
		{ID: 1, UID: "f-infra", Title: "Infra", URL: "/dashboards/f/f-infra", Type: grafana.HitTypeFolder},
		{ID: 2, UID: "f-empty", Title: "Empty", Type: grafana.HitTypeFolder},
		{ID: 10, UID: "d-cpu", Title: "CPU", Type: grafana.HitTypeDashboard, FolderID: 1, FolderUID: "f-infra", FolderTitle: "Infra", Tags: []string{"linux"}},
		{ID: 11, UID: "d-home", Title: "Home", Type: grafana.HitTypeDashboard, IsStarred: true},
		{ID: 12, UID: "d-api", Title: "API", Type: grafana.HitTypeDashboard, FolderID: 3, FolderUID: "f-apps", FolderTitle: "Apps", FolderURL: "/dashboards/f/f-apps"},
		{ID: 13, UID: "d-mem", Title: "Memory", Type: grafana.HitTypeDashboard, FolderID: 1},
	}}

	sections, err := NewService(api, nil).Search(context.Background(), manage.Query{Text: "x"})
	require.NoError(t, err)
	require.Len(t, sections, 4)

	infra := sections[0]
	assert.Equal(t, int64(1), infra.ID)
	assert.Equal(t, "f-infra", infra.UID)
	assert.True(t, infra.Expanded)
	assert.Equal(t, manage.IconFolderOpen, infra.Icon)
	require.Len(t, infra.Items, 2)
	assert.Equal(t, "d-cpu", infra.Items[0].UID)
	assert.Equal(t, []string{"linux"}, infra.Items[0].Tags)
	assert.Equal(t, "d-mem", infra.Items[1].UID)

	empty := sections[1]
	assert.Equal(t, "Empty", empty.Title)
	assert.False(t, empty.Expanded)
	assert.Equal(t, manage.IconFolder, empty.Icon)
	assert.Empty(t, empty.Items)

	general := sections[2]
	assert.True(t, general.IsGeneral())
	assert.Equal(t, "General", general.Title)
	assert.True(t, general.Expanded)
	require.Len(t, general.Items, 1)
	assert.True(t, general.Items[0].IsStarred)

	apps := sections[3]
	assert.Equal(t, int64(3), apps.ID)
	assert.Equal(t, "f-apps", apps.UID)
	assert.Equal(t, "Apps", apps.Title)
	assert.Equal(t, "/dashboards/f/f-apps", apps.URL)
	assert.Equal(t, grafana.HitTypeFolder, apps.Type)

	for i, s := range sections {
		assert.Equal(t, i, s.Score)
	}
}

func TestSearch_PropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewService(&fakeAPI{err: boom}, nil).Search(context.Background(), manage.Query{})
	assert.ErrorIs(t, err, boom)
}

func TestFolderItems_SkipsFolderRows(t *testing.T) {
	api := &fakeAPI{hits: []grafana.Hit{
		{ID: 4, UID: "nested", Type: grafana.HitTypeFolder},
		{ID: 20, UID: "d-20", Title: "Disk", Type: grafana.HitTypeDashboard, FolderID: 4},
	}}

	items, err := NewService(api, nil).FolderItems(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "d-20", items[0].UID)
	assert.Equal(t, []int64{4}, api.queries[0].FolderIDs)
}

func TestDashboardTags_PassesThrough(t *testing.T) {
	api := &fakeAPI{tags: []grafana.TagTerm{{Term: "prod", Count: 2}}}
	tags, err := NewService(api, nil).DashboardTags(context.Background())
	require.NoError(t, err)
	assert.Equal(t, api.tags, tags)
}
