package grafana

import (
	"encoding/json"
	"strings"
)

// Hit types returned by /api/search.
const (
	HitTypeFolder    = "dash-folder"
	HitTypeDashboard = "dash-db"
)

// SearchQuery configures /api/search requests.
type SearchQuery struct {
	Query     string
	Tags      []string
	Starred   bool
	FolderIDs []int64
	Type      string
	Limit     int
}

// Hit mirrors a single /api/search result row.
type Hit struct {
	ID          int64    `json:"id"`
	UID         string   `json:"uid"`
	Title       string   `json:"title"`
	URI         string   `json:"uri"`
	URL         string   `json:"url"`
	Slug        string   `json:"slug"`
	Type        string   `json:"type"`
	Tags        []string `json:"tags"`
	IsStarred   bool     `json:"isStarred"`
	FolderID    int64    `json:"folderId"`
	FolderUID   string   `json:"folderUid"`
	FolderTitle string   `json:"folderTitle"`
	FolderURL   string   `json:"folderUrl"`
}

// IsFolder reports whether the hit is a folder row.
func (h Hit) IsFolder() bool {
	return strings.EqualFold(strings.TrimSpace(h.Type), HitTypeFolder)
}

// TagTerm mirrors an entry of /api/dashboards/tags.
type TagTerm struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// Folder mirrors /api/folders/:uid.
type Folder struct {
	ID       int64  `json:"id"`
	UID      string `json:"uid"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	CanSave  bool   `json:"canSave"`
	CanEdit  bool   `json:"canEdit"`
	CanAdmin bool   `json:"canAdmin"`
	Version  int    `json:"version"`
}

// DashboardMeta is the subset of dashboard metadata the mover relies on.
type DashboardMeta struct {
	Slug      string `json:"slug"`
	URL       string `json:"url"`
	FolderID  int64  `json:"folderId"`
	FolderUID string `json:"folderUid"`
	CanSave   bool   `json:"canSave"`
}

// DashboardWithMeta mirrors /api/dashboards/uid/:uid. The dashboard model is
// kept raw so saving it back never drops fields this client does not know about.
type DashboardWithMeta struct {
	Dashboard json.RawMessage `json:"dashboard"`
	Meta      DashboardMeta   `json:"meta"`
}

// saveDashboardRequest is the body of POST /api/dashboards/db.
type saveDashboardRequest struct {
	Dashboard json.RawMessage `json:"dashboard"`
	FolderID  int64           `json:"folderId"`
	Overwrite bool            `json:"overwrite"`
	Message   string          `json:"message,omitempty"`
}

// MoveResult summarises a bulk move.
type MoveResult struct {
	Total           int
	Moved           int
	AlreadyInFolder int
}

// User mirrors /api/user.
type User struct {
	ID             int64  `json:"id"`
	Login          string `json:"login"`
	Name           string `json:"name"`
	OrgID          int64  `json:"orgId"`
	IsGrafanaAdmin bool   `json:"isGrafanaAdmin"`
}

// UserOrg mirrors an entry of /api/user/orgs.
type UserOrg struct {
	OrgID int64  `json:"orgId"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Permissions describes what the signed-in user may do.
type Permissions struct {
	Login                      string
	Role                       string
	IsEditor                   bool
	HasEditPermissionInFolders bool
}

// permissionsFor derives editor rights from the user's role in the active org.
func permissionsFor(user User, orgs []UserOrg) Permissions {
	perms := Permissions{Login: user.Login}
	for _, org := range orgs {
		if org.OrgID == user.OrgID {
			perms.Role = org.Role
			break
		}
	}
	switch strings.ToLower(perms.Role) {
	case "editor", "admin":
		perms.IsEditor = true
	}
	if user.IsGrafanaAdmin {
		perms.IsEditor = true
	}
	perms.HasEditPermissionInFolders = perms.IsEditor
	return perms
}

type apiMessage struct {
	Message string `json:"message"`
}
