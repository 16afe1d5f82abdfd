package schema

// RefArtistVersionTable represents the 'core.artist_version' table
type RefArtistVersionTable struct {
	Table      string
	ID         string
	ArtistID   string
	Name       string
	OtherNames string
	GroupName  string
	URLs       string
	IsBanned   string
	UpdaterID  string
	CreatedAt  string
	UpdatedAt  string
}

// RefArtistVersion is the schema definition for core.artist_version
var RefArtistVersion = RefArtistVersionTable{
	Table:      "core.artist_version",
	ID:         "id",
	ArtistID:   "artistid",
	Name:       "name",
	OtherNames: "othernames",
	GroupName:  "groupname",
	URLs:       "urls",
	IsBanned:   "isbanned",
	UpdaterID:  "updaterid",
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
}

func (t RefArtistVersionTable) Columns() []string {
	return []string{t.ID, t.ArtistID, t.Name, t.OtherNames, t.GroupName, t.URLs, t.IsBanned, t.UpdaterID, t.CreatedAt, t.UpdatedAt}
}
