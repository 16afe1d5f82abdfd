package schema

// RefArtistTable represents the 'core.artist' table
type RefArtistTable struct {
	Table      string
	ID         string
	Name       string
	OtherNames string
	GroupName  string
	IsActive   string
	IsBanned   string
	CreatedAt  string
	UpdatedAt  string
}

// RefArtist is the schema definition for core.artist
var RefArtist = RefArtistTable{
	Table:      "core.artist",
	ID:         "id",
	Name:       "name",
	OtherNames: "othernames",
	GroupName:  "groupname",
	IsActive:   "isactive",
	IsBanned:   "isbanned",
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
}

func (t RefArtistTable) Columns() []string {
	return []string{t.ID, t.Name, t.OtherNames, t.GroupName, t.IsActive, t.IsBanned, t.CreatedAt, t.UpdatedAt}
}
