package schema

// RefArtistURLTable represents the 'core.artist_url' table
type RefArtistURLTable struct {
	Table         string
	ID            string
	ArtistID      string
	URL           string
	NormalizedURL string
	SearchKey     string
	IsActive      string
	CreatedAt     string
	UpdatedAt     string
}

// RefArtistURL is the schema definition for core.artist_url
var RefArtistURL = RefArtistURLTable{
	Table:         "core.artist_url",
	ID:            "id",
	ArtistID:      "artistid",
	URL:           "url",
	NormalizedURL: "normalizedurl",
	SearchKey:     "searchkey",
	IsActive:      "isactive",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}

func (t RefArtistURLTable) Columns() []string {
	return []string{t.ID, t.ArtistID, t.URL, t.NormalizedURL, t.SearchKey, t.IsActive, t.CreatedAt, t.UpdatedAt}
}
