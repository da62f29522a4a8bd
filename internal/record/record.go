package record

// Record is a single study session as stored by the remote record API.
// The id is assigned server-side and stays empty until the first refetch
// after a create. Date holds the calendar date the session started on
// (YYYY/MM/DD) and is stored verbatim; day attribution is recomputed from
// it at view time.
type Record struct {
	ID         string `json:"id,omitempty"`
	Date       string `json:"date"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	Duration   int    `json:"duration"`
	Category   string `json:"category"`
	Content    string `json:"content"`
	Enthusiasm string `json:"enthusiasm,omitempty"`
	Condition  string `json:"condition,omitempty"`
	Comment    string `json:"comment,omitempty"`
	Location   string `json:"location,omitempty"`
	UserName   string `json:"userName,omitempty"`

	// Split markers are set on view copies produced by the 4 AM boundary
	// split and never serialized.
	Split     bool   `json:"-"`
	SplitPart string `json:"-"`
}

// MasterData holds the suggestion vocabularies maintained alongside the
// records and refreshed on every fetch.
type MasterData struct {
	Categories      []string `json:"categories"`
	Contents        []string `json:"contents"`
	Enthusiasms     []string `json:"enthusiasms"`
	Comments        []string `json:"comments"`
	Locations       []string `json:"locations"`
	SupportMessages []string `json:"supportMessages"`
	FinishMessages  []string `json:"finishMessages"`
}
