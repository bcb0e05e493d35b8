package models

// Country defines a row in the 'countries' table
type Country struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// State defines a row in the 'states' table
type State struct {
	ID        int64  `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	CountryID int64  `json:"country_id" db:"country_id"`
}

// City defines a row in the 'cities' table
type City struct {
	ID      int64  `json:"id" db:"id"`
	Name    string `json:"name" db:"name"`
	StateID int64  `json:"state_id" db:"state_id"`
}

// Degree defines a row in the 'degrees' table, e.g. B.Tech, M.Sc
type Degree struct {
	ID    int64  `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Level string `json:"level" db:"level"`
}

// Degree levels
const (
	DegreeLevelUG = "UG"
	DegreeLevelPG = "PG"
)

// Program defines a row in the 'programs' table, a degree specialisation
// with a fixed duration in years
type Program struct {
	ID            int64   `json:"id" db:"id"`
	Name          string  `json:"name" db:"name"`
	DegreeID      int64   `json:"degree_id" db:"degree_id"`
	DurationYears int     `json:"duration_years" db:"duration_years"`
	Degree        *Degree `json:"degree,omitempty"` // Relation, no db tag
}
