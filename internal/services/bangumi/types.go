package bangumi

// Subject is the /v0/subjects/{id} payload
type Subject struct {
	ID            int64  `json:"id"`
	Type          int    `json:"type"`
	Name          string `json:"name"`
	NameCN        string `json:"name_cn"`
	Summary       string `json:"summary"`
	Date          string `json:"date"`
	Eps           int    `json:"eps"`
	TotalEpisodes int    `json:"total_episodes"`
	Images        Images `json:"images"`
	Rating        Rating `json:"rating"`
}

type Images struct {
	Large  string `json:"large"`
	Common string `json:"common"`
	Medium string `json:"medium"`
	Small  string `json:"small"`
	Grid   string `json:"grid"`
}

type Rating struct {
	Score float64 `json:"score"`
	Total int     `json:"total"`
}

// Episode is one entry of the /v0/episodes list. Ep is the number within the
// subject, Sort the number across the whole franchise.
type Episode struct {
	ID       int64    `json:"id"`
	Type     int      `json:"type"`
	Name     string   `json:"name"`
	NameCN   string   `json:"name_cn"`
	Sort     *float64 `json:"sort"`
	Ep       *float64 `json:"ep"`
	Airdate  string   `json:"airdate"`
	Desc     string   `json:"desc"`
	Duration string   `json:"duration"`
}

// EpisodePage is a page of the paginated episode list
type EpisodePage struct {
	Data   []Episode `json:"data"`
	Total  int       `json:"total"`
	Limit  int       `json:"limit"`
	Offset int       `json:"offset"`
}

// Episode types
const (
	EpisodeTypeMain    = 0
	EpisodeTypeSpecial = 1
)

type errorResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
