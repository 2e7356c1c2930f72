package models

// Favorite counts how often a (railway, station) pair has been searched.
type Favorite struct {
	Railway  string `json:"railway"`
	Station  string `json:"station"`
	Count    int    `json:"count"`
	LastUsed int64  `json:"last_used"`
}

func (f Favorite) Key() string {
	return f.Railway + "|" + f.Station
}
