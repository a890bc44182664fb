package search

type Result struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"` // "event", "circle", "user"
}
