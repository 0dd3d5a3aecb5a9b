package models

// Advisory is a single vulnerability record returned by the upstream search.
type Advisory struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}
