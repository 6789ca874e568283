package model

const shortHashLen = 8

type Alert struct {
	ID       string   `json:"alert_id"`
	AuthorID string   `json:"author_id"`
	Title    string   `json:"title"`
	Hash     string   `json:"hash"`
	TeamIDs  []string `json:"team_ids"`
}

// ShortHash is the prefix of the alert hash used in public short links.
func (a *Alert) ShortHash() string {
	if len(a.Hash) <= shortHashLen {
		return a.Hash
	}
	return a.Hash[:shortHashLen]
}
