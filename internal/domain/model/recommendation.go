package model

// Recommendation is one ranked hackathon suggestion.
type Recommendation struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Reason          string `json:"reason"`           // never empty, at most 150 characters
	ConfidenceScore int    `json:"confidence_score"` // 0..100, a ranking signal rather than a probability
}

// CatalogStats summarizes a catalog snapshot for the admin view.
type CatalogStats struct {
	Total             int `json:"total"`
	Open              int `json:"open"`
	ClosingSoon       int `json:"closing_soon"`
	Ended             int `json:"ended"`
	TotalParticipants int `json:"total_participants"`
}

// Summarize counts hackathons by status and sums participants.
func Summarize(hs []Hackathon) CatalogStats {
	st := CatalogStats{Total: len(hs)}
	for i := range hs {
		switch hs[i].Status {
		case StatusOpen:
			st.Open++
		case StatusClosingSoon:
			st.ClosingSoon++
		case StatusEnded:
			st.Ended++
		}
		st.TotalParticipants += hs[i].Participants
	}
	return st
}
