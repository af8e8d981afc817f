package profile

import "sort"

// Record is an immutable snapshot of a public GitHub identity. It is built
// once per request from provider data and never mutated afterwards.
type Record struct {
	Login    string          `json:"login"`
	Name     string          `json:"name,omitempty"`
	Bio      string          `json:"bio,omitempty"`
	Company  string          `json:"company,omitempty"`
	Location string          `json:"location,omitempty"`
	Blog     string          `json:"blog,omitempty"`
	Twitter  string          `json:"twitter,omitempty"`
	Repos    []RepoSummary   `json:"repos,omitempty"`
	Activity []ActivityEntry `json:"activity,omitempty"`
}

// RepoSummary describes one repository on the card.
type RepoSummary struct {
	Name        string `json:"name"`
	Stars       int    `json:"stars"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// ActivityEntry describes one recent public event on the card.
type ActivityEntry struct {
	Repo   string `json:"repo"`
	Action string `json:"action"`
	URL    string `json:"url"`
}

// TopRepos returns the n highest-starred repositories. The sort is stable:
// equal star counts keep their original fetch order. n <= 0 means no cutoff.
func TopRepos(repos []RepoSummary, n int) []RepoSummary {
	out := make([]RepoSummary, len(repos))
	copy(out, repos)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Stars > out[j].Stars
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
