package fetcher

import "math/rand"

type UserAgentType string

const (
	UserAgentAuto    UserAgentType = "auto"
	UserAgentChrome  UserAgentType = "chrome"
	UserAgentFirefox UserAgentType = "firefox"
	UserAgentSafari  UserAgentType = "safari"
)

var userAgents = map[UserAgentType][]string{
	UserAgentChrome: {
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	},
	UserAgentFirefox: {
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 14.1; rv:121.0) Gecko/20100101 Firefox/121.0",
		"Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
	},
	UserAgentSafari: {
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 14_1_2) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 14_0) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Safari/605.1.15",
	},
}

// UserAgentSelector picks agents with the package-level rand source, which
// is safe for the concurrent fetches the server issues through one Fetcher.
type UserAgentSelector struct{}

func NewUserAgentSelector() *UserAgentSelector {
	return &UserAgentSelector{}
}

// GetUserAgent returns a user agent for the given browser type. "auto" or an
// unknown type picks randomly from the whole pool.
func (s *UserAgentSelector) GetUserAgent(uaType string) string {
	agents, ok := userAgents[UserAgentType(uaType)]
	if !ok || len(agents) == 0 {
		var all []string
		for _, list := range userAgents {
			all = append(all, list...)
		}
		return all[rand.Intn(len(all))]
	}
	return agents[rand.Intn(len(agents))]
}
