package router

import "strings"

// Route is what a request path resolves to.
type Route uint8

const (
	NotFound Route = iota
	Root
	Echo
	UserAgent
	Files
)

func (r Route) String() string {
	switch r {
	case Root:
		return "root"
	case Echo:
		return "echo"
	case UserAgent:
		return "user-agent"
	case Files:
		return "files"
	default:
		return "not-found"
	}
}

const (
	echoPrefix      = "/echo"
	userAgentPrefix = "/user-agent"
	filesPrefix     = "/files"
)

// Decide matches the path against the routes in a fixed order, the first match wins.
// Echo and Files are prefix matches, their argument is whatever follows the prefix
// and a slash, and is empty if there's no such slash.
func Decide(path string) (route Route, arg string) {
	switch {
	case path == "/":
		return Root, ""
	case strings.HasPrefix(path, echoPrefix):
		return Echo, argument(path, echoPrefix)
	case strings.HasPrefix(path, userAgentPrefix):
		return UserAgent, ""
	case strings.HasPrefix(path, filesPrefix):
		return Files, argument(path, filesPrefix)
	default:
		return NotFound, ""
	}
}

func argument(path, prefix string) string {
	arg, found := strings.CutPrefix(path, prefix+"/")
	if !found {
		return ""
	}

	return arg
}
