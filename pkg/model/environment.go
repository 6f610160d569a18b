package model

//go:generate go run github.com/dmarkham/enumer -type Environment -transform upper -json -sql -output environment.gen.go

// Environment classifies a project. The wire representation is the exact
// uppercase word; matching is case-sensitive.
type Environment int

const (
	Development Environment = iota
	Staging
	Production
)

// ParseEnvironment maps the exact wire word to its Environment. Unlike the
// generated EnvironmentString it does not tolerate case variants: the API
// contract accepts DEVELOPMENT, STAGING and PRODUCTION only.
func ParseEnvironment(s string) (Environment, bool) {
	for _, env := range EnvironmentValues() {
		if s == env.String() {
			return env, true
		}
	}
	return 0, false
}
