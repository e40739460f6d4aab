package usecases

// BodyRenderer turns an article's markdown body into sanitized HTML.
type BodyRenderer interface {
	Render(markdown string) (string, error)
}
