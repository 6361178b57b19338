package ports

// TemplateRenderer renders a named template with the given data.
// Rendering must be deterministic: identical data always produces
// identical bytes, or the change-detection comparison downstream
// would trigger spurious reconfigures.
type TemplateRenderer interface {
	Render(name string, data any) (string, error)
}
