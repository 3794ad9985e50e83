package voice

// Apply runs value through each transform in order.
func Apply(value string, transforms ...func(string) string) string {
	for _, t := range transforms {
		value = t(value)
	}
	return value
}

// Compose builds a reusable pipeline from the given transforms.
func Compose(transforms ...func(string) string) func(string) string {
	return func(value string) string {
		return Apply(value, transforms...)
	}
}
