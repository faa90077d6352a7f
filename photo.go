package galleria

// DefaultAltText is used for photos that carry no description.
const DefaultAltText = "Image"

// Photo is one browsable image. The order of a photo list defines both
// navigation order and thumbnail order.
type Photo struct {
	Source  string
	AltText string
}

// NewPhoto returns a Photo, substituting DefaultAltText for a blank alt.
func NewPhoto(src, alt string) Photo {
	if alt == "" {
		alt = DefaultAltText
	}
	return Photo{Source: src, AltText: alt}
}
