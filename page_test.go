package galleria

import "testing"

func newTestPage(s *Scene, onBack func()) *Page {
	return NewPage(s, PageConfig{Font: &fixedFont{}, PulseInterval: -1, OnBack: onBack})
}

func TestPageElementsValid(t *testing.T) {
	p := newTestPage(NewScene(), nil)
	if err := p.Elements().validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestPageArrangeWindowed(t *testing.T) {
	s := NewScene()
	p := newTestPage(s, nil)
	s.SetSize(1000, 800)
	el := p.Elements()

	vc := el.ViewerContainer
	assertNear(t, "viewer X", vc.X, 24)
	assertNear(t, "viewer Y", vc.Y, 76)
	assertNear(t, "viewer Width", vc.Width, 952)
	assertNear(t, "viewer Height", vc.Height, 604)

	assertNear(t, "zoom Width", el.ZoomContainer.Width, 952)
	assertNear(t, "zoom Height", el.ZoomContainer.Height, 556)

	assertNear(t, "gallery Y", el.ThumbnailGallery.Y, 696)
	assertNear(t, "gallery Width", el.ThumbnailGallery.Width, 952)

	// Buttons total 392 wide plus five 8px gaps, centered in 952.
	assertNear(t, "first button X", el.Prev.X, 260)
	assertNear(t, "last button X", el.FullscreenButton.X, 260+432-120)

	if !p.Back.Visible || !el.ThumbnailGallery.Visible {
		t.Error("back button and gallery should be visible when windowed")
	}
}

func TestPageArrangeFullscreen(t *testing.T) {
	s := NewScene()
	p := newTestPage(s, nil)
	s.SetSize(1000, 800)
	el := p.Elements()

	p.SetFullscreen(true)
	if !p.Fullscreen() {
		t.Fatal("Fullscreen should be true")
	}
	assertRect(t, "viewer", Rect{X: el.ViewerContainer.X, Y: el.ViewerContainer.Y,
		Width: el.ViewerContainer.Width, Height: el.ViewerContainer.Height}, Rect{Width: 1000, Height: 800})
	assertNear(t, "zoom Height", el.ZoomContainer.Height, 752)
	if p.Back.Visible || el.ThumbnailGallery.Visible {
		t.Error("only the viewer container should be shown in fullscreen")
	}

	p.SetFullscreen(false)
	assertNear(t, "viewer X", el.ViewerContainer.X, 24)
	if !p.Back.Visible {
		t.Error("back button should return after fullscreen")
	}
}

func TestPageBackButton(t *testing.T) {
	s := NewScene()
	clicked := 0
	newTestPage(s, func() { clicked++ })
	s.SetSize(1000, 800)

	s.InjectClick(104, 42)
	s.step(0.06)
	s.step(0.06)
	if clicked != 1 {
		t.Errorf("OnBack calls = %d, want 1", clicked)
	}
}

func TestPageWithViewer(t *testing.T) {
	s := NewScene()
	p := newTestPage(s, nil)
	s.SetSize(1000, 800)
	plat := &fakePlatform{}
	dec := memDecoder{"a.png": blank(1904, 556)}
	v, err := New(s, []Photo{NewPhoto("a.png", "")}, p.Elements(), Options{
		Platform:           plat,
		Loader:             NewLoader(dec, 0),
		OnFullscreenChange: p.SetFullscreen,
	})
	if err != nil {
		t.Fatal(err)
	}
	s.step(0.06)
	assertNear(t, "windowed fit", p.Elements().MainImage.ScaleX, 0.5)

	v.ToggleFullscreen()
	s.step(0.06)
	if !p.Fullscreen() {
		t.Fatal("page should follow the viewer into fullscreen")
	}
	// The image is still wider than the 1000x752 zoom area, so it fits width.
	assertNear(t, "fullscreen fit", p.Elements().MainImage.ScaleX, 1000.0/1904)

	// Thumbnails are clickable through the page layout.
	if !p.Elements().ThumbnailGallery.Interactable {
		t.Error("gallery should be interactable once bound")
	}
}
