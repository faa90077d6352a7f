package galleria

import "testing"

func TestNewScene(t *testing.T) {
	s := NewScene()
	if s.root == nil {
		t.Fatal("root should not be nil")
	}
	if s.root.Name != "root" {
		t.Errorf("root.Name = %q, want %q", s.root.Name, "root")
	}
	if s.root.Type != NodeTypeContainer {
		t.Errorf("root.Type = %d, want NodeTypeContainer", s.root.Type)
	}
	if !s.root.Interactable {
		t.Error("root should be interactable")
	}
	if s.Root() != s.root {
		t.Error("Root() should return the internal root node")
	}
}

func TestSceneSetDebugMode(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(true)
	if !s.Debug() || !globalDebug {
		t.Error("debug should be on")
	}
	s.SetDebugMode(false)
	if s.Debug() || globalDebug {
		t.Error("debug should be off")
	}
}

func TestSceneSetSizeRunsResizeHandlersOnChange(t *testing.T) {
	s := NewScene()
	var got [][2]int
	s.OnResize(func(w, h int) { got = append(got, [2]int{w, h}) })

	s.SetSize(800, 600)
	s.SetSize(800, 600)
	s.SetSize(1024, 768)

	if len(got) != 2 {
		t.Fatalf("resize calls = %v, want 2 calls", got)
	}
	if got[1] != [2]int{1024, 768} {
		t.Errorf("last resize = %v, want [1024 768]", got[1])
	}
	if w, h := s.Size(); w != 1024 || h != 768 {
		t.Errorf("Size = %d,%d, want 1024,768", w, h)
	}
	if s.Root().Width != 1024 || s.Root().Height != 768 {
		t.Error("root box should follow the screen size")
	}
}

func TestSceneStepOrder(t *testing.T) {
	s := NewScene()
	var order []string
	box := NewRect("box", 10, 10, ColorWhite)
	box.OnUpdate = func(float64) { order = append(order, "node") }
	s.Root().AddChild(box)
	s.AddPollHook(func() { order = append(order, "poll") })
	s.OnKey(func(KeyEvent) { order = append(order, "key") })
	s.After(0, func() { order = append(order, "timer") })
	s.InjectKey("f")

	s.step(0.016)

	want := []string{"key", "poll", "timer", "node"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestUpdateNodesSkipsHidden(t *testing.T) {
	s := NewScene()
	hidden := NewContainer("hidden")
	hidden.Visible = false
	called := false
	child := NewContainer("child")
	child.OnUpdate = func(float64) { called = true }
	hidden.AddChild(child)
	s.Root().AddChild(hidden)

	s.step(0.016)

	if called {
		t.Error("OnUpdate should not run under an invisible parent")
	}
}

type recordingStore struct {
	events []InteractionEvent
}

func (r *recordingStore) EmitEvent(ev InteractionEvent) {
	r.events = append(r.events, ev)
}

func TestSceneForwardsEventsToEntityStore(t *testing.T) {
	s := NewScene()
	store := &recordingStore{}
	s.SetEntityStore(store)
	box := NewRect("box", 100, 100, ColorWhite)
	box.Interactable = true
	s.Root().AddChild(box)

	s.InjectKey(KeyEscape)
	s.InjectMove(50, 50)
	s.step(0.016)
	s.step(0.016)

	if len(store.events) < 2 {
		t.Fatalf("events = %+v, want key and enter", store.events)
	}
	if store.events[0].Type != EventKeyDown || store.events[0].Key != KeyEscape {
		t.Errorf("first event = %+v, want Escape keydown", store.events[0])
	}
	if store.events[1].Type != EventPointerEnter || store.events[1].NodeName != "box" {
		t.Errorf("second event = %+v, want enter on box", store.events[1])
	}
}
