package wallbridge_test

import (
	"fmt"

	"github.com/bft-labs/wallbridge"
)

// ExampleNew drives a bridge through a typical wallpaper lifecycle.
func ExampleNew() {
	b := wallbridge.New(wallbridge.Options{})

	b.OnConnect()
	b.OnSurfaceCreated(wallbridge.NewMemorySurface("main"))
	b.OnSurfaceChanged(1080, 1920)
	b.OnVisibilityChanged(true)

	s := b.Snapshot()
	fmt.Printf("connections=%d paused=%v size=%dx%d\n", s.Connections, s.Paused, s.Width, s.Height)

	b.OnVisibilityChanged(false)
	b.OnEngineDestroyed()

	s = b.Snapshot()
	fmt.Printf("connections=%d paused=%v\n", s.Connections, s.Paused)

	// Output:
	// connections=1 paused=false size=1080x1920
	// connections=0 paused=true
}

type printObserver struct{}

func (printObserver) OnAnomaly(kind wallbridge.Anomaly, detail string) {
	fmt.Println("anomaly:", kind)
}

// ExampleOptions_observer reports host events that arrive out of order.
func ExampleOptions_observer() {
	b := wallbridge.New(wallbridge.Options{Observer: printObserver{}})

	b.OnDisconnect()
	b.OnSurfaceChanged(10, 10)

	// Output:
	// anomaly: disconnect_unbalanced
	// anomaly: resize_detached
}
